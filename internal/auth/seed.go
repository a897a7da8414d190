package auth

import (
	"context"
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

type usersFile struct {
	Users []struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		Role     Role   `yaml:"role"`
	} `yaml:"users"`
}

// SeedFromFile creates the users listed in a YAML file, hashing their
// passwords. Existing users are left untouched, so re-seeding is
// idempotent.
func SeedFromFile(ctx context.Context, store UserStore, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var uf usersFile
	if err := yaml.Unmarshal(data, &uf); err != nil {
		return err
	}
	for _, u := range uf.Users {
		if u.Email == "" || u.Password == "" {
			continue
		}
		if _, err := store.GetByEmail(ctx, u.Email); err == nil {
			continue
		} else if !errors.Is(err, ErrUserNotFound) {
			return err
		}
		hash, err := HashPassword(u.Password)
		if err != nil {
			return err
		}
		role := u.Role
		if role == "" {
			role = RoleUser
		}
		if _, err := store.Create(ctx, u.Email, hash, role); err != nil {
			return err
		}
	}
	return nil
}
