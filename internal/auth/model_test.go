package auth

import "testing"

func TestRoleRank(t *testing.T) {
	cases := []struct {
		role Role
		rank int
	}{
		{RoleAdmin, 3},
		{RoleModerator, 2},
		{RoleUser, 1},
		{Role("intern"), 0},
		{Role(""), 0},
	}
	for _, tc := range cases {
		if got := tc.role.Rank(); got != tc.rank {
			t.Errorf("Rank(%q) = %d, want %d", tc.role, got, tc.rank)
		}
	}
}

func TestHasPermission(t *testing.T) {
	cases := []struct {
		name     string
		role     Role
		required Role
		want     bool
	}{
		{"admin vs admin", RoleAdmin, RoleAdmin, true},
		{"admin vs moderator", RoleAdmin, RoleModerator, true},
		{"admin vs user", RoleAdmin, RoleUser, true},
		{"moderator vs moderator", RoleModerator, RoleModerator, true},
		{"moderator vs admin", RoleModerator, RoleAdmin, false},
		{"moderator vs user", RoleModerator, RoleUser, true},
		{"user vs user", RoleUser, RoleUser, true},
		{"user vs moderator", RoleUser, RoleModerator, false},
		{"user vs admin", RoleUser, RoleAdmin, false},
		{"unknown vs user", Role("guest"), RoleUser, false},
		{"unknown vs unknown", Role("guest"), Role("ghost"), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := &User{Role: tc.role}
			if got := HasPermission(u, tc.required); got != tc.want {
				t.Errorf("HasPermission(%q, %q) = %v, want %v", tc.role, tc.required, got, tc.want)
			}
		})
	}
}

func TestHasPermissionNilUser(t *testing.T) {
	if HasPermission(nil, RoleUser) {
		t.Error("nil user should never have permission")
	}
}
