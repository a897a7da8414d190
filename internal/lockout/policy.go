package lockout

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Policy controls when repeated login failures lock an account.
type Policy struct {
	MaxFailures int           `yaml:"max_failures"`
	Window      time.Duration `yaml:"window"`
	Duration    time.Duration `yaml:"duration"`
}

type policyFile struct {
	Lockout Policy `yaml:"lockout"`
}

func DefaultPolicy() Policy {
	return Policy{
		MaxFailures: 5,
		Window:      5 * time.Minute,
		Duration:    15 * time.Minute,
	}
}

// LoadPolicy reads a policy file, filling zero values with defaults.
func LoadPolicy(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, err
	}
	var pf policyFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return Policy{}, err
	}
	p := pf.Lockout
	def := DefaultPolicy()
	if p.MaxFailures <= 0 {
		p.MaxFailures = def.MaxFailures
	}
	if p.Window <= 0 {
		p.Window = def.Window
	}
	if p.Duration <= 0 {
		p.Duration = def.Duration
	}
	return p, nil
}
