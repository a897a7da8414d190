package lockout

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lockout.yaml")
	content := `lockout:
  max_failures: 10
  window: 2m
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write policy: %v", err)
	}

	p, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.MaxFailures != 10 {
		t.Errorf("max failures = %d, want 10", p.MaxFailures)
	}
	if p.Window != 2*time.Minute {
		t.Errorf("window = %v, want 2m", p.Window)
	}
	// Unset duration falls back to the default.
	if p.Duration != DefaultPolicy().Duration {
		t.Errorf("duration = %v, want default %v", p.Duration, DefaultPolicy().Duration)
	}
}

func TestLoadPolicyMissingFile(t *testing.T) {
	if _, err := LoadPolicy(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
