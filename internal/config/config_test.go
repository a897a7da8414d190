package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("addr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("session ttl = %v, want 1h", cfg.SessionTTL)
	}
	if cfg.HTTPReadTimeout != 15*time.Second || cfg.HTTPIdleTimeout != 60*time.Second {
		t.Errorf("http timeouts = %v/%v, want 15s/60s", cfg.HTTPReadTimeout, cfg.HTTPIdleTimeout)
	}
	if cfg.ShutdownGrace != 10*time.Second {
		t.Errorf("shutdown grace = %v, want 10s", cfg.ShutdownGrace)
	}
	if cfg.LoginRatePerSec != 2 {
		t.Errorf("login rate = %v, want 2", cfg.LoginRatePerSec)
	}
	if cfg.JWTSecret == "" {
		t.Error("jwt secret should fall back to the dev default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTHCORE_LOGIN_RATE", "0.5")
	t.Setenv("AUTHCORE_SESSION_TTL", "30m")
	t.Setenv("AUTHCORE_HTTP_READ_TIMEOUT", "5s")
	t.Setenv("AUTHCORE_SHUTDOWN_GRACE", "3s")
	t.Setenv("AUTHCORE_LOGIN_BURST", "7")

	cfg := Load()
	if cfg.LoginRatePerSec != 0.5 {
		t.Errorf("login rate = %v, want 0.5", cfg.LoginRatePerSec)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("session ttl = %v, want 30m", cfg.SessionTTL)
	}
	if cfg.HTTPReadTimeout != 5*time.Second {
		t.Errorf("read timeout = %v, want 5s", cfg.HTTPReadTimeout)
	}
	if cfg.ShutdownGrace != 3*time.Second {
		t.Errorf("shutdown grace = %v, want 3s", cfg.ShutdownGrace)
	}
	if cfg.LoginBurst != 7 {
		t.Errorf("login burst = %v, want 7", cfg.LoginBurst)
	}
}

func TestLoadBadNumbersFallBack(t *testing.T) {
	t.Setenv("AUTHCORE_LOGIN_RATE", "not-a-number")
	t.Setenv("AUTHCORE_LOGIN_BURST", "many")

	cfg := Load()
	if cfg.LoginRatePerSec != 2 {
		t.Errorf("login rate = %v, want default 2", cfg.LoginRatePerSec)
	}
	if cfg.LoginBurst != 20 {
		t.Errorf("login burst = %v, want default 20", cfg.LoginBurst)
	}
}
