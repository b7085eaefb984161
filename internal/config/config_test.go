package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORTAL_PORT", "DB_DSN", "BACKEND_URL", "SESSION_TTL", "LOGOUT_COUNTDOWN_SECONDS"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.SessionTTL != 8*time.Hour {
		t.Fatalf("expected default ttl 8h, got %s", cfg.SessionTTL)
	}
	if cfg.LogoutCountdown != 5 {
		t.Fatalf("expected countdown 5, got %d", cfg.LogoutCountdown)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORTAL_PORT", "9000")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("PORTAL_RATE_LIMIT_BURST", "not-a-number")
	t.Setenv("BACKEND_TIMEOUT", "-1s")
	cfg := Load()
	if cfg.Port != "9000" {
		t.Fatalf("expected port 9000, got %q", cfg.Port)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("expected ttl 30m, got %s", cfg.SessionTTL)
	}
	if cfg.RateLimitBurst != 10 {
		t.Fatalf("expected fallback burst 10, got %d", cfg.RateLimitBurst)
	}
	if cfg.BackendTimeout != 10*time.Second {
		t.Fatalf("expected fallback timeout, got %s", cfg.BackendTimeout)
	}
}

func TestLoadTrustedProxies(t *testing.T) {
	t.Setenv("PORTAL_TRUSTED_PROXIES", " 10.0.0.0/8, ,192.0.2.7 ")
	cfg := Load()
	if len(cfg.TrustedProxies) != 2 || cfg.TrustedProxies[0] != "10.0.0.0/8" || cfg.TrustedProxies[1] != "192.0.2.7" {
		t.Fatalf("unexpected trusted proxies %q", cfg.TrustedProxies)
	}

	t.Setenv("PORTAL_TRUSTED_PROXIES", "")
	if got := Load().TrustedProxies; len(got) != 0 {
		t.Fatalf("expected no trusted proxies, got %q", got)
	}
}
