package config

import (
	"testing"
	"time"
)

func TestLoadRequiresTokenSecret(t *testing.T) {
	if _, err := Load(); err == nil {
		t.Fatal("expected error without AUTH_TOKEN_SECRET")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_TOKEN_SECRET", "env-test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.AppPort != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.AppPort)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("expected default 24h session TTL, got %v", cfg.SessionTTL)
	}
	if cfg.HandoffTTL != 5*time.Minute {
		t.Fatalf("expected default 5m handoff TTL, got %v", cfg.HandoffTTL)
	}
	if cfg.ChallengeThreshold != 3 {
		t.Fatalf("expected default threshold 3, got %d", cfg.ChallengeThreshold)
	}
	if cfg.FailureWindow != 15*time.Minute {
		t.Fatalf("expected default 15m window, got %v", cfg.FailureWindow)
	}
	if !cfg.ChallengeEnabled {
		t.Fatal("expected challenge enabled by default")
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development mode by default, got %q", cfg.AppEnv)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTH_TOKEN_SECRET", "env-test-secret")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AUTH_SESSION_TTL", "1h")
	t.Setenv("CHALLENGE_THRESHOLD", "5")
	t.Setenv("CHALLENGE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.AppPort != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.AppPort)
	}
	if cfg.SessionTTL != time.Hour {
		t.Fatalf("expected 1h session TTL, got %v", cfg.SessionTTL)
	}
	if cfg.ChallengeThreshold != 5 {
		t.Fatalf("expected threshold 5, got %d", cfg.ChallengeThreshold)
	}
	if cfg.ChallengeEnabled {
		t.Fatal("expected challenge disabled")
	}
}

func TestGetBridgeHosts(t *testing.T) {
	cfg := &Config{BridgeHosts: " portal.partner.example , other.example ,, "}

	hosts := cfg.GetBridgeHosts()
	if len(hosts) != 2 {
		t.Fatalf("expected 2 hosts, got %v", hosts)
	}
	if hosts[0] != "portal.partner.example" || hosts[1] != "other.example" {
		t.Fatalf("unexpected hosts: %v", hosts)
	}

	if got := (&Config{}).GetBridgeHosts(); got != nil {
		t.Fatalf("expected nil for empty list, got %v", got)
	}
}
