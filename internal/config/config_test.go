package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DOMAIN", "")
	t.Setenv("SMARTLEAD_BASE_URL", "")
	t.Setenv("LEGACY_UNDEFINED_FIELDS", "")
	t.Setenv("STRICT_MUTATIONS", "")
	cfg := Load()
	if cfg.Port != "5000" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.SmartLeadBaseURL != "https://server.smartlead.ai" {
		t.Fatalf("expected default smartlead base url, got %s", cfg.SmartLeadBaseURL)
	}
	if cfg.SmartLeadTimeout != 5*time.Second {
		t.Fatalf("expected default smartlead timeout, got %s", cfg.SmartLeadTimeout)
	}
	if !cfg.LegacyUndefinedFields {
		t.Fatalf("expected legacy undefined fields enabled by default")
	}
	if cfg.StrictMutations {
		t.Fatalf("expected strict mutations disabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_URL", "postgres://user@host/db")
	t.Setenv("DOMAIN", " Webhook.Example.Com ")
	t.Setenv("SMARTLEAD_TIMEOUT", "10s")
	t.Setenv("LEGACY_UNDEFINED_FIELDS", "false")
	t.Setenv("STRICT_MUTATIONS", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected port override, got %s", cfg.Port)
	}
	if cfg.Domain != "webhook.example.com" {
		t.Fatalf("expected normalized domain, got %q", cfg.Domain)
	}
	if cfg.SmartLeadTimeout != 10*time.Second {
		t.Fatalf("expected timeout override, got %s", cfg.SmartLeadTimeout)
	}
	if cfg.LegacyUndefinedFields {
		t.Fatalf("expected legacy undefined fields disabled")
	}
	if !cfg.StrictMutations {
		t.Fatalf("expected strict mutations enabled")
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestGetEnvAsDurationIgnoresGarbage(t *testing.T) {
	t.Setenv("SMARTLEAD_TIMEOUT", "not-a-duration")
	cfg := Load()
	if cfg.SmartLeadTimeout != 5*time.Second {
		t.Fatalf("expected fallback to default, got %s", cfg.SmartLeadTimeout)
	}
}
