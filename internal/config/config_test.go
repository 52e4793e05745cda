package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_DSN", "host=localhost dbname=stelae")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("JWT_EXPIRATION_SECONDS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "3000" {
		t.Fatalf("port = %q, want 3000", cfg.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Fatalf("driver = %q, want postgres", cfg.Database.Driver)
	}
	if cfg.TokenTTL() != time.Hour {
		t.Fatalf("token ttl = %v, want 1h", cfg.TokenTTL())
	}
}

func TestLoadRequiredKeys(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_DSN", "host=localhost")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing JWT_SECRET")
	}

	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing DB_DSN")
	}
}

func TestLoadAllowedOrigins(t *testing.T) {
	setRequired(t)
	t.Setenv("CLIENT_URL", "https://app.example.com")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example.com ,https://b.example.com, ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"https://app.example.com",
		"https://a.example.com",
		"https://b.example.com",
	}

	for _, origin := range want {
		found := false
		for _, got := range cfg.CORS.AllowedOrigins {
			if got == origin {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("origin %q missing from %v", origin, cfg.CORS.AllowedOrigins)
		}
	}

	if len(cfg.CORS.AllowedOrigins) != len(want) {
		t.Fatalf("got %d origins, want %d: %v", len(cfg.CORS.AllowedOrigins), len(want), cfg.CORS.AllowedOrigins)
	}
}
