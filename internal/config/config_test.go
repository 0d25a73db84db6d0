package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")

	cfg := Load()

	if cfg.HTTPPort != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.HTTPPort)
	}
	if cfg.CORSOrigins == "" {
		t.Error("expected a default CORS origin")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("DATABASE_DSN", "host=db user=app dbname=stocktake")

	cfg := Load()

	if cfg.HTTPPort != "9000" {
		t.Errorf("expected port 9000, got %q", cfg.HTTPPort)
	}
	if cfg.DatabaseDSN != "host=db user=app dbname=stocktake" {
		t.Errorf("unexpected DSN: %q", cfg.DatabaseDSN)
	}
}
