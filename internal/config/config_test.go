package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const baseYAML = `
app:
  port: 8080
  env: development
  gin_mode: debug
  expose_code: true
database:
  dsn: "host=localhost user=app dbname=community"
redis:
  addr: "localhost:6379"
jwt:
  secret: "file-secret"
  issuer: "communitysvc"
  ttl: "168h"
verification:
  ttl: "5m"
`

func writeConfig(t *testing.T, yaml string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)

	// Shield the test from ambient deployment variables.
	t.Setenv("APP_ENV", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("REDIS_ADDR", "")
}

func TestLoad_Defaults(t *testing.T) {
	writeConfig(t, baseYAML)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.JWTTTL != 168*time.Hour {
		t.Errorf("expected 168h jwt ttl, got %v", cfg.JWTTTL)
	}
	if cfg.CodeTTL != 5*time.Minute {
		t.Errorf("expected 5m code ttl, got %v", cfg.CodeTTL)
	}
	if cfg.UploadDir != "uploads" {
		t.Errorf("expected default upload dir, got %q", cfg.UploadDir)
	}
	if cfg.CodeStore != "memory" {
		t.Errorf("expected memory code store, got %q", cfg.CodeStore)
	}
	if !cfg.ExposeCode {
		t.Error("expose_code should survive outside production")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	writeConfig(t, baseYAML)
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DATABASE_DSN", "host=db user=app dbname=community")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.JWTSecret != "env-secret" {
		t.Errorf("env secret should win, got %q", cfg.JWTSecret)
	}
	if cfg.DSN != "host=db user=app dbname=community" {
		t.Errorf("env dsn should win, got %q", cfg.DSN)
	}
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	writeConfig(t, `
app:
  port: 8080
  env: production
jwt:
  issuer: "communitysvc"
  ttl: "168h"
verification:
  ttl: "5m"
`)

	if _, err := Load(); err == nil {
		t.Fatal("production load without a jwt secret must fail")
	}
}

func TestLoad_DevelopmentFallsBackToDevSecret(t *testing.T) {
	writeConfig(t, `
app:
  port: 8080
  env: development
jwt:
  issuer: "communitysvc"
  ttl: "168h"
verification:
  ttl: "5m"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.JWTSecret != devJWTSecret {
		t.Errorf("expected dev fallback secret, got %q", cfg.JWTSecret)
	}
}

func TestLoad_ProductionHidesCode(t *testing.T) {
	writeConfig(t, `
app:
  port: 8080
  env: production
  expose_code: true
jwt:
  secret: "prod-secret"
  issuer: "communitysvc"
  ttl: "168h"
verification:
  ttl: "5m"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ExposeCode {
		t.Error("expose_code must be forced off in production")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yml"))

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
