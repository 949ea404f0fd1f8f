package config

import (
	"os"
	"testing"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "prod" {
		t.Fatalf("expected App.Env to be prod, got %q", cfg.App.Env)
	}

	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected Redis URL: %q", cfg.Redis.URL)
	}

	if cfg.Firebase.ProjectID != "project-123" {
		t.Fatalf("unexpected Firebase project %q", cfg.Firebase.ProjectID)
	}

	if cfg.Firebase.UsersCollection != "users" || cfg.Firebase.InvitesCollection != "invites" {
		t.Fatalf("expected default collections, got %q/%q", cfg.Firebase.UsersCollection, cfg.Firebase.InvitesCollection)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "prod")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvJWTSecret, "secret")
	t.Setenv(EnvJWTIssuer, "crewbase")
	t.Setenv(EnvJWTExpMins, "60")
	t.Setenv(EnvRefreshTokenTTLMinutes, "43200")
	t.Setenv(EnvFirebaseProjectID, "project-123")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
}

func TestRefreshTokenTTL(t *testing.T) {
	cfg := JWTConfig{RefreshTokenTTLMinutes: 2}
	if cfg.RefreshTokenTTL().Minutes() != 2 {
		t.Fatalf("unexpected ttl %v", cfg.RefreshTokenTTL())
	}
	cfg.RefreshTokenTTLMinutes = 0
	if cfg.RefreshTokenTTL() != 0 {
		t.Fatalf("expected zero ttl, got %v", cfg.RefreshTokenTTL())
	}
}
