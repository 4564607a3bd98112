package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	origJWT := os.Getenv("JWT_SECRET")
	origPort := os.Getenv("PORT")
	defer func() {
		if origJWT != "" {
			os.Setenv("JWT_SECRET", origJWT)
		} else {
			os.Unsetenv("JWT_SECRET")
		}
		if origPort != "" {
			os.Setenv("PORT", origPort)
		} else {
			os.Unsetenv("PORT")
		}
	}()

	t.Run("fails without JWT_SECRET", func(t *testing.T) {
		os.Unsetenv("JWT_SECRET")
		_, err := Load()
		if err == nil {
			t.Error("Load() should fail without JWT_SECRET")
		}
	})

	t.Run("succeeds with JWT_SECRET", func(t *testing.T) {
		os.Setenv("JWT_SECRET", "test-secret")
		os.Unsetenv("PORT")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.JWTSecret != "test-secret" {
			t.Errorf("JWTSecret = %v, want test-secret", cfg.JWTSecret)
		}
		if cfg.Port != "8090" {
			t.Errorf("Port = %v, want 8090 (default)", cfg.Port)
		}
	})

	t.Run("parses CORS origins", func(t *testing.T) {
		os.Setenv("JWT_SECRET", "test-secret")
		os.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.org, https://b.example.org")
		defer os.Unsetenv("CORS_ALLOWED_ORIGINS")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(cfg.CORSOrigins) != 2 {
			t.Fatalf("CORSOrigins = %v, want 2 entries", cfg.CORSOrigins)
		}
		if cfg.CORSOrigins[1] != "https://b.example.org" {
			t.Errorf("CORSOrigins[1] = %v, trimming failed", cfg.CORSOrigins[1])
		}
	})
}
