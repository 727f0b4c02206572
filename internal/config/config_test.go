package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Env:            "development",
		DataBackend:    BackendMemory,
		SaveDebounce:   500 * time.Millisecond,
		SaveTimeout:    time.Second,
		SessionIdleTTL: time.Minute,
		JWTSecret:      "secret",
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		if err := validConfig().Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown_backend", func(t *testing.T) {
		cfg := validConfig()
		cfg.DataBackend = "firestore"
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), "DATA_BACKEND") {
			t.Fatalf("expected DATA_BACKEND error, got %v", err)
		}
	})

	t.Run("collects_every_problem", func(t *testing.T) {
		cfg := validConfig()
		cfg.SaveDebounce = 0
		cfg.JWTSecret = ""
		err := cfg.Validate()
		if err == nil {
			t.Fatal("expected error")
		}
		for _, want := range []string{"SAVE_DEBOUNCE", "JWT_SECRET"} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("expected %s in %q", want, err.Error())
			}
		}
	})

	t.Run("production_requires_secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.Env = "production"
		cfg.JWTSecret = "fallback-secret-key-for-dev-only"
		if err := cfg.Validate(); err == nil {
			t.Fatal("expected error for default secret in production")
		}
	})
}

func TestGetDuration(t *testing.T) {
	t.Setenv("SAVE_DEBOUNCE", "250ms")
	if got := getDuration("SAVE_DEBOUNCE", time.Second); got != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %s", got)
	}

	t.Setenv("SAVE_DEBOUNCE", "soon")
	if got := getDuration("SAVE_DEBOUNCE", time.Second); got != time.Second {
		t.Errorf("expected fallback 1s, got %s", got)
	}
}
