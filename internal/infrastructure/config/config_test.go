package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"COOKIE_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected server defaults: %+v", cfg)
	}
	if cfg.Cookie.Name != "console_id" || cfg.Cookie.SessionTTL != 168*time.Hour {
		t.Fatalf("unexpected cookie defaults: %+v", cfg.Cookie)
	}
	if cfg.Remote.BaseURL != "https://reqres.in/api" || cfg.Remote.Timeout != 10*time.Second || cfg.Remote.Retries != 1 {
		t.Fatalf("unexpected remote defaults: %+v", cfg.Remote)
	}
	if cfg.Mongo.Database != "user_console" || cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected storage defaults: %+v %+v", cfg.Mongo, cfg.Redis)
	}
	if cfg.Audit.Workers != 4 {
		t.Fatalf("unexpected audit workers: %d", cfg.Audit.Workers)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development mode")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"COOKIE_SECRET":   "s3cret",
		"ENV":             "production",
		"REMOTE_BASE_URL": "http://localhost:9999/api",
		"REMOTE_API_KEY":  "key",
		"REMOTE_TIMEOUT":  "2s",
		"REDIS_DB":        "3",
		"SESSION_TTL":     "1h",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.IsDevelopment() {
		t.Fatalf("expected production mode")
	}
	if cfg.Remote.BaseURL != "http://localhost:9999/api" || cfg.Remote.APIKey != "key" || cfg.Remote.Timeout != 2*time.Second {
		t.Fatalf("unexpected remote config: %+v", cfg.Remote)
	}
	if cfg.Redis.DB != 3 || cfg.Cookie.SessionTTL != time.Hour {
		t.Fatalf("unexpected overrides: %+v %+v", cfg.Redis, cfg.Cookie)
	}
}

func TestLoadFrom_MissingSecret(t *testing.T) {
	if _, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected error when COOKIE_SECRET is missing")
	}
}
