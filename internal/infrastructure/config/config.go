package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Cookie CookieConfig
	Remote RemoteConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	Audit  AuditConfig
}

// CookieConfig controls the signed cookie that identifies a browser.
type CookieConfig struct {
	Name   string `env:"COOKIE_NAME,   default=console_id"`
	Secret string `env:"COOKIE_SECRET, required"`
	Secure bool   `env:"COOKIE_SECURE, default=false"`
	// SessionTTL bounds how long a stored token and the identity cookie
	// survive without a visit. Each visit renews both.
	SessionTTL time.Duration `env:"SESSION_TTL, default=168h"`
}

type RemoteConfig struct {
	BaseURL string        `env:"REMOTE_BASE_URL, default=https://reqres.in/api"`
	APIKey  string        `env:"REMOTE_API_KEY"`
	Timeout time.Duration `env:"REMOTE_TIMEOUT,  default=10s"`
	Retries int           `env:"REMOTE_RETRIES,  default=1"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=user_console"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// IsDevelopment reports whether the console runs in a development setup.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads an optional .env file, then configuration from environment
// variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom processes configuration from the given lookuper.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}
