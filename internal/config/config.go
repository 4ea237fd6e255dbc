package config

import (
	"fmt"
	"strings"

	pkgconfig "github.com/TarielTopuria/EcommerceAngular/pkg/config"
)

// Config holds all configuration for the storefront.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Remote catalog/auth API
	APIBaseURL        string `env:"API_BASE_URL" envDefault:"https://fakestoreapi.com"`
	APITimeoutSeconds int    `env:"API_TIMEOUT_SECONDS" envDefault:"30"`

	// FakeStoreAPI does not persist POST/PUT/DELETE across requests. When
	// enabled, catalog writes are recorded locally and overlaid on reads so
	// the storefront behaves like a real backend.
	PersistLocalMutations bool `env:"PERSIST_LOCAL_MUTATIONS" envDefault:"true"`

	// Usernames allowed into the admin area.
	AdminUsernames []string `env:"ADMIN_USERNAMES" envDefault:"mor_2314" envSeparator:","`

	// Observability endpoint (health + metrics)
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8090"`

	// Persistent storage. An empty address selects the in-memory fallback.
	RedisAddr string `env:"REDIS_ADDR" envDefault:""`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("API base URL is required")
	}
	if c.APITimeoutSeconds < 1 {
		return fmt.Errorf("invalid API timeout: %d", c.APITimeoutSeconds)
	}
	return nil
}
