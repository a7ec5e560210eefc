// Athenaeum - Digital Repository Platform
// Copyright 2026 The Athenaeum Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/athenaeum-dev/athenaeum

// Package config loads the server configuration with Koanf v2 from
// layered sources: struct defaults, an optional YAML file, and
// ATHENAEUM_-prefixed environment variables, in increasing priority.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/athenaeum-dev/athenaeum/internal/authz"
)

// Config is the full server configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Logging LoggingConfig `koanf:"logging"`
	Store   StoreConfig   `koanf:"store"`
	Authz   AuthzConfig   `koanf:"authz"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host    string        `koanf:"host" validate:"required"`
	Port    int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout time.Duration `koanf:"timeout" validate:"min=1s"`

	// JWTSecret signs and verifies bearer tokens. Empty disables token
	// verification entirely: every request is anonymous.
	JWTSecret string `koanf:"jwt_secret"`

	// CORSOrigins lists allowed origins for cross-origin requests.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitReqs requests per RateLimitWindow per client IP.
	// Zero disables rate limiting.
	RateLimitReqs   int           `koanf:"rate_limit_reqs" validate:"min=0"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// StoreConfig selects and configures the backing store.
type StoreConfig struct {
	// Backend is "memory" (volatile, dev and test) or "badger".
	Backend string `koanf:"backend" validate:"oneof=memory badger"`

	// Path is the badger database directory.
	Path string `koanf:"path"`

	// GCInterval is how often the badger value-log garbage collector
	// runs.
	GCInterval time.Duration `koanf:"gc_interval" validate:"min=1m"`

	// SeedPath is an optional YAML fixture loaded into the memory
	// backend at startup. Ignored by the badger backend.
	SeedPath string `koanf:"seed_path"`
}

// AuthzConfig holds the cascade switch overrides. Switch names contain
// dots, which koanf treats as path separators, so the overrides are a
// list of disabled switches rather than a map; everything not listed
// keeps its default (enabled).
type AuthzConfig struct {
	DisabledCascades []string `koanf:"disabled_cascades"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8780,
			Timeout:         30 * time.Second,
			JWTSecret:       "",
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Store: StoreConfig{
			Backend:    "memory",
			Path:       "/data/athenaeum",
			GCInterval: 10 * time.Minute,
		},
		Authz: AuthzConfig{},
	}
}

// Validate checks field constraints and that every configured cascade
// switch is a recognized name. A misspelled switch would otherwise be
// silently ignored and leave its cascade enabled.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if c.Store.Backend == "badger" && c.Store.Path == "" {
		return fmt.Errorf("config validation: store.path is required for the badger backend")
	}
	for _, name := range c.Authz.DisabledCascades {
		if !authz.KnownSwitch(name) {
			return fmt.Errorf("config validation: unknown cascade switch %q", name)
		}
	}
	return nil
}

// Switches converts the cascade overrides into the engine's switch
// matrix.
func (c *Config) Switches() authz.Switches {
	overrides := make(map[string]bool, len(c.Authz.DisabledCascades))
	for _, name := range c.Authz.DisabledCascades {
		overrides[name] = false
	}
	return authz.NewSwitches(overrides)
}
