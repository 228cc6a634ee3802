// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-keyring.
//
// go-keyring is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package config loads the keyring application configuration from YAML with
// environment variable overrides. The passphrase itself is never read from
// the config file; it comes from the environment only.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment variable overrides.
const (
	// EnvPassphrase carries the keychain passphrase.
	EnvPassphrase = "KEYRING_PASSPHRASE"

	// EnvSalt overrides the DEK salt.
	EnvSalt = "KEYRING_DEK_SALT"

	// EnvIterations overrides the DEK iteration count.
	EnvIterations = "KEYRING_DEK_ITERATIONS"

	// EnvStorePath overrides the store path.
	EnvStorePath = "KEYRING_STORE_PATH"
)

// Config represents the complete application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store"`
	DEK       DEKConfig       `yaml:"dek"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
}

// StoreConfig selects and configures the datastore backend.
type StoreConfig struct {
	// Backend is "file" or "memory".
	Backend string `yaml:"backend"`

	// Path is the root directory for the file backend.
	Path string `yaml:"path"`
}

// DEKConfig carries the key derivation parameters.
type DEKConfig struct {
	KeyLength      int    `yaml:"key_length"`
	Salt           string `yaml:"salt"`
	IterationCount int    `yaml:"iteration_count"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Debug bool `yaml:"debug"`
}

// MetricsConfig controls the optional Prometheus metrics adapter.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// RateLimitConfig controls the optional per-name failure budget.
type RateLimitConfig struct {
	Enabled        bool `yaml:"enabled"`
	FailuresPerMin int  `yaml:"failures_per_min"`
}

// Default returns the default configuration.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Store: StoreConfig{
			Backend: "file",
			Path:    home + "/.keyring/keys",
		},
		Logging: LoggingConfig{Debug: false},
	}
}

// Load reads the configuration from a YAML file, falling back to defaults
// when path is empty, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv applies environment variable overrides.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvSalt); v != "" {
		c.DEK.Salt = v
	}
	if v := os.Getenv(EnvIterations); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.DEK.IterationCount = n
		}
	}
	if v := os.Getenv(EnvStorePath); v != "" {
		c.Store.Path = v
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "file":
		if c.Store.Path == "" {
			return fmt.Errorf("config: store.path is required for the file backend")
		}
	case "memory":
	default:
		return fmt.Errorf("config: unknown store backend %q", c.Store.Backend)
	}
	return nil
}

// Passphrase returns the keychain passphrase from the environment.
func Passphrase() string {
	return os.Getenv(EnvPassphrase)
}
