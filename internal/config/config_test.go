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

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Store.Backend != "file" {
		t.Errorf("default backend = %q, want file", cfg.Store.Backend)
	}
	if cfg.Store.Path == "" {
		t.Error("default store path is empty")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyring.yaml")
	content := []byte(`
store:
  backend: memory
dek:
  salt: "0123456789abcdef"
  iteration_count: 5000
logging:
  debug: true
ratelimit:
  enabled: true
  failures_per_min: 30
`)
	if err := os.WriteFile(path, content, 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("backend = %q, want memory", cfg.Store.Backend)
	}
	if cfg.DEK.Salt != "0123456789abcdef" {
		t.Errorf("salt = %q", cfg.DEK.Salt)
	}
	if cfg.DEK.IterationCount != 5000 {
		t.Errorf("iteration_count = %d, want 5000", cfg.DEK.IterationCount)
	}
	if !cfg.Logging.Debug {
		t.Error("logging.debug not parsed")
	}
	if !cfg.RateLimit.Enabled || cfg.RateLimit.FailuresPerMin != 30 {
		t.Error("ratelimit not parsed")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load should fail for a missing file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvSalt, "envsalt-0123456789")
	t.Setenv(EnvIterations, "7000")
	t.Setenv(EnvStorePath, "/tmp/env-keys")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DEK.Salt != "envsalt-0123456789" {
		t.Errorf("env salt override not applied: %q", cfg.DEK.Salt)
	}
	if cfg.DEK.IterationCount != 7000 {
		t.Errorf("env iteration override not applied: %d", cfg.DEK.IterationCount)
	}
	if cfg.Store.Path != "/tmp/env-keys" {
		t.Errorf("env store path override not applied: %q", cfg.Store.Path)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Store.Backend = "bogus"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should reject unknown backends")
	}

	cfg.Store.Backend = "file"
	cfg.Store.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should require a path for the file backend")
	}

	cfg.Store.Backend = "memory"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate rejected the memory backend: %v", err)
	}
}

func TestPassphrase(t *testing.T) {
	t.Setenv(EnvPassphrase, "this is not a secure phrase")
	if got := Passphrase(); got != "this is not a secure phrase" {
		t.Errorf("Passphrase() = %q", got)
	}
}
