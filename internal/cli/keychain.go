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

package cli

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/jeremyhahn/go-keyring/internal/config"
	"github.com/jeremyhahn/go-keyring/pkg/adapters/metrics"
	"github.com/jeremyhahn/go-keyring/pkg/datastore"
	"github.com/jeremyhahn/go-keyring/pkg/datastore/file"
	"github.com/jeremyhahn/go-keyring/pkg/datastore/memory"
	"github.com/jeremyhahn/go-keyring/pkg/keyring"
	"github.com/jeremyhahn/go-keyring/pkg/logging"
	"github.com/jeremyhahn/go-keyring/pkg/ratelimit"
)

// openKeychain builds the datastore and keychain from configuration, flags
// and environment.
func openKeychain() (*keyring.Keychain, datastore.Datastore, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	if p := viper.GetString("store_path"); p != "" {
		cfg.Store.Path = p
	}

	passphrase := viper.GetString("passphrase")
	if passphrase == "" {
		return nil, nil, fmt.Errorf("a keychain passphrase is required; set %s", config.EnvPassphrase)
	}

	var ds datastore.Datastore
	switch cfg.Store.Backend {
	case "memory":
		ds = memory.New()
	default:
		ds, err = file.New(cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
	}

	kcCfg := &keyring.Config{
		Passphrase: passphrase,
		Logger:     logging.New(verbose || cfg.Logging.Debug),
	}

	if cfg.DEK.Salt != "" || cfg.DEK.IterationCount != 0 || cfg.DEK.KeyLength != 0 {
		dek := keyring.DefaultDEKConfig()
		if cfg.DEK.Salt != "" {
			dek.Salt = cfg.DEK.Salt
		}
		if cfg.DEK.IterationCount != 0 {
			dek.IterationCount = cfg.DEK.IterationCount
		}
		if cfg.DEK.KeyLength != 0 {
			dek.KeyLength = cfg.DEK.KeyLength
		}
		kcCfg.DEK = dek
	}

	if cfg.Metrics.Enabled {
		kcCfg.Metrics = metrics.NewPrometheusAdapter(nil)
	}
	if cfg.RateLimit.Enabled {
		kcCfg.RateLimit = &ratelimit.Config{
			Enabled:           true,
			FailuresPerMinute: cfg.RateLimit.FailuresPerMin,
		}
	}

	kc, err := keyring.New(ds, kcCfg)
	if err != nil {
		_ = ds.Close()
		return nil, nil, err
	}

	printVerbose("keychain opened (backend=%s path=%s)", cfg.Store.Backend, cfg.Store.Path)
	return kc, ds, nil
}
