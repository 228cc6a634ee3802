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

package keyring

import (
	"crypto"

	"github.com/jeremyhahn/go-keyring/pkg/adapters/metrics"
	"github.com/jeremyhahn/go-keyring/pkg/logging"
	"github.com/jeremyhahn/go-keyring/pkg/ratelimit"
)

// DEK derivation parameter floors (NIST SP 800-132) and defaults.
const (
	// MinPassphraseLength is the minimum keychain passphrase length.
	MinPassphraseLength = 20

	// MinDEKKeyLength is the minimum derived key length in bytes (112 bits).
	MinDEKKeyLength = 14

	// MinDEKSaltLength is the minimum salt length in bytes (128 bits).
	MinDEKSaltLength = 16

	// MinDEKIterations is the minimum PBKDF2 iteration count.
	MinDEKIterations = 1000

	// DefaultDEKKeyLength is the default derived key length in bytes.
	DefaultDEKKeyLength = 64

	// DefaultDEKIterations is the default PBKDF2 iteration count.
	DefaultDEKIterations = 10000
)

// DefaultDEKSalt is the shipped default salt. It is a placeholder: every
// deployment MUST override it with its own cryptographically random value.
const DefaultDEKSalt = "you should override this value with a crypto secure random number"

// DEKConfig holds the PBKDF2 parameters used to derive the data-encrypting
// key from the keychain passphrase.
type DEKConfig struct {
	// KeyLength is the derived key length in bytes.
	KeyLength int

	// Salt is the PBKDF2 salt. Callers MUST provide their own random salt;
	// the shipped default exists only to make the requirement visible.
	Salt string

	// IterationCount is the PBKDF2 iteration count.
	IterationCount int

	// Hash is the PBKDF2 PRF.
	Hash crypto.Hash
}

// DefaultDEKConfig returns the default DEK parameters: a 64 byte key,
// 10000 iterations and the SHA-512 PRF.
func DefaultDEKConfig() *DEKConfig {
	return &DEKConfig{
		KeyLength:      DefaultDEKKeyLength,
		Salt:           DefaultDEKSalt,
		IterationCount: DefaultDEKIterations,
		Hash:           crypto.SHA512,
	}
}

// Config configures a Keychain instance. The configuration is consumed at
// construction; later mutation has no effect on a constructed Keychain.
type Config struct {
	// Passphrase protects every key in the keychain. Minimum 20 characters.
	Passphrase string

	// DEK holds the key derivation parameters. Nil selects the defaults.
	DEK *DEKConfig

	// Logger receives operational log events. Nil selects the default
	// logger.
	Logger *logging.Logger

	// Metrics receives operation counters and timings. Nil selects the
	// no-op adapter.
	Metrics metrics.Adapter

	// RateLimit optionally caps failed operations per key name as an
	// additional brute-force brake. Nil disables the brake.
	RateLimit *ratelimit.Config
}

// validate enforces the construction-time parameter floors. These errors are
// surfaced synchronously: nothing observable exists yet, so there is no
// timing channel to smear.
func (c *Config) validate() error {
	if c == nil || c.Passphrase == "" {
		return ErrPassphraseRequired
	}
	if len(c.Passphrase) < MinPassphraseLength {
		return ErrPassphraseTooShort
	}

	// Floors are checked on the effective parameters so that a partially
	// specified DEKConfig still picks up defaults for the unset fields.
	dek := c.dekConfig()
	if dek.KeyLength < MinDEKKeyLength {
		return ErrDEKKeyLengthTooSmall
	}
	if len(dek.Salt) < MinDEKSaltLength {
		return ErrDEKSaltTooSmall
	}
	if dek.IterationCount < MinDEKIterations {
		return ErrDEKIterationsTooSmall
	}
	return nil
}

// dekConfig returns the effective DEK parameters, filling defaults for any
// unset field.
func (c *Config) dekConfig() *DEKConfig {
	out := DefaultDEKConfig()
	if c.DEK == nil {
		return out
	}
	if c.DEK.KeyLength != 0 {
		out.KeyLength = c.DEK.KeyLength
	}
	if c.DEK.Salt != "" {
		out.Salt = c.DEK.Salt
	}
	if c.DEK.IterationCount != 0 {
		out.IterationCount = c.DEK.IterationCount
	}
	if c.DEK.Hash != 0 {
		out.Hash = c.DEK.Hash
	}
	return out
}
