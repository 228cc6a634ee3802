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

// Package keyring implements a local keychain: a password-protected store of
// RSA private keys persisted on an abstract datastore. Each key is held as a
// PKCS#8 encrypted PEM whose encryption password is a data-encrypting key
// (DEK) derived from the keychain passphrase with PBKDF2.
//
// The surface is deliberately abuse-resistant: key names are validated and a
// reserved name is refused, every failing operation is delivered through a
// uniform random delay so that error timing does not leak which internal
// check failed, and an optional per-name failure budget caps repeated
// probing of a single name.
package keyring

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jeremyhahn/go-keyring/pkg/adapters/metrics"
	"github.com/jeremyhahn/go-keyring/pkg/datastore"
	"github.com/jeremyhahn/go-keyring/pkg/kdf"
	"github.com/jeremyhahn/go-keyring/pkg/logging"
	"github.com/jeremyhahn/go-keyring/pkg/names"
	"github.com/jeremyhahn/go-keyring/pkg/ratelimit"
)

// SelfKeyName is reserved for the node's own identity key and is refused by
// every mutating operation.
const SelfKeyName = "self"

// KeyTypeRSA is the supported key type identifier.
const KeyTypeRSA = "rsa"

// storedKeyExtension is the file extension hint attached to stored blobs.
const storedKeyExtension = ".p8"

// Keychain manages a set of named, passphrase-protected RSA keys backed by a
// datastore. It is safe for concurrent use within a single process; see the
// datastore's documentation for its own guarantees.
type Keychain struct {
	store      datastore.Datastore
	logger     *logging.Logger
	metrics    metrics.Adapter
	guard      *ratelimit.Guard
	iterations int

	mu     sync.RWMutex
	dek    []byte
	closed bool
}

// New constructs a Keychain over the given datastore. The DEK is derived
// once, here, and held for the Keychain's lifetime; it is never persisted.
//
// Configuration errors are returned synchronously: before construction
// succeeds there is nothing secret to probe, so no delay smear applies.
func New(ds datastore.Datastore, cfg *Config) (*Keychain, error) {
	if ds == nil {
		return nil, ErrDatastoreRequired
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	dekCfg := cfg.dekConfig()
	dek, err := kdf.NewPBKDF2().DeriveDEK(cfg.Passphrase, &kdf.Params{
		Algorithm:  kdf.AlgorithmPBKDF2,
		Salt:       []byte(dekCfg.Salt),
		Iterations: dekCfg.IterationCount,
		KeyLength:  dekCfg.KeyLength,
		Hash:       dekCfg.Hash,
	})
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	var adapter metrics.Adapter = metrics.NewNoopAdapter()
	if cfg.Metrics != nil {
		adapter = cfg.Metrics
	}

	return &Keychain{
		store:      ds,
		dek:        []byte(dek),
		iterations: dekCfg.IterationCount,
		logger:     logger,
		metrics:    adapter,
		guard:      ratelimit.NewGuard(cfg.RateLimit),
	}, nil
}

// Close zeroizes the DEK and releases the keychain's resources. The
// underlying datastore is not closed; its lifecycle belongs to the caller.
func (kc *Keychain) Close() error {
	kc.mu.Lock()
	defer kc.mu.Unlock()

	if kc.closed {
		return nil
	}
	kc.closed = true

	for i := range kc.dek {
		kc.dek[i] = 0
	}
	kc.dek = nil
	return nil
}

// dekPassword returns the DEK bytes for use as a PKCS#8 password.
func (kc *Keychain) dekPassword() ([]byte, error) {
	kc.mu.RLock()
	defer kc.mu.RUnlock()

	if kc.closed {
		return nil, ErrClosed
	}
	return kc.dek, nil
}

// fail routes an operation failure through the failure budget, logging,
// metrics and the uniform error delay. Every asynchronous error leaves the
// keychain through here; name is the key the operation targeted, or "" for
// operations without one.
func (kc *Keychain) fail(ctx context.Context, op, name string, err error) error {
	kc.guard.RecordFailure(name)
	kc.logger.Debug(ctx, "keychain operation failed",
		"op", op, "name", name, "error", err.Error())
	_ = kc.metrics.RecordCounter(ctx, metrics.MetricErrorTotal, opTags(op))
	return delayError(ctx, err)
}

// observe records the latency of a completed operation.
func (kc *Keychain) observe(ctx context.Context, op string, start time.Time) {
	_ = kc.metrics.RecordTimer(ctx, metrics.MetricLatencyOperation, time.Since(start), opTags(op))
}

// allow refuses operations against a name whose failure budget is spent.
func (kc *Keychain) allow(name string) error {
	if kc.guard.Blocked(name) {
		return ErrRateLimited
	}
	return nil
}

// validName reports whether name passes the name policy; mutating operations
// additionally refuse the reserved name. The reservation is matched
// case-insensitively so "Self" cannot shadow the reserved entry on
// case-folding datastores.
func validName(name string, mutating bool) bool {
	if !names.Validate(name) {
		return false
	}
	if mutating && strings.EqualFold(name, SelfKeyName) {
		return false
	}
	return true
}

func opTags(op string) map[string]string {
	return map[string]string{"operation": op}
}
