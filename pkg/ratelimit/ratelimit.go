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

// Package ratelimit implements the keychain's brute-force brake. Each key
// name carries a budget of failed operations that refills over time; once a
// name's budget is spent, further operations against it are refused until
// tokens refill. Successful operations are never charged, so the guard only
// bites callers who keep probing a name with bad input. It complements the
// keychain's uniform error delay: the delay taxes every failure, the guard
// caps how many failures per name are possible at all.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultFailuresPerMinute is the sustained failure budget per key name.
	DefaultFailuresPerMinute = 10

	// DefaultMaxTracked bounds how many distinct names hold failure state.
	DefaultMaxTracked = 1024

	// idleEviction is how long a name's failure state survives without a
	// new failure before it becomes eligible for eviction.
	idleEviction = 30 * time.Minute
)

// Config holds guard configuration.
type Config struct {
	// Enabled controls whether the guard is active.
	Enabled bool

	// FailuresPerMinute sets the sustained failure budget per key name.
	FailuresPerMinute int

	// Burst allows short runs of failures above the sustained budget.
	// If not set, defaults to FailuresPerMinute.
	Burst int

	// MaxTracked bounds the number of distinct names holding failure state.
	MaxTracked int
}

// Guard tracks per-name failure budgets. There is no background worker:
// stale state is evicted inline when new names are admitted, so an idle
// guard costs nothing.
type Guard struct {
	mu         sync.Mutex
	names      map[string]*nameState
	limit      rate.Limit
	burst      int
	maxTracked int
	enabled    bool
}

// nameState is the failure budget of a single key name.
type nameState struct {
	limiter     *rate.Limiter
	lastFailure time.Time
}

// NewGuard creates a guard with the given configuration. A nil config
// yields a disabled guard.
func NewGuard(config *Config) *Guard {
	if config == nil {
		config = &Config{}
	}

	perMinute := config.FailuresPerMinute
	if perMinute == 0 {
		perMinute = DefaultFailuresPerMinute
	}
	burst := config.Burst
	if burst == 0 {
		burst = perMinute
	}
	maxTracked := config.MaxTracked
	if maxTracked == 0 {
		maxTracked = DefaultMaxTracked
	}

	return &Guard{
		names:      make(map[string]*nameState),
		limit:      rate.Limit(float64(perMinute) / 60.0),
		burst:      burst,
		maxTracked: maxTracked,
		enabled:    config.Enabled,
	}
}

// Blocked reports whether the name's failure budget is spent. Names with no
// recorded failures are never blocked.
func (g *Guard) Blocked(name string) bool {
	if !g.enabled {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	state, ok := g.names[name]
	if !ok {
		return false
	}
	return state.limiter.Tokens() < 1
}

// RecordFailure charges one failure against the name's budget. Failures
// recorded while the budget is already spent do not extend the penalty.
func (g *Guard) RecordFailure(name string) {
	if !g.enabled || name == "" {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	state, ok := g.names[name]
	if !ok {
		g.evict()
		state = &nameState{limiter: rate.NewLimiter(g.limit, g.burst)}
		g.names[name] = state
	}
	state.lastFailure = time.Now()
	state.limiter.Allow()
}

// Enabled reports whether the guard is active.
func (g *Guard) Enabled() bool {
	return g.enabled
}

// Tracked returns the number of names currently holding failure state.
func (g *Guard) Tracked() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.names)
}

// evict makes room for a new name when the tracking bound is reached:
// idle state goes first, then the name with the oldest failure. Callers
// must hold the lock.
func (g *Guard) evict() {
	if len(g.names) < g.maxTracked {
		return
	}

	now := time.Now()
	var oldestName string
	var oldest time.Time
	for name, state := range g.names {
		if now.Sub(state.lastFailure) > idleEviction {
			delete(g.names, name)
			continue
		}
		if oldestName == "" || state.lastFailure.Before(oldest) {
			oldestName = name
			oldest = state.lastFailure
		}
	}

	if len(g.names) >= g.maxTracked && oldestName != "" {
		delete(g.names, oldestName)
	}
}
