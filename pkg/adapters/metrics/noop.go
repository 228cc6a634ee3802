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

package metrics

import (
	"context"
	"time"
)

// NoopAdapter is a metrics adapter that discards all metrics.
// It is the default when no adapter is configured.
type NoopAdapter struct{}

// NewNoopAdapter creates a new no-op metrics adapter.
func NewNoopAdapter() *NoopAdapter {
	return &NoopAdapter{}
}

// RecordCounter discards the counter.
func (n *NoopAdapter) RecordCounter(ctx context.Context, name string, tags map[string]string) error {
	return nil
}

// RecordTimer discards the timer.
func (n *NoopAdapter) RecordTimer(ctx context.Context, name string, duration time.Duration, tags map[string]string) error {
	return nil
}

// Name returns the adapter name.
func (n *NoopAdapter) Name() string {
	return "noop"
}

// Verify interface compliance at compile time.
var _ Adapter = (*NoopAdapter)(nil)
