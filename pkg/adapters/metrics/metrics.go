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

// Package metrics provides an adapter interface for metrics and telemetry,
// allowing calling applications to implement custom metrics collection
// strategies. A no-op implementation is the default; a Prometheus-backed
// implementation is provided for applications that scrape.
package metrics

import (
	"context"
	"time"
)

// Standard metric names used throughout the keychain.
const (
	// Key lifecycle operations
	MetricKeyCreate = "keyring.key.create"
	MetricKeyImport = "keyring.key.import"
	MetricKeyExport = "keyring.key.export"
	MetricKeyRename = "keyring.key.rename"
	MetricKeyRemove = "keyring.key.remove"
	MetricKeyList   = "keyring.key.list"

	// Cryptographic operations
	MetricEncrypt = "keyring.crypto.encrypt"
	MetricDecrypt = "keyring.crypto.decrypt"

	// Error metrics
	MetricErrorTotal = "keyring.error.total"

	// Latency metrics
	MetricLatencyOperation = "keyring.latency.operation"
)

// Adapter provides metrics and telemetry collection capabilities.
//
// Applications can implement this interface to provide custom metrics
// strategies (e.g., Prometheus, StatsD, OpenTelemetry integration).
type Adapter interface {
	// RecordCounter increments a counter metric by 1
	RecordCounter(ctx context.Context, name string, tags map[string]string) error

	// RecordTimer measures the duration of an operation and records it
	RecordTimer(ctx context.Context, name string, duration time.Duration, tags map[string]string) error

	// Name returns the metrics adapter name for logging/debugging
	Name() string
}
