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

// Package logging provides structured, operation-scoped logging for the
// keychain. Each keychain operation carries an operation ID on its context;
// every record the logger emits is stamped with that ID, so the lines of
// one operation can be tied together without threading the ID through each
// call site.
package logging

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// ctxKey is unexported so only this package installs operation IDs.
type ctxKey struct{}

// NewOperationID returns a fresh UUID v4 operation ID.
func NewOperationID() string {
	return uuid.New().String()
}

// WithOperationID returns a context carrying the given operation ID.
func WithOperationID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, id)
}

// OperationID returns the context's operation ID, or "" when none is set.
func OperationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return ""
}

// BeginOperation returns a context carrying an operation ID, generating one
// when the context does not already hold it. Entry points (the CLI, a
// server handler) call this once per request.
func BeginOperation(ctx context.Context) context.Context {
	if OperationID(ctx) != "" {
		return ctx
	}
	return WithOperationID(ctx, NewOperationID())
}

// Logger emits structured keychain log records. All methods take the
// operation context first; the context's operation ID is appended to each
// record automatically.
type Logger struct {
	logger *slog.Logger
	debug  bool
}

// New creates a logger writing text records to stderr.
func New(debug bool) *Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &Logger{logger: slog.New(handler), debug: debug}
}

// Default returns a non-debug logger.
func Default() *Logger {
	return New(false)
}

// Info logs an operation event.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.logger.Info(msg, l.stamp(ctx, args)...)
}

// Debug logs a debug-level operation event.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	if l.debug {
		l.logger.Debug(msg, l.stamp(ctx, args)...)
	}
}

// Warn logs a warning.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.logger.Warn(msg, l.stamp(ctx, args)...)
}

// Error logs a failed operation with its error.
func (l *Logger) Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.logger.Error(msg, l.stamp(ctx, args)...)
}

// stamp appends the context's operation ID to the record attributes.
func (l *Logger) stamp(ctx context.Context, args []any) []any {
	if id := OperationID(ctx); id != "" {
		return append(args, "operation_id", id)
	}
	return args
}
