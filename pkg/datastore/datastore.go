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

// Package datastore provides an abstraction layer for keyed blob storage
// backends. It supports both in-memory and file-based implementations with a
// common interface, including a batch primitive used for multi-key mutations
// such as renames. Batch atomicity depends on the implementation.
package datastore

import (
	"io/fs"
)

// Datastore defines the interface for keyed blob storage backends.
// All implementations must be thread-safe.
type Datastore interface {
	// Exists checks if a key exists in storage.
	Exists(key string) (bool, error)

	// Get retrieves the value for the given key.
	// Returns ErrNotFound if the key does not exist.
	Get(key string) ([]byte, error)

	// Put stores the value for the given key with optional metadata.
	// If the key already exists, it will be overwritten.
	Put(key string, value []byte, opts *Options) error

	// Delete removes the key and its value from storage.
	// Returns ErrNotFound if the key does not exist.
	Delete(key string) error

	// List returns all keys with the given prefix, keys only.
	// If prefix is empty, all keys are returned.
	List(prefix string) ([]string, error)

	// Batch returns a write batch. Mutations staged on the batch become
	// visible on Commit. Atomicity is per-implementation; see the
	// implementation's documentation.
	Batch() (Batch, error)

	// Close releases any resources held by the backend.
	Close() error
}

// Batch stages put and delete mutations for a single Commit.
type Batch interface {
	// Put stages a value to be stored at key.
	Put(key string, value []byte, opts *Options)

	// Delete stages the removal of key.
	Delete(key string)

	// Commit applies all staged mutations.
	Commit() error
}

// PathHinter is an optional interface for backends that can map a storage
// key to a location on disk. Callers use it only to surface informational
// paths; storage semantics never depend on it.
type PathHinter interface {
	// PathFor returns the file path backing the given key, and whether the
	// backend can provide one.
	PathFor(key string) (string, bool)
}

// Options contains optional parameters for storage operations.
type Options struct {
	// Permissions sets the file permissions for file-based storage
	Permissions fs.FileMode

	// Extension is a file extension hint for file-based storage (e.g. ".p8").
	// Backends without file semantics ignore it.
	Extension string

	// Metadata contains additional key-value pairs for storage operations
	Metadata map[string]string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() *Options {
	return &Options{
		Permissions: 0600, // Read/write for owner only
		Metadata:    make(map[string]string),
	}
}
