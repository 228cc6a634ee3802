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

package datastore

import "errors"

var (
	// ErrClosed is returned when attempting to use a closed datastore.
	ErrClosed = errors.New("datastore: closed")

	// ErrNotFound is returned when a key is not found.
	ErrNotFound = errors.New("datastore: not found")

	// ErrInvalidKey is returned when a key is invalid or empty.
	ErrInvalidKey = errors.New("datastore: invalid key")

	// ErrBatchCommitted is returned when reusing an already committed batch.
	ErrBatchCommitted = errors.New("datastore: batch already committed")
)
