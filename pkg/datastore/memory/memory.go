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

// Package memory provides an in-memory implementation of datastore.Datastore.
// It uses a map with RWMutex for thread-safe operations and makes defensive
// copies of all byte slices to prevent external modification. Batches commit
// atomically under the store lock.
package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/jeremyhahn/go-keyring/pkg/datastore"
)

// Store is an in-memory implementation of datastore.Datastore.
// It uses a map to store key-value pairs and is fully thread-safe.
// All byte slices are defensively copied to prevent external modification.
type Store struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

// New creates a new in-memory datastore.
// The returned store is ready to use and implements datastore.Datastore.
func New() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// Exists checks if a key exists in storage.
// Returns datastore.ErrClosed if the store has been closed.
func (s *Store) Exists(key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, datastore.ErrClosed
	}

	_, exists := s.data[key]
	return exists, nil
}

// Get retrieves the value for the given key.
// Returns datastore.ErrNotFound if the key does not exist.
// The returned byte slice is a defensive copy and safe to modify.
func (s *Store) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, datastore.ErrClosed
	}

	value, exists := s.data[key]
	if !exists {
		return nil, datastore.ErrNotFound
	}

	result := make([]byte, len(value))
	copy(result, value)
	return result, nil
}

// Put stores the value for the given key.
// If the key already exists, it will be overwritten.
// The Options parameter is accepted for interface compatibility; metadata is
// not persisted.
func (s *Store) Put(key string, value []byte, opts *datastore.Options) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return datastore.ErrClosed
	}

	s.put(key, value)
	return nil
}

// put stores a defensive copy. Callers must hold the write lock.
func (s *Store) put(key string, value []byte) {
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	s.data[key] = valueCopy
}

// Delete removes the key and its value from storage.
// Returns datastore.ErrNotFound if the key does not exist.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return datastore.ErrClosed
	}

	if _, exists := s.data[key]; !exists {
		return datastore.ErrNotFound
	}

	delete(s.data, key)
	return nil
}

// List returns all keys with the given prefix.
// If prefix is empty, all keys are returned.
// Keys are returned in sorted order for consistent results.
func (s *Store) List(prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, datastore.ErrClosed
	}

	var keys []string
	for key := range s.data {
		if prefix == "" || strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)
	return keys, nil
}

// Batch returns a new write batch. The batch commits atomically: all staged
// mutations are applied under a single write lock, so readers observe either
// none or all of them.
func (s *Store) Batch() (datastore.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, datastore.ErrClosed
	}

	return &batch{store: s}, nil
}

// Close releases any resources held by the store and marks it as closed.
// After calling Close, all other operations will return datastore.ErrClosed.
// Multiple calls to Close are safe and will return nil.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.data = nil

	return nil
}

// batchOp is a single staged mutation.
type batchOp struct {
	key    string
	value  []byte
	delete bool
}

// batch stages mutations against a Store.
type batch struct {
	store     *Store
	ops       []batchOp
	committed bool
}

// Put stages a value to be stored at key.
func (b *batch) Put(key string, value []byte, opts *datastore.Options) {
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	b.ops = append(b.ops, batchOp{key: key, value: valueCopy})
}

// Delete stages the removal of key.
func (b *batch) Delete(key string) {
	b.ops = append(b.ops, batchOp{key: key, delete: true})
}

// Commit applies all staged mutations atomically, in order.
// Deletes of absent keys are ignored during commit.
func (b *batch) Commit() error {
	if b.committed {
		return datastore.ErrBatchCommitted
	}
	b.committed = true

	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	if b.store.closed {
		return datastore.ErrClosed
	}

	for _, op := range b.ops {
		if op.delete {
			delete(b.store.data, op.key)
			continue
		}
		b.store.data[op.key] = op.value
	}

	return nil
}

// Verify interface compliance at compile time.
var _ datastore.Datastore = (*Store)(nil)
