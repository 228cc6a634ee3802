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

// Package file provides a file-based implementation of datastore.Datastore.
// It stores each key as a file under a root directory and is thread-safe
// within a single process. Batches are best-effort: mutations are applied
// sequentially, so a crash mid-commit may leave a partial batch on disk.
package file

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/jeremyhahn/go-keyring/pkg/datastore"
)

const (
	// Default directory permissions (owner rwx only)
	defaultDirPerms = 0700

	// Default file permissions (owner rw only)
	defaultFilePerms = 0600
)

// Store is a file-based implementation of datastore.Datastore.
// Keys of the form "/name" map to files named "name" (plus any extension
// hint provided at Put time) under the root directory.
type Store struct {
	mu      sync.RWMutex
	rootDir string
	// ext remembers the extension each key was written with so that
	// Get/Delete/List resolve the same file.
	ext map[string]string
}

// New creates a new file-backed datastore rooted at rootDir.
// The root directory is created with 0700 permissions if it doesn't exist.
func New(rootDir string) (*Store, error) {
	if rootDir == "" {
		return nil, fmt.Errorf("file datastore: root directory cannot be empty")
	}

	if err := os.MkdirAll(rootDir, defaultDirPerms); err != nil {
		return nil, fmt.Errorf("file datastore: failed to create root directory: %w", err)
	}

	return &Store{
		rootDir: rootDir,
		ext:     make(map[string]string),
	}, nil
}

// Exists checks if a key exists in storage.
func (s *Store) Exists(key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path, err := s.keyToPath(key)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("file datastore: failed to check key %q: %w", key, err)
	}
	return true, nil
}

// Get retrieves the value for the given key.
// Returns datastore.ErrNotFound if the key does not exist.
func (s *Store) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path, err := s.keyToPath(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, datastore.ErrNotFound
		}
		return nil, fmt.Errorf("file datastore: failed to read key %q: %w", key, err)
	}
	return data, nil
}

// Put stores the value for the given key.
// If the key already exists, it will be overwritten.
// Options may carry file permissions and an extension hint (e.g. ".p8").
func (s *Store) Put(key string, value []byte, opts *datastore.Options) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.put(key, value, opts)
}

// put writes a single key. Callers must hold the write lock.
func (s *Store) put(key string, value []byte, opts *datastore.Options) error {
	name, err := keyToName(key)
	if err != nil {
		return err
	}

	ext := ""
	perms := fs.FileMode(defaultFilePerms)
	if opts != nil {
		ext = opts.Extension
		if opts.Permissions != 0 {
			perms = opts.Permissions
		}
	}

	// An overwrite with a different extension must not leave the old file
	// behind.
	if old, ok := s.ext[name]; ok && old != ext {
		_ = os.Remove(filepath.Join(s.rootDir, name+old))
	}

	path := filepath.Join(s.rootDir, name+ext)
	if err := os.WriteFile(path, value, perms); err != nil {
		return fmt.Errorf("file datastore: failed to write key %q: %w", key, err)
	}

	s.ext[name] = ext
	return nil
}

// Delete removes the key and its value from storage.
// Returns datastore.ErrNotFound if the key does not exist.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.delete(key)
}

// delete removes a single key. Callers must hold the write lock.
func (s *Store) delete(key string) error {
	path, err := s.keyToPath(key)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return datastore.ErrNotFound
		}
		return fmt.Errorf("file datastore: failed to stat key %q: %w", key, err)
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("file datastore: failed to delete key %q: %w", key, err)
	}

	name, _ := keyToName(key)
	delete(s.ext, name)
	return nil
}

// List returns all keys with the given prefix, in sorted order.
func (s *Store) List(prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.rootDir)
	if err != nil {
		return nil, fmt.Errorf("file datastore: failed to list keys: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if ext, ok := s.extFor(name); ok {
			name = strings.TrimSuffix(name, ext)
		}
		key := "/" + name
		if prefix == "" || strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)
	return keys, nil
}

// extFor resolves the recorded extension for a directory entry name.
func (s *Store) extFor(fileName string) (string, bool) {
	for name, ext := range s.ext {
		if ext != "" && fileName == name+ext {
			return ext, true
		}
	}
	// A key recorded without an extension is listed under its full name.
	if ext, ok := s.ext[fileName]; ok && ext == "" {
		return "", false
	}
	// Fall back to the literal file extension for entries written by a
	// previous process.
	if ext := filepath.Ext(fileName); ext != "" {
		return ext, true
	}
	return "", false
}

// Batch returns a new write batch. Commit applies mutations sequentially
// under the store lock; a crash mid-commit may leave a partial batch.
func (s *Store) Batch() (datastore.Batch, error) {
	return &batch{store: s}, nil
}

// Close releases any resources held by the store.
// For file storage this is a no-op, provided for interface compliance.
func (s *Store) Close() error {
	return nil
}

// PathFor returns the file path backing the given key, when the key exists.
// Implements datastore.PathHinter.
func (s *Store) PathFor(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path, err := s.keyToPath(key)
	if err != nil {
		return "", false
	}
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// keyToPath resolves a key to its backing file path, honoring the recorded
// extension. Keys written by a previous process are resolved by scanning the
// root directory for "<name>.<ext>". Callers must hold at least the read
// lock.
func (s *Store) keyToPath(key string) (string, error) {
	name, err := keyToName(key)
	if err != nil {
		return "", err
	}
	if ext, ok := s.ext[name]; ok {
		return filepath.Join(s.rootDir, name+ext), nil
	}

	bare := filepath.Join(s.rootDir, name)
	if _, err := os.Stat(bare); err == nil {
		return bare, nil
	}
	if entries, err := os.ReadDir(s.rootDir); err == nil {
		for _, entry := range entries {
			if !entry.IsDir() && strings.HasPrefix(entry.Name(), name+".") {
				return filepath.Join(s.rootDir, entry.Name()), nil
			}
		}
	}
	return bare, nil
}

// keyToName validates a key and strips the leading slash.
// Storage keys are flat: one path segment, no traversal.
func keyToName(key string) (string, error) {
	if key == "" || !strings.HasPrefix(key, "/") {
		return "", datastore.ErrInvalidKey
	}
	name := key[1:]
	if name == "" || strings.Contains(name, "\x00") {
		return "", datastore.ErrInvalidKey
	}
	if strings.Contains(name, "/") || strings.Contains(name, "\\") || strings.Contains(name, "..") {
		return "", datastore.ErrInvalidKey
	}
	return name, nil
}

// batch stages mutations against a Store.
type batch struct {
	store     *Store
	ops       []batchOp
	committed bool
}

type batchOp struct {
	key    string
	value  []byte
	opts   *datastore.Options
	delete bool
}

// Put stages a value to be stored at key.
func (b *batch) Put(key string, value []byte, opts *datastore.Options) {
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	b.ops = append(b.ops, batchOp{key: key, value: valueCopy, opts: opts})
}

// Delete stages the removal of key.
func (b *batch) Delete(key string) {
	b.ops = append(b.ops, batchOp{key: key, delete: true})
}

// Commit applies all staged mutations in order.
// Deletes of absent keys are ignored during commit.
func (b *batch) Commit() error {
	if b.committed {
		return datastore.ErrBatchCommitted
	}
	b.committed = true

	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	for _, op := range b.ops {
		if op.delete {
			if err := b.store.delete(op.key); err != nil && err != datastore.ErrNotFound {
				return err
			}
			continue
		}
		if err := b.store.put(op.key, op.value, op.opts); err != nil {
			return err
		}
	}
	return nil
}

// Verify interface compliance at compile time.
var (
	_ datastore.Datastore  = (*Store)(nil)
	_ datastore.PathHinter = (*Store)(nil)
)
