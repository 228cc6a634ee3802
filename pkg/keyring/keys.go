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
	"context"
	"crypto/rsa"
	"time"

	"github.com/jeremyhahn/go-keyring/pkg/adapters/metrics"
	"github.com/jeremyhahn/go-keyring/pkg/codec"
	"github.com/jeremyhahn/go-keyring/pkg/datastore"
	"github.com/jeremyhahn/go-keyring/pkg/keyid"
	"github.com/jeremyhahn/go-keyring/pkg/names"
)

// CreateKey generates a new key of the given type and size, protects it
// under the keychain's DEK and stores it at the given name.
//
// Only the "rsa" key type is supported; RSA sizes below 2048 bits are
// refused per NIST SP 800-131A.
func (kc *Keychain) CreateKey(ctx context.Context, name, keyType string, size int) (*KeyInfo, error) {
	const op = "create"
	start := time.Now()

	if err := kc.allow(name); err != nil {
		return nil, kc.fail(ctx, op, name, err)
	}
	if !validName(name, true) {
		return nil, kc.fail(ctx, op, name, errInvalidKeyName(name))
	}

	// The existence probe's own failure must not be mistaken for "absent".
	exists, err := kc.store.Exists(names.ToDsKey(name))
	if err != nil {
		return nil, kc.fail(ctx, op, name, err)
	}
	if exists {
		return nil, kc.fail(ctx, op, name, errKeyExists(name))
	}

	if keyType != KeyTypeRSA {
		return nil, kc.fail(ctx, op, name, errInvalidKeyType(keyType))
	}
	if size < codec.MinRSAKeySize {
		return nil, kc.fail(ctx, op, name, errInvalidKeySize(size))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, err := codec.GenerateRSA(size)
	if err != nil {
		return nil, kc.fail(ctx, op, name, err)
	}

	if err := kc.storeKey(ctx, name, key); err != nil {
		return nil, kc.fail(ctx, op, name, err)
	}

	info, err := kc.getKeyInfo(ctx, name)
	if err != nil {
		return nil, kc.fail(ctx, op, name, err)
	}

	kc.logger.Info(ctx, "key created", "name", name, "id", info.ID)
	_ = kc.metrics.RecordCounter(ctx, metrics.MetricKeyCreate, opTags(op))
	kc.observe(ctx, op, start)
	return info, nil
}

// ListKeys returns a KeyInfo for every stored key. Order follows the
// datastore's enumeration order; no sort is promised.
func (kc *Keychain) ListKeys(ctx context.Context) ([]*KeyInfo, error) {
	const op = "list"
	start := time.Now()

	keys, err := kc.store.List("/")
	if err != nil {
		return nil, kc.fail(ctx, op, "", err)
	}

	infos := make([]*KeyInfo, 0, len(keys))
	for _, dsKey := range keys {
		info, err := kc.getKeyInfo(ctx, names.FromDsKey(dsKey))
		if err != nil {
			return nil, kc.fail(ctx, op, "", err)
		}
		infos = append(infos, info)
	}

	_ = kc.metrics.RecordCounter(ctx, metrics.MetricKeyList, opTags(op))
	kc.observe(ctx, op, start)
	return infos, nil
}

// FindKeyByID returns the KeyInfo whose ID matches, or nil when no stored
// key has that ID. The scan is linear over the keychain; deliberately
// simple.
func (kc *Keychain) FindKeyByID(ctx context.Context, id string) (*KeyInfo, error) {
	infos, err := kc.ListKeys(ctx)
	if err != nil {
		return nil, err
	}
	for _, info := range infos {
		if info.ID == id {
			return info, nil
		}
	}
	return nil, nil
}

// FindKeyByName returns the KeyInfo for the named key.
func (kc *Keychain) FindKeyByName(ctx context.Context, name string) (*KeyInfo, error) {
	const op = "find"

	if err := kc.allow(name); err != nil {
		return nil, kc.fail(ctx, op, name, err)
	}
	if !validName(name, false) {
		return nil, kc.fail(ctx, op, name, errInvalidKeyName(name))
	}
	info, err := kc.getKeyInfo(ctx, name)
	if err != nil {
		return nil, kc.fail(ctx, op, name, err)
	}
	return info, nil
}

// GetKeyInfo is an alias of FindKeyByName retained for API compatibility.
func (kc *Keychain) GetKeyInfo(ctx context.Context, name string) (*KeyInfo, error) {
	return kc.FindKeyByName(ctx, name)
}

// RemoveKey deletes the named key from the datastore.
func (kc *Keychain) RemoveKey(ctx context.Context, name string) error {
	const op = "remove"
	start := time.Now()

	if err := kc.allow(name); err != nil {
		return kc.fail(ctx, op, name, err)
	}
	if !validName(name, true) {
		return kc.fail(ctx, op, name, errInvalidKeyName(name))
	}

	dsKey := names.ToDsKey(name)
	exists, err := kc.store.Exists(dsKey)
	if err != nil {
		return kc.fail(ctx, op, name, err)
	}
	if !exists {
		return kc.fail(ctx, op, name, errKeyNotFound(name, datastore.ErrNotFound))
	}

	if err := kc.store.Delete(dsKey); err != nil {
		return kc.fail(ctx, op, name, err)
	}

	kc.logger.Info(ctx, "key removed", "name", name)
	_ = kc.metrics.RecordCounter(ctx, metrics.MetricKeyRemove, opTags(op))
	kc.observe(ctx, op, start)
	return nil
}

// RenameKey moves a key to a new name. The move is staged as a single
// datastore batch containing the put of the new key and the delete of the
// old one: if the datastore's batch is atomic the rename is atomic,
// otherwise a crash mid-commit may leave both names present, or only the
// old one.
//
// The key material is unchanged, so the key's ID is preserved across the
// rename.
func (kc *Keychain) RenameKey(ctx context.Context, oldName, newName string) (*KeyInfo, error) {
	const op = "rename"
	start := time.Now()

	if err := kc.allow(oldName); err != nil {
		return nil, kc.fail(ctx, op, oldName, err)
	}
	if !validName(oldName, true) {
		return nil, kc.fail(ctx, op, oldName, errInvalidKeyName(oldName))
	}
	if !validName(newName, true) {
		return nil, kc.fail(ctx, op, oldName, errInvalidKeyName(newName))
	}

	newExists, err := kc.store.Exists(names.ToDsKey(newName))
	if err != nil {
		return nil, kc.fail(ctx, op, oldName, err)
	}
	if newExists {
		return nil, kc.fail(ctx, op, oldName, errKeyExists(newName))
	}

	pem, err := kc.store.Get(names.ToDsKey(oldName))
	if err != nil {
		return nil, kc.fail(ctx, op, oldName, errKeyNotFound(oldName, err))
	}

	batch, err := kc.store.Batch()
	if err != nil {
		return nil, kc.fail(ctx, op, oldName, err)
	}
	batch.Put(names.ToDsKey(newName), pem, storedKeyOptions())
	batch.Delete(names.ToDsKey(oldName))
	if err := batch.Commit(); err != nil {
		return nil, kc.fail(ctx, op, oldName, err)
	}

	info, err := kc.getKeyInfo(ctx, newName)
	if err != nil {
		return nil, kc.fail(ctx, op, oldName, err)
	}

	kc.logger.Info(ctx, "key renamed", "from", oldName, "to", newName)
	_ = kc.metrics.RecordCounter(ctx, metrics.MetricKeyRename, opTags(op))
	kc.observe(ctx, op, start)
	return info, nil
}

// storeKey encrypts a private key under the DEK and persists it.
func (kc *Keychain) storeKey(ctx context.Context, name string, key *rsa.PrivateKey) error {
	dek, err := kc.dekPassword()
	if err != nil {
		return err
	}

	pem, err := codec.EncodeEncryptedPEM(key, dek, &codec.EncodeOptions{
		IterationCount: kc.iterations,
	})
	if err != nil {
		return err
	}

	return kc.store.Put(names.ToDsKey(name), []byte(pem), storedKeyOptions())
}

// getKey loads and decrypts the named key. Absence is reported as a
// not-found error carrying the datastore detail.
func (kc *Keychain) getKey(ctx context.Context, name string) (*rsa.PrivateKey, error) {
	pem, err := kc.store.Get(names.ToDsKey(name))
	if err != nil {
		return nil, errKeyNotFound(name, err)
	}

	dek, err := kc.dekPassword()
	if err != nil {
		return nil, err
	}

	return codec.DecodeEncryptedPEM(string(pem), dek)
}

// getKeyInfo recomputes the KeyInfo for a stored key: the blob is loaded,
// opened with the DEK and its stable ID derived from the public half.
func (kc *Keychain) getKeyInfo(ctx context.Context, name string) (*KeyInfo, error) {
	key, err := kc.getKey(ctx, name)
	if err != nil {
		return nil, err
	}

	id, err := keyid.FromPrivateKey(key)
	if err != nil {
		return nil, err
	}

	info := &KeyInfo{Name: name, ID: id}
	if hinter, ok := kc.store.(datastore.PathHinter); ok {
		if path, ok := hinter.PathFor(names.ToDsKey(name)); ok {
			info.Path = path
		}
	}
	return info, nil
}

// storedKeyOptions returns the datastore options for stored key blobs.
func storedKeyOptions() *datastore.Options {
	return &datastore.Options{
		Permissions: 0600,
		Extension:   storedKeyExtension,
	}
}
