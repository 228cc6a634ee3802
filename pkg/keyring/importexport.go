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
	"errors"
	"time"

	"github.com/jeremyhahn/go-keyring/pkg/adapters/metrics"
	"github.com/jeremyhahn/go-keyring/pkg/codec"
	"github.com/jeremyhahn/go-keyring/pkg/names"
	"github.com/jeremyhahn/go-keyring/pkg/peer"
)

// ExportKey re-encrypts the named key under a caller-supplied password and
// returns the resulting PKCS#8 encrypted PEM. The DEK itself is never
// revealed: the blob is opened with the DEK and immediately re-sealed with
// the export password using AES-256, a fresh salt of at least 16 bytes and
// the SHA-512 PRF.
func (kc *Keychain) ExportKey(ctx context.Context, name, password string) (string, error) {
	const op = "export"
	start := time.Now()

	if err := kc.allow(name); err != nil {
		return "", kc.fail(ctx, op, name, err)
	}
	if !validName(name, false) {
		return "", kc.fail(ctx, op, name, errInvalidKeyName(name))
	}
	if password == "" {
		return "", kc.fail(ctx, op, name, ErrPasswordRequired)
	}

	key, err := kc.getKey(ctx, name)
	if err != nil {
		return "", kc.fail(ctx, op, name, err)
	}

	pem, err := codec.EncodeEncryptedPEM(key, []byte(password), &codec.EncodeOptions{
		IterationCount: kc.iterations,
	})
	if err != nil {
		return "", kc.fail(ctx, op, name, err)
	}

	_ = kc.metrics.RecordCounter(ctx, metrics.MetricKeyExport, opTags(op))
	kc.observe(ctx, op, start)
	return pem, nil
}

// ImportKey decrypts an externally supplied PKCS#8 encrypted PEM with the
// given password, re-encrypts it under the keychain's DEK and stores it at
// the given name.
func (kc *Keychain) ImportKey(ctx context.Context, name, pemData, password string) (*KeyInfo, error) {
	const op = "import"
	start := time.Now()

	if err := kc.allow(name); err != nil {
		return nil, kc.fail(ctx, op, name, err)
	}
	if !validName(name, true) {
		return nil, kc.fail(ctx, op, name, errInvalidKeyName(name))
	}

	exists, err := kc.store.Exists(names.ToDsKey(name))
	if err != nil {
		return nil, kc.fail(ctx, op, name, err)
	}
	if exists {
		return nil, kc.fail(ctx, op, name, errKeyExists(name))
	}

	key, err := codec.DecodeEncryptedPEM(pemData, []byte(password))
	if err != nil {
		if errors.Is(err, codec.ErrCannotDecrypt) {
			return nil, kc.fail(ctx, op, name, ErrWrongPassword)
		}
		return nil, kc.fail(ctx, op, name, err)
	}

	if err := kc.storeKey(ctx, name, key); err != nil {
		return nil, kc.fail(ctx, op, name, err)
	}

	info, err := kc.getKeyInfo(ctx, name)
	if err != nil {
		return nil, kc.fail(ctx, op, name, err)
	}

	kc.logger.Info(ctx, "key imported", "name", name, "id", info.ID)
	_ = kc.metrics.RecordCounter(ctx, metrics.MetricKeyImport, opTags(op))
	kc.observe(ctx, op, start)
	return info, nil
}

// ImportPeer stores a peer identity's private key under the given name.
// The peer's key is round-tripped through its protobuf envelope; envelope
// unmarshal failures are surfaced, never masked.
func (kc *Keychain) ImportPeer(ctx context.Context, name string, p *peer.Peer) (*KeyInfo, error) {
	const op = "import-peer"
	start := time.Now()

	if err := kc.allow(name); err != nil {
		return nil, kc.fail(ctx, op, name, err)
	}
	if !validName(name, true) {
		return nil, kc.fail(ctx, op, name, errInvalidKeyName(name))
	}
	if p == nil || p.PrivKey == nil {
		return nil, kc.fail(ctx, op, name, ErrPeerPrivKeyRequired)
	}

	envelope, err := p.PrivKey.Bytes()
	if err != nil {
		return nil, kc.fail(ctx, op, name, err)
	}

	key, err := peer.UnmarshalPrivateKey(envelope)
	if err != nil {
		return nil, kc.fail(ctx, op, name, err)
	}

	exists, err := kc.store.Exists(names.ToDsKey(name))
	if err != nil {
		return nil, kc.fail(ctx, op, name, err)
	}
	if exists {
		return nil, kc.fail(ctx, op, name, errKeyExists(name))
	}

	if err := kc.storeKey(ctx, name, key.Key()); err != nil {
		return nil, kc.fail(ctx, op, name, err)
	}

	info, err := kc.getKeyInfo(ctx, name)
	if err != nil {
		return nil, kc.fail(ctx, op, name, err)
	}

	kc.logger.Info(ctx, "peer key imported", "name", name, "id", info.ID)
	_ = kc.metrics.RecordCounter(ctx, metrics.MetricKeyImport, opTags(op))
	kc.observe(ctx, op, start)
	return info, nil
}
