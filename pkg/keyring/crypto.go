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
	"crypto/rand"
	"crypto/rsa"
	"time"

	"github.com/jeremyhahn/go-keyring/pkg/adapters/metrics"
)

// Encrypt encrypts a small payload with RSA PKCS#1 v1.5 using the public
// half of the named keypair. The semantics are "encrypt to the owner of
// this keypair": only the holder of the stored private key (this keychain)
// can decrypt the result.
func (kc *Keychain) Encrypt(ctx context.Context, name string, data []byte) (*EncryptedData, error) {
	const op = "encrypt"
	start := time.Now()

	if err := kc.allow(name); err != nil {
		return nil, kc.fail(ctx, op, name, err)
	}
	if !validName(name, false) {
		return nil, kc.fail(ctx, op, name, errInvalidKeyName(name))
	}
	if len(data) == 0 {
		return nil, kc.fail(ctx, op, name, ErrDataRequired)
	}

	key, err := kc.getKey(ctx, name)
	if err != nil {
		return nil, kc.fail(ctx, op, name, err)
	}

	cipherData, err := rsa.EncryptPKCS1v15(rand.Reader, &key.PublicKey, data)
	if err != nil {
		return nil, kc.fail(ctx, op, name, err)
	}

	_ = kc.metrics.RecordCounter(ctx, metrics.MetricEncrypt, opTags(op))
	kc.observe(ctx, op, start)
	return &EncryptedData{
		Algorithm:  RSAPKCS1Padding,
		CipherData: cipherData,
	}, nil
}

// Decrypt is the inverse of Encrypt: it opens an RSA PKCS#1 v1.5 ciphertext
// with the named private key.
func (kc *Keychain) Decrypt(ctx context.Context, name string, data []byte) ([]byte, error) {
	const op = "decrypt"
	start := time.Now()

	if err := kc.allow(name); err != nil {
		return nil, kc.fail(ctx, op, name, err)
	}
	if !validName(name, false) {
		return nil, kc.fail(ctx, op, name, errInvalidKeyName(name))
	}
	if len(data) == 0 {
		return nil, kc.fail(ctx, op, name, ErrDataRequired)
	}

	key, err := kc.getKey(ctx, name)
	if err != nil {
		return nil, kc.fail(ctx, op, name, err)
	}

	plaintext, err := rsa.DecryptPKCS1v15(rand.Reader, key, data)
	if err != nil {
		return nil, kc.fail(ctx, op, name, err)
	}

	_ = kc.metrics.RecordCounter(ctx, metrics.MetricDecrypt, opTags(op))
	kc.observe(ctx, op, start)
	return plaintext, nil
}
