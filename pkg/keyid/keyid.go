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

// Package keyid derives the stable public identifier of a key: the SHA-256
// of the DER-encoded SubjectPublicKeyInfo, wrapped as a multihash and
// rendered in base58. For RSA keys this matches the libp2p PeerID
// derivation, so the identifier is interoperable with peer identities.
package keyid

import (
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/multiformats/go-multihash"
)

// FromPrivateKey derives the key ID for an RSA private key.
// The ID is deterministic: the same key material always yields the same
// string, independent of the key's name or storage location.
func FromPrivateKey(key *rsa.PrivateKey) (string, error) {
	if key == nil {
		return "", fmt.Errorf("keyid: private key is required")
	}
	return FromPublicKey(&key.PublicKey)
}

// FromPublicKey derives the key ID for an RSA public key.
func FromPublicKey(pub *rsa.PublicKey) (string, error) {
	if pub == nil {
		return "", fmt.Errorf("keyid: public key is required")
	}

	spki, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("keyid: failed to encode SubjectPublicKeyInfo: %w", err)
	}

	digest := sha256.Sum256(spki)
	mh, err := multihash.Encode(digest[:], multihash.SHA2_256)
	if err != nil {
		return "", fmt.Errorf("keyid: failed to encode multihash: %w", err)
	}

	return base58.Encode(mh), nil
}
