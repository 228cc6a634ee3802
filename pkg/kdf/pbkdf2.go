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

package kdf

import (
	"encoding/hex"

	// Link the SHA-2 implementations so crypto.Hash.New can construct them.
	_ "crypto/sha256"
	_ "crypto/sha512"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// MinPBKDF2Iterations is the minimum iteration count (NIST SP 800-132)
	MinPBKDF2Iterations = 1000

	// MinPBKDF2SaltLength is the minimum salt length in bytes (NIST SP 800-132)
	MinPBKDF2SaltLength = 16

	// MinPBKDF2KeyLength is the minimum derived key length in bytes (112 bits)
	MinPBKDF2KeyLength = 14
)

// PBKDF2 implements the KDF interface using PBKDF2 (RFC 2898).
// PBKDF2 is suitable for deriving keys from passwords.
type PBKDF2 struct{}

// NewPBKDF2 creates a new PBKDF2 adapter
func NewPBKDF2() *PBKDF2 {
	return &PBKDF2{}
}

// DeriveKey derives a key using PBKDF2
func (p *PBKDF2) DeriveKey(ikm []byte, params *Params) ([]byte, error) {
	if err := p.ValidateParams(params); err != nil {
		return nil, err
	}

	if len(ikm) == 0 {
		return nil, ErrInvalidIKM
	}

	key := pbkdf2.Key(ikm, params.Salt, params.Iterations, params.KeyLength, params.Hash.New)

	return key, nil
}

// DeriveDEK derives the keychain data-encrypting key and renders it as
// lowercase hex. Downstream PKCS#8 encryption consumes the DEK as a
// passphrase string rather than raw bytes; the hex rendering keeps the
// stored blobs interoperable across implementations.
func (p *PBKDF2) DeriveDEK(passphrase string, params *Params) (string, error) {
	key, err := p.DeriveKey([]byte(passphrase), params)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(key), nil
}

// Algorithm returns the KDF algorithm
func (p *PBKDF2) Algorithm() Algorithm {
	return AlgorithmPBKDF2
}

// ValidateParams validates PBKDF2 parameters
func (p *PBKDF2) ValidateParams(params *Params) error {
	if params == nil {
		return ErrInvalidKeyLength
	}

	if params.Algorithm != "" && params.Algorithm != AlgorithmPBKDF2 {
		return ErrUnsupportedAlgorithm
	}

	if params.KeyLength < MinPBKDF2KeyLength {
		return ErrInvalidKeyLength
	}

	if len(params.Salt) < MinPBKDF2SaltLength {
		return ErrInvalidSalt
	}

	if params.Iterations < MinPBKDF2Iterations {
		return ErrInvalidIterations
	}

	if params.Hash == 0 || !params.Hash.Available() {
		return ErrInvalidHash
	}

	return nil
}

// Verify interface compliance at compile time.
var _ KDF = (*PBKDF2)(nil)
