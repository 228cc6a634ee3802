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

// Package kdf provides key derivation function adapters. The keychain uses
// the PBKDF2 adapter to derive its data-encrypting key from the user
// passphrase; parameters follow NIST SP 800-132.
package kdf

import (
	"crypto"
	"errors"
)

// Algorithm represents the key derivation function algorithm type
type Algorithm string

const (
	// AlgorithmPBKDF2 represents Password-Based Key Derivation Function 2 (RFC 2898)
	AlgorithmPBKDF2 Algorithm = "PBKDF2"
)

// String returns the string representation of the KDF algorithm
func (a Algorithm) String() string {
	return string(a)
}

// Params contains parameters for key derivation
type Params struct {
	// Algorithm specifies which KDF algorithm to use
	Algorithm Algorithm

	// Salt is the cryptographic salt (should be random and unique per keychain)
	Salt []byte

	// Iterations specifies the number of iterations
	Iterations int

	// KeyLength is the desired output key length in bytes
	KeyLength int

	// Hash is the PRF hash function
	Hash crypto.Hash
}

// KDF is the interface for key derivation function adapters.
// Applications implement this interface to integrate their KDF implementation.
type KDF interface {
	// DeriveKey derives a key from the input key material using the
	// specified parameters. Returns the derived key or an error if
	// derivation fails.
	DeriveKey(ikm []byte, params *Params) ([]byte, error)

	// Algorithm returns the KDF algorithm this adapter implements
	Algorithm() Algorithm

	// ValidateParams validates the KDF parameters for this algorithm
	ValidateParams(params *Params) error
}

// Common errors
var (
	// ErrInvalidSalt indicates the salt is invalid (nil, empty, or too short)
	ErrInvalidSalt = errors.New("kdf: invalid salt")

	// ErrInvalidKeyLength indicates the requested key length is invalid
	ErrInvalidKeyLength = errors.New("kdf: invalid key length")

	// ErrInvalidIterations indicates the iteration count is invalid
	ErrInvalidIterations = errors.New("kdf: invalid iterations")

	// ErrInvalidHash indicates the hash function is invalid or not supported
	ErrInvalidHash = errors.New("kdf: invalid or unsupported hash function")

	// ErrInvalidIKM indicates the input key material is invalid
	ErrInvalidIKM = errors.New("kdf: invalid input key material")

	// ErrUnsupportedAlgorithm indicates the algorithm is not supported by this adapter
	ErrUnsupportedAlgorithm = errors.New("kdf: unsupported algorithm")
)
