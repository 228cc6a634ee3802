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

// Package codec implements the key material codec: RSA key generation and
// the PKCS#8 encrypted PEM encoding used for every stored and exported key.
package codec

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/youmark/pkcs8"
)

const (
	// MinRSAKeySize is the minimum RSA modulus size in bits (NIST SP 800-131A).
	MinRSAKeySize = 2048

	// PEMTypeEncryptedPrivateKey is the PEM block type for encrypted PKCS#8 keys.
	PEMTypeEncryptedPrivateKey = "ENCRYPTED PRIVATE KEY"

	// DefaultSaltSize is the PBES2 PBKDF2 salt size in bytes.
	DefaultSaltSize = 16

	// DefaultIterationCount is the PBES2 PBKDF2 iteration count used when
	// the caller does not supply one.
	DefaultIterationCount = 10000
)

var (
	// ErrKeySizeTooSmall is returned when an RSA key size is below the floor.
	ErrKeySizeTooSmall = errors.New("codec: RSA key size below 2048 bits")

	// ErrCannotDecrypt is returned when an encrypted PEM cannot be opened,
	// most likely because the password is wrong.
	ErrCannotDecrypt = errors.New("codec: cannot decrypt key")

	// ErrNotRSA is returned when a decoded private key is not RSA.
	ErrNotRSA = errors.New("codec: not an RSA private key")

	// ErrInvalidPEM is returned when the input is not a PEM-encoded
	// encrypted PKCS#8 private key.
	ErrInvalidPEM = errors.New("codec: invalid encrypted PKCS#8 PEM")
)

// EncodeOptions control the PBES2 parameters used when encrypting a key to
// PKCS#8. The zero value selects AES-256-CBC with a 16-byte salt, 10000
// iterations and the SHA-512 PRF.
type EncodeOptions struct {
	// IterationCount is the PBKDF2 iteration count.
	IterationCount int

	// SaltSize is the PBKDF2 salt size in bytes.
	SaltSize int

	// HMACHash is the PBKDF2 PRF.
	HMACHash crypto.Hash
}

// GenerateRSA generates a new RSA private key of the given size in bits.
// Sizes below 2048 bits are rejected.
func GenerateRSA(bits int) (*rsa.PrivateKey, error) {
	if bits < MinRSAKeySize {
		return nil, fmt.Errorf("%w: %d", ErrKeySizeTooSmall, bits)
	}
	return rsa.GenerateKey(rand.Reader, bits)
}

// EncodeEncryptedPEM encrypts an RSA private key to a PKCS#8 encrypted PEM
// under the given password.
func EncodeEncryptedPEM(key *rsa.PrivateKey, password []byte, opts *EncodeOptions) (string, error) {
	if key == nil {
		return "", fmt.Errorf("codec: private key is required")
	}
	if len(password) == 0 {
		return "", fmt.Errorf("codec: password is required")
	}

	iterations := DefaultIterationCount
	saltSize := DefaultSaltSize
	hmacHash := crypto.SHA512
	if opts != nil {
		if opts.IterationCount > 0 {
			iterations = opts.IterationCount
		}
		if opts.SaltSize > 0 {
			saltSize = opts.SaltSize
		}
		if opts.HMACHash != 0 {
			hmacHash = opts.HMACHash
		}
	}

	der, err := pkcs8.MarshalPrivateKey(key, password, &pkcs8.Opts{
		Cipher: pkcs8.AES256CBC,
		KDFOpts: pkcs8.PBKDF2Opts{
			SaltSize:       saltSize,
			IterationCount: iterations,
			HMACHash:       hmacHash,
		},
	})
	if err != nil {
		return "", fmt.Errorf("codec: PKCS#8 encoding failed: %w", err)
	}

	block := &pem.Block{
		Type:  PEMTypeEncryptedPrivateKey,
		Bytes: der,
	}
	return string(pem.EncodeToMemory(block)), nil
}

// DecodeEncryptedPEM decrypts a PKCS#8 encrypted PEM with the given
// password. Returns ErrInvalidPEM when the input is not an ENCRYPTED PRIVATE
// KEY PEM block, ErrCannotDecrypt when the password is wrong or the block
// body is not a decryptable PKCS#8 private key, and ErrNotRSA when the key
// is not RSA; callers are expected to route these errors through the
// keychain's delayed error path.
func DecodeEncryptedPEM(pemData string, password []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(pemData))
	if block == nil || block.Type != PEMTypeEncryptedPrivateKey {
		return nil, ErrInvalidPEM
	}

	key, err := pkcs8.ParsePKCS8PrivateKey(block.Bytes, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCannotDecrypt, err)
	}

	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotRSA, key)
	}
	return rsaKey, nil
}
