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
	"errors"
	"fmt"
)

// Error messages are part of the observable contract: callers and tests
// match on them, and they are kept stable across implementations of the
// keychain.
var (
	// ErrDatastoreRequired indicates the keychain was constructed without a
	// datastore.
	ErrDatastoreRequired = errors.New("datastore is required")

	// ErrPassphraseRequired indicates no passphrase was supplied.
	ErrPassphraseRequired = errors.New("passPhrase is required")

	// ErrPassphraseTooShort indicates the passphrase is below the 20
	// character floor.
	ErrPassphraseTooShort = errors.New("passPhrase must be least 20 characters")

	// ErrDEKKeyLengthTooSmall indicates the derived key length is below the
	// 112 bit floor of NIST SP 800-132.
	ErrDEKKeyLengthTooSmall = errors.New("dek.keyLength must be least 14 bytes")

	// ErrDEKSaltTooSmall indicates the salt is below the 128 bit floor.
	ErrDEKSaltTooSmall = errors.New("dek.salt must be least 16 bytes")

	// ErrDEKIterationsTooSmall indicates the iteration count is below the
	// floor.
	ErrDEKIterationsTooSmall = errors.New("dek.iterationCount must be least 1000 iterations")

	// ErrPasswordRequired indicates a password is required but was not
	// provided.
	ErrPasswordRequired = errors.New("Password is required")

	// ErrDataRequired indicates a data buffer is required but was not
	// provided.
	ErrDataRequired = errors.New("Data is required")

	// ErrPeerPrivKeyRequired indicates the imported peer carries no private
	// key.
	ErrPeerPrivKeyRequired = errors.New("Peer.privKey is required")

	// ErrWrongPassword indicates an imported PEM could not be decrypted.
	ErrWrongPassword = errors.New("Cannot read the key, most likely the password is wrong")

	// ErrRateLimited indicates the per-name operation rate limit was hit.
	ErrRateLimited = errors.New("keyring: rate limit exceeded")

	// ErrClosed indicates the keychain has been closed.
	ErrClosed = errors.New("keyring: closed")
)

// errInvalidKeyName reports a name that failed validation or is reserved.
func errInvalidKeyName(name string) error {
	return fmt.Errorf("Invalid key name '%s'", name)
}

// errKeyExists reports a create/import/rename collision.
func errKeyExists(name string) error {
	return fmt.Errorf("Key '%s' already exists", name)
}

// errKeyNotFound reports an operation against an absent key. The underlying
// cause is appended as detail.
func errKeyNotFound(name string, cause error) error {
	return fmt.Errorf("Key '%s' does not exist. %v", name, cause)
}

// errInvalidKeyType reports an unsupported key type.
func errInvalidKeyType(keyType string) error {
	return fmt.Errorf("Invalid key type '%s'", keyType)
}

// errInvalidKeySize reports an RSA key size below the NIST SP 800-131A floor.
func errInvalidKeySize(size int) error {
	return fmt.Errorf("Invalid RSA key size %d", size)
}
