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

// KeyInfo describes a stored key. It is ephemeral: recomputed from the
// stored blob on demand, never persisted.
type KeyInfo struct {
	// Name is the key's user-supplied name.
	Name string `json:"name"`

	// ID is the key's stable public identifier: the base58 multihash of the
	// SHA-256 of its DER-encoded SubjectPublicKeyInfo.
	ID string `json:"id"`

	// Path is the file backing the key, when the datastore can provide one.
	Path string `json:"path,omitempty"`
}

// EncryptedData is the result of encrypting a payload to a named keypair.
type EncryptedData struct {
	// Algorithm identifies the encryption scheme.
	Algorithm string `json:"algorithm"`

	// CipherData is the ciphertext.
	CipherData []byte `json:"cipherData"`
}

// RSAPKCS1Padding is the algorithm identifier returned by Encrypt.
const RSAPKCS1Padding = "RSA_PKCS1_PADDING"
