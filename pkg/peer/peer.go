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

// Package peer implements the libp2p private-key protobuf envelope:
//
//	message PrivateKey {
//	    required KeyType Type = 1;
//	    required bytes  Data  = 2;
//	}
//
// For RSA keys the Data field carries the PKCS#1 DER encoding. The envelope
// schema is external and stable; it is consumed when importing a peer
// identity into the keychain.
package peer

import (
	"crypto/rsa"
	"crypto/x509"
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// KeyType enumerates the key types carried by the envelope.
type KeyType int32

const (
	// KeyTypeRSA identifies an RSA key with PKCS#1 DER data.
	KeyTypeRSA KeyType = 0

	// KeyTypeEd25519 identifies an Ed25519 key.
	KeyTypeEd25519 KeyType = 1

	// KeyTypeSecp256k1 identifies a secp256k1 key.
	KeyTypeSecp256k1 KeyType = 2

	// KeyTypeECDSA identifies an ECDSA key.
	KeyTypeECDSA KeyType = 3
)

// Envelope field numbers.
const (
	fieldType = 1
	fieldData = 2
)

var (
	// ErrPrivKeyRequired is returned when a peer has no private key.
	ErrPrivKeyRequired = errors.New("peer: private key is required")

	// ErrUnsupportedKeyType is returned for envelope key types other than RSA.
	ErrUnsupportedKeyType = errors.New("peer: unsupported key type")

	// ErrMalformedEnvelope is returned when the protobuf envelope cannot be
	// parsed or is missing required fields.
	ErrMalformedEnvelope = errors.New("peer: malformed private key envelope")
)

// PrivateKey is an RSA private key carried in a libp2p key envelope.
type PrivateKey struct {
	key *rsa.PrivateKey
}

// NewPrivateKey wraps an RSA private key for envelope marshalling.
func NewPrivateKey(key *rsa.PrivateKey) *PrivateKey {
	return &PrivateKey{key: key}
}

// Key returns the underlying RSA private key.
func (k *PrivateKey) Key() *rsa.PrivateKey {
	return k.key
}

// Bytes returns the protobuf envelope encoding of the key.
func (k *PrivateKey) Bytes() ([]byte, error) {
	if k == nil || k.key == nil {
		return nil, ErrPrivKeyRequired
	}

	data := x509.MarshalPKCS1PrivateKey(k.key)

	var buf []byte
	buf = protowire.AppendTag(buf, fieldType, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(KeyTypeRSA))
	buf = protowire.AppendTag(buf, fieldData, protowire.BytesType)
	buf = protowire.AppendBytes(buf, data)
	return buf, nil
}

// UnmarshalPrivateKey parses a protobuf key envelope and decodes the DER key
// body into an RSA private key.
func UnmarshalPrivateKey(data []byte) (*PrivateKey, error) {
	if len(data) == 0 {
		return nil, ErrMalformedEnvelope
	}

	var (
		keyType  KeyType
		keyData  []byte
		haveType bool
		haveData bool
	)
	remaining := data

	for len(remaining) > 0 {
		num, typ, n := protowire.ConsumeTag(remaining)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, protowire.ParseError(n))
		}
		remaining = remaining[n:]

		switch {
		case num == fieldType && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(remaining)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, protowire.ParseError(n))
			}
			keyType = KeyType(v)
			haveType = true
			remaining = remaining[n:]

		case num == fieldData && typ == protowire.BytesType:
			b, n := protowire.ConsumeBytes(remaining)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, protowire.ParseError(n))
			}
			keyData = b
			haveData = true
			remaining = remaining[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, remaining)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, protowire.ParseError(n))
			}
			remaining = remaining[n:]
		}
	}

	if !haveType || !haveData {
		return nil, ErrMalformedEnvelope
	}
	if keyType != KeyTypeRSA {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedKeyType, keyType)
	}

	key, err := x509.ParsePKCS1PrivateKey(keyData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	return &PrivateKey{key: key}, nil
}

// Peer is a minimal peer identity: a stable ID plus its private key.
type Peer struct {
	// ID is the peer's identifier, when known.
	ID string

	// PrivKey is the peer's private key.
	PrivKey *PrivateKey
}
