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
	"crypto"
	"strings"
	"testing"
)

func validParams() *Params {
	return &Params{
		Algorithm:  AlgorithmPBKDF2,
		Salt:       []byte("0123456789abcdef"),
		Iterations: 1000,
		KeyLength:  64,
		Hash:       crypto.SHA512,
	}
}

func TestDeriveKey(t *testing.T) {
	p := NewPBKDF2()

	key, err := p.DeriveKey([]byte("correct horse battery staple"), validParams())
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	if len(key) != 64 {
		t.Errorf("derived key length = %d, want 64", len(key))
	}

	// Deterministic for identical inputs
	again, err := p.DeriveKey([]byte("correct horse battery staple"), validParams())
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	if string(key) != string(again) {
		t.Error("DeriveKey is not deterministic")
	}

	// Different salt, different key
	params := validParams()
	params.Salt = []byte("fedcba9876543210")
	other, err := p.DeriveKey([]byte("correct horse battery staple"), params)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	if string(key) == string(other) {
		t.Error("different salts produced the same key")
	}
}

func TestDeriveDEK(t *testing.T) {
	p := NewPBKDF2()

	dek, err := p.DeriveDEK("this is not a secure phrase", validParams())
	if err != nil {
		t.Fatalf("DeriveDEK failed: %v", err)
	}

	// Hex rendering: twice the key length, lowercase hex alphabet only
	if len(dek) != 128 {
		t.Errorf("DEK length = %d, want 128", len(dek))
	}
	if dek != strings.ToLower(dek) {
		t.Error("DEK is not lowercase")
	}
	for _, r := range dek {
		if !strings.ContainsRune("0123456789abcdef", r) {
			t.Fatalf("DEK contains non-hex character %q", r)
		}
	}
}

func TestValidateParams(t *testing.T) {
	p := NewPBKDF2()

	tests := []struct {
		name     string
		mutate   func(*Params)
		expected error
	}{
		{"salt too short", func(p *Params) { p.Salt = []byte("short") }, ErrInvalidSalt},
		{"iterations too low", func(p *Params) { p.Iterations = 999 }, ErrInvalidIterations},
		{"key length too small", func(p *Params) { p.KeyLength = 13 }, ErrInvalidKeyLength},
		{"missing hash", func(p *Params) { p.Hash = 0 }, ErrInvalidHash},
		{"wrong algorithm", func(p *Params) { p.Algorithm = "HKDF" }, ErrUnsupportedAlgorithm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParams()
			tt.mutate(params)
			if err := p.ValidateParams(params); err != tt.expected {
				t.Errorf("ValidateParams returned %v, want %v", err, tt.expected)
			}
		})
	}

	t.Run("nil params", func(t *testing.T) {
		if err := p.ValidateParams(nil); err == nil {
			t.Error("ValidateParams(nil) should fail")
		}
	})

	t.Run("empty ikm", func(t *testing.T) {
		if _, err := p.DeriveKey(nil, validParams()); err != ErrInvalidIKM {
			t.Errorf("DeriveKey with empty ikm returned %v, want ErrInvalidIKM", err)
		}
	})
}

func TestAlgorithm(t *testing.T) {
	if got := NewPBKDF2().Algorithm(); got != AlgorithmPBKDF2 {
		t.Errorf("Algorithm() = %s, want %s", got, AlgorithmPBKDF2)
	}
}
