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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-keyring/pkg/codec"
	"github.com/jeremyhahn/go-keyring/pkg/datastore/memory"
	"github.com/jeremyhahn/go-keyring/pkg/keyid"
	"github.com/jeremyhahn/go-keyring/pkg/peer"
)

func TestImportPeer(t *testing.T) {
	kc, _ := newTestKeychain(t)
	ctx := context.Background()

	key, err := codec.GenerateRSA(2048)
	require.NoError(t, err)

	t.Run("PrivKeyRequired", func(t *testing.T) {
		_, err := kc.ImportPeer(ctx, "peer-key", nil)
		require.Error(t, err)
		assert.EqualError(t, err, "Peer.privKey is required")

		_, err = kc.ImportPeer(ctx, "peer-key", &peer.Peer{})
		require.Error(t, err)
		assert.EqualError(t, err, "Peer.privKey is required")
	})

	t.Run("ImportsAndDerivesID", func(t *testing.T) {
		info, err := kc.ImportPeer(ctx, "peer-key", &peer.Peer{
			PrivKey: peer.NewPrivateKey(key),
		})
		require.NoError(t, err)
		assert.Equal(t, "peer-key", info.Name)

		// The stored key's ID matches the peer key's own derivation
		expected, err := keyid.FromPrivateKey(key)
		require.NoError(t, err)
		assert.Equal(t, expected, info.ID)
	})

	t.Run("InvalidName", func(t *testing.T) {
		_, err := kc.ImportPeer(ctx, "self", &peer.Peer{PrivKey: peer.NewPrivateKey(key)})
		require.Error(t, err)
		assert.EqualError(t, err, "Invalid key name 'self'")
	})
}

// A keychain constructed with a different passphrase must not be able to
// read blobs written by another; every stored blob is bound to its
// keychain's DEK.
func TestDEKIsolation(t *testing.T) {
	store := memory.New()
	defer store.Close()

	kc1, err := New(store, &Config{
		Passphrase: testPassphrase,
		DEK:        &DEKConfig{Salt: testSalt, IterationCount: 1000},
	})
	require.NoError(t, err)
	defer kc1.Close()

	_, err = kc1.CreateKey(context.Background(), "bound", "rsa", 2048)
	require.NoError(t, err)

	kc2, err := New(store, &Config{
		Passphrase: "a completely different phrase",
		DEK:        &DEKConfig{Salt: testSalt, IterationCount: 1000},
	})
	require.NoError(t, err)
	defer kc2.Close()

	_, err = kc2.GetKeyInfo(context.Background(), "bound")
	require.Error(t, err, "a different DEK must not open the stored blob")
}
