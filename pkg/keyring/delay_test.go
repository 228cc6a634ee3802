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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelayErrorWindow(t *testing.T) {
	sentinel := errors.New("boom")

	for trial := 0; trial < 3; trial++ {
		start := time.Now()
		err := delayError(context.Background(), sentinel)
		elapsed := time.Since(start)

		require.ErrorIs(t, err, sentinel)
		assert.GreaterOrEqual(t, elapsed, ErrDelayMin)
		assert.Less(t, elapsed, ErrDelayMax+500*time.Millisecond)
	}
}

func TestDelayErrorCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := delayError(ctx, errors.New("boom"))
	assert.ErrorIs(t, err, context.Canceled)
}
