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
	"math/rand/v2"
	"time"
)

// Error delay window. Every failing operation is held for a uniform random
// duration in [ErrDelayMin, ErrDelayMax) before the error is returned,
// raising the cost of brute-force probing regardless of which internal path
// failed.
const (
	// ErrDelayMin is the minimum error delay.
	ErrDelayMin = 200 * time.Millisecond

	// ErrDelayMax is the exclusive upper bound of the error delay.
	ErrDelayMax = 1000 * time.Millisecond
)

// delayError holds err for a uniform random duration within the delay
// window, then returns it. Context cancellation short-circuits the wait and
// returns the context error instead.
func delayError(ctx context.Context, err error) error {
	window := int64(ErrDelayMax - ErrDelayMin)
	delay := ErrDelayMin + time.Duration(rand.Int64N(window))

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
