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

package ratelimit

import (
	"fmt"
	"testing"
	"time"
)

func TestDisabledGuard(t *testing.T) {
	g := NewGuard(nil)

	for i := 0; i < 100; i++ {
		g.RecordFailure("alice")
	}
	if g.Blocked("alice") {
		t.Error("disabled guard blocked a name")
	}
	if g.Enabled() {
		t.Error("guard should report disabled")
	}
	if g.Tracked() != 0 {
		t.Errorf("disabled guard tracked %d names, want 0", g.Tracked())
	}
}

func TestBudgetExhaustion(t *testing.T) {
	g := NewGuard(&Config{
		Enabled:           true,
		FailuresPerMinute: 1,
		Burst:             3,
	})

	if g.Blocked("alice") {
		t.Fatal("name blocked before any failure")
	}

	for i := 0; i < 3; i++ {
		g.RecordFailure("alice")
	}
	if !g.Blocked("alice") {
		t.Error("name not blocked after its burst of failures")
	}

	// Failures past exhaustion do not extend the penalty; the budget
	// still refills at the configured rate.
	g.RecordFailure("alice")
	if !g.Blocked("alice") {
		t.Error("name unblocked by an over-budget failure")
	}
}

func TestPerNameIsolation(t *testing.T) {
	g := NewGuard(&Config{
		Enabled:           true,
		FailuresPerMinute: 1,
		Burst:             1,
	})

	g.RecordFailure("alice")
	if !g.Blocked("alice") {
		t.Error("alice should be blocked")
	}
	if g.Blocked("bob") {
		t.Error("bob should be unaffected by alice's failures")
	}
}

func TestBudgetRefills(t *testing.T) {
	// 6000 failures/minute = one token per 10ms
	g := NewGuard(&Config{
		Enabled:           true,
		FailuresPerMinute: 6000,
		Burst:             1,
	})

	g.RecordFailure("alice")
	if !g.Blocked("alice") {
		t.Fatal("alice should be blocked after spending her budget")
	}

	time.Sleep(100 * time.Millisecond)
	if g.Blocked("alice") {
		t.Error("budget did not refill")
	}
}

func TestTrackingBound(t *testing.T) {
	g := NewGuard(&Config{
		Enabled:           true,
		FailuresPerMinute: 60,
		MaxTracked:        2,
	})

	for i := 0; i < 5; i++ {
		g.RecordFailure(fmt.Sprintf("name-%d", i))
	}
	if g.Tracked() > 2 {
		t.Errorf("guard tracks %d names, bound is 2", g.Tracked())
	}
}

func TestDefaults(t *testing.T) {
	g := NewGuard(&Config{Enabled: true})

	// The default burst equals the default per-minute budget
	for i := 0; i < DefaultFailuresPerMinute; i++ {
		g.RecordFailure("alice")
	}
	if !g.Blocked("alice") {
		t.Error("default budget not exhausted after the default burst")
	}
}
