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

package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNoopAdapter(t *testing.T) {
	n := NewNoopAdapter()
	ctx := context.Background()

	if err := n.RecordCounter(ctx, MetricKeyCreate, nil); err != nil {
		t.Errorf("RecordCounter returned %v", err)
	}
	if err := n.RecordTimer(ctx, MetricLatencyOperation, time.Second, nil); err != nil {
		t.Errorf("RecordTimer returned %v", err)
	}
	if n.Name() != "noop" {
		t.Errorf("Name() = %q, want noop", n.Name())
	}
}

func TestPrometheusAdapter(t *testing.T) {
	registry := prometheus.NewRegistry()
	p := NewPrometheusAdapter(registry)
	ctx := context.Background()

	tags := map[string]string{"operation": "create"}
	if err := p.RecordCounter(ctx, MetricKeyCreate, tags); err != nil {
		t.Fatalf("RecordCounter failed: %v", err)
	}
	if err := p.RecordCounter(ctx, MetricKeyCreate, tags); err != nil {
		t.Fatalf("RecordCounter failed: %v", err)
	}
	if err := p.RecordTimer(ctx, MetricLatencyOperation, 150*time.Millisecond, tags); err != nil {
		t.Fatalf("RecordTimer failed: %v", err)
	}

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	var sawCounter, sawHistogram bool
	for _, mf := range families {
		switch mf.GetName() {
		case "keyring_key_create_total":
			sawCounter = true
			if v := mf.GetMetric()[0].GetCounter().GetValue(); v != 2 {
				t.Errorf("counter value = %v, want 2", v)
			}
		case "keyring_latency_operation_seconds":
			sawHistogram = true
			if n := mf.GetMetric()[0].GetHistogram().GetSampleCount(); n != 1 {
				t.Errorf("histogram sample count = %v, want 1", n)
			}
		}
	}
	if !sawCounter {
		t.Error("counter metric not registered")
	}
	if !sawHistogram {
		t.Error("histogram metric not registered")
	}
}

func TestPrometheusAdapterMissingTags(t *testing.T) {
	p := NewPrometheusAdapter(prometheus.NewRegistry())
	if err := p.RecordCounter(context.Background(), MetricKeyList, nil); err != nil {
		t.Errorf("RecordCounter with nil tags returned %v", err)
	}
}
