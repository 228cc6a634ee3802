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
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusAdapter records keychain metrics into a Prometheus registry.
// Counters and histograms are created lazily per metric name; the
// "operation" tag becomes a label when present.
type PrometheusAdapter struct {
	registerer prometheus.Registerer

	mu         sync.Mutex
	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec
}

// NewPrometheusAdapter creates a Prometheus metrics adapter registering into
// the given registerer. Pass prometheus.DefaultRegisterer for the default
// registry.
func NewPrometheusAdapter(registerer prometheus.Registerer) *PrometheusAdapter {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	return &PrometheusAdapter{
		registerer: registerer,
		counters:   make(map[string]*prometheus.CounterVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}
}

// RecordCounter increments the counter for name with the given tags.
func (p *PrometheusAdapter) RecordCounter(ctx context.Context, name string, tags map[string]string) error {
	c, err := p.counter(name)
	if err != nil {
		return err
	}
	c.With(labels(tags)).Inc()
	return nil
}

// RecordTimer records an operation duration in seconds.
func (p *PrometheusAdapter) RecordTimer(ctx context.Context, name string, duration time.Duration, tags map[string]string) error {
	h, err := p.histogram(name)
	if err != nil {
		return err
	}
	h.With(labels(tags)).Observe(duration.Seconds())
	return nil
}

// Name returns the adapter name.
func (p *PrometheusAdapter) Name() string {
	return "prometheus"
}

func (p *PrometheusAdapter) counter(name string) (*prometheus.CounterVec, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.counters[name]; ok {
		return c, nil
	}
	c := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: promName(name) + "_total",
		Help: "Total count of " + name,
	}, []string{"operation"})
	if err := p.registerer.Register(c); err != nil {
		return nil, err
	}
	p.counters[name] = c
	return c, nil
}

func (p *PrometheusAdapter) histogram(name string) (*prometheus.HistogramVec, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if h, ok := p.histograms[name]; ok {
		return h, nil
	}
	h := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    promName(name) + "_seconds",
		Help:    "Duration of " + name,
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	if err := p.registerer.Register(h); err != nil {
		return nil, err
	}
	p.histograms[name] = h
	return h, nil
}

// promName converts a dotted metric name to a Prometheus metric name.
func promName(name string) string {
	return strings.ReplaceAll(name, ".", "_")
}

// labels maps the adapter tags onto the fixed label set.
func labels(tags map[string]string) prometheus.Labels {
	op := ""
	if tags != nil {
		op = tags["operation"]
	}
	return prometheus.Labels{"operation": op}
}

// Verify interface compliance at compile time.
var _ Adapter = (*PrometheusAdapter)(nil)
