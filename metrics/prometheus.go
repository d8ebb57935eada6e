// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "quorax"

// InitializePrometheusMetrics swaps the no-op backend for a Prometheus
// registry. Idempotent.
func InitializePrometheusMetrics() {
	if _, ok := metrics.(*prometheusMetrics); !ok {
		metrics = newPrometheusMetrics()
	}
}

type prometheusMetrics struct {
	registry *prometheus.Registry

	mu       sync.Mutex
	counters map[string]CountMeter
	gauges   map[string]GaugeMeter
}

func newPrometheusMetrics() *prometheusMetrics {
	return &prometheusMetrics{
		registry: prometheus.NewRegistry(),
		counters: make(map[string]CountMeter),
		gauges:   make(map[string]GaugeMeter),
	}
}

func (p *prometheusMetrics) GetOrCreateCountMeter(name string) CountMeter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if meter, ok := p.counters[name]; ok {
		return meter
	}
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
	})
	p.registry.MustRegister(c)
	meter := &promCountMeter{c}
	p.counters[name] = meter
	return meter
}

func (p *prometheusMetrics) GetOrCreateGaugeMeter(name string) GaugeMeter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if meter, ok := p.gauges[name]; ok {
		return meter
	}
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
	})
	p.registry.MustRegister(g)
	meter := &promGaugeMeter{g}
	p.gauges[name] = meter
	return meter
}

func (p *prometheusMetrics) GetOrCreateHandler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

type promCountMeter struct {
	counter prometheus.Counter
}

func (m *promCountMeter) Add(v int64) {
	m.counter.Add(float64(v))
}

type promGaugeMeter struct {
	gauge prometheus.Gauge
}

func (m *promGaugeMeter) Add(v int64) {
	m.gauge.Add(float64(v))
}

func (m *promGaugeMeter) Set(v int64) {
	m.gauge.Set(float64(v))
}
