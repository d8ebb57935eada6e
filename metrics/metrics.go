// Copyright (c) 2025 The Quorax developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metrics is a facade over a metrics backend. It defaults to a no-op
// implementation so the core never pays for instrumentation the embedding
// node did not ask for; call InitializePrometheusMetrics to turn it on.
package metrics

import (
	"net/http"
	"sync"
)

// metrics the process-wide backend, no-op unless explicitly initialized.
var metrics Metrics = noopMetrics{}

// Metrics defines the interface for metrics service implementations.
type Metrics interface {
	GetOrCreateCountMeter(name string) CountMeter
	GetOrCreateGaugeMeter(name string) GaugeMeter
	GetOrCreateHandler() http.Handler
}

// CountMeter is a cumulative metric that represents a single monotonically
// increasing counter.
type CountMeter interface {
	Add(int64)
}

// GaugeMeter is a metric that represents a single numeric value, which can
// arbitrarily go up and down.
type GaugeMeter interface {
	Add(int64)
	Set(int64)
}

// HTTPHandler returns the http handler for retrieving metrics.
func HTTPHandler() http.Handler {
	return metrics.GetOrCreateHandler()
}

// Counter returns a counter meter by name.
func Counter(name string) CountMeter { return metrics.GetOrCreateCountMeter(name) }

// Gauge returns a gauge meter by name.
func Gauge(name string) GaugeMeter { return metrics.GetOrCreateGaugeMeter(name) }

// LazyLoad defers meter creation to first use, after backend initialization.
func LazyLoad[T any](f func() T) func() T {
	return sync.OnceValue(f)
}

// LazyLoadCounter lazy-creates a counter meter.
func LazyLoadCounter(name string) func() CountMeter {
	return LazyLoad(func() CountMeter { return Counter(name) })
}

// LazyLoadGauge lazy-creates a gauge meter.
func LazyLoadGauge(name string) func() GaugeMeter {
	return LazyLoad(func() GaugeMeter { return Gauge(name) })
}

type noopMetrics struct{}

type noopMeter struct{}

func (noopMeter) Add(int64) {}
func (noopMeter) Set(int64) {}

func (noopMetrics) GetOrCreateCountMeter(string) CountMeter { return noopMeter{} }
func (noopMetrics) GetOrCreateGaugeMeter(string) GaugeMeter { return noopMeter{} }
func (noopMetrics) GetOrCreateHandler() http.Handler        { return http.NotFoundHandler() }
