// Package metrics exposes Prometheus counters for catalog fetches and
// candidate resolution. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ibuildhw"

// Resolution outcomes.
const (
	OutcomeFiltered      = "filtered"
	OutcomeFallback      = "fallback"
	OutcomeUnconstrained = "unconstrained"
	OutcomeFixed         = "fixed"
)

// Fetch results.
const (
	FetchOK     = "ok"
	FetchCached = "cached"
	FetchError  = "error"
)

// Metrics groups the collectors on a private registry so tests and
// multiple sessions never collide on the global one.
type Metrics struct {
	registry *prometheus.Registry

	resolutions        *prometheus.CounterVec
	fetches            *prometheus.CounterVec
	fetchDuration      *prometheus.HistogramVec
	unknownFormFactors prometheus.Counter
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Candidate resolutions by category and outcome.",
		}, []string{"category", "outcome"}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_fetches_total",
			Help:      "Catalog fetches by category and result.",
		}, []string{"category", "result"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_fetch_seconds",
			Help:      "Latency of remote catalog requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"category"}),
		unknownFormFactors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unrecognized_form_factors_total",
			Help:      "Form factor strings that matched no normalization rule.",
		}),
	}
	m.registry.MustRegister(m.resolutions, m.fetches, m.fetchDuration, m.unknownFormFactors)
	return m
}

// Resolution records one Resolve call.
func (m *Metrics) Resolution(category, outcome string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(category, outcome).Inc()
}

// Fetch records one catalog lookup.
func (m *Metrics) Fetch(category, result string) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(category, result).Inc()
}

// ObserveFetch records the latency of a remote request.
func (m *Metrics) ObserveFetch(category string, d time.Duration) {
	if m == nil {
		return
	}
	m.fetchDuration.WithLabelValues(category).Observe(d.Seconds())
}

// UnrecognizedFormFactor counts a form factor string no rule matched.
func (m *Metrics) UnrecognizedFormFactor() {
	if m == nil {
		return
	}
	m.unknownFormFactors.Inc()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
