package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/expect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects validation counters on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	validations *prometheus.CounterVec
	duration    prometheus.Histogram
}

// MetricsOption configures Metrics.
type MetricsOption func(*metricsConfig)

type metricsConfig struct {
	namespace      string
	processMetrics bool
}

// WithNamespace prefixes metric names (default "expect").
func WithNamespace(ns string) MetricsOption {
	return func(c *metricsConfig) {
		c.namespace = ns
	}
}

// WithProcessMetrics also registers the Go runtime and process collectors.
func WithProcessMetrics() MetricsOption {
	return func(c *metricsConfig) {
		c.processMetrics = true
	}
}

// NewMetrics creates the collectors and registers them.
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := metricsConfig{namespace: "expect"}
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.namespace,
				Name:      "validations_total",
				Help:      "Total number of validations by result status",
			},
			[]string{"status"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.namespace,
				Name:      "validation_duration_seconds",
				Help:      "Duration of validations",
				Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
			},
		),
	}
	m.registry.MustRegister(m.validations, m.duration)
	if cfg.processMetrics {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return m
}

// Observe records one validation event.
func (m *Metrics) Observe(e *expect.Event) {
	m.validations.WithLabelValues(string(e.Result.Status)).Inc()
	m.duration.Observe(e.Duration.Seconds())
}

// Hooks returns Validator hooks that feed m.
func (m *Metrics) Hooks() expect.Hooks {
	return expect.Hooks{
		OnValidate: func(_ context.Context, e *expect.Event) {
			m.Observe(e)
		},
	}
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
