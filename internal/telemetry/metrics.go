// Package telemetry holds the process-wide Prometheus collectors and the
// OpenTelemetry tracer provider used by the API server.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors exported on /metrics.
type Metrics struct {
	registry            *prometheus.Registry
	calculations        *prometheus.CounterVec
	calculationDuration *prometheus.HistogramVec
	httpRequests        *prometheus.CounterVec
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		calculations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calculations_total",
				Help: "Number of calculations run, by type and outcome",
			},
			[]string{"type", "status"},
		),
		calculationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "calculation_duration_seconds",
				Help:    "Time spent computing a single calculation",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
			},
			[]string{"type"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP requests served, by path and status code",
			},
			[]string{"path", "status"},
		),
	}
}

// ObserveCalculation records one calculation outcome.
func (m *Metrics) ObserveCalculation(calcType, status string, elapsed time.Duration) {
	m.calculations.WithLabelValues(calcType, status).Inc()
	m.calculationDuration.WithLabelValues(calcType).Observe(elapsed.Seconds())
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(path string, status int) {
	m.httpRequests.WithLabelValues(path, strconv.Itoa(status)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
