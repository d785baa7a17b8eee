// Package metrics provides Prometheus metrics collection for the validation
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds all Prometheus metrics for the validation service.
type Collector struct {
	// Validation metrics
	ValidationsTotal   *prometheus.CounterVec
	ValidationDuration *prometheus.HistogramVec

	// HTTP metrics
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	// Decision journal metrics
	DecisionsRecorded prometheus.Counter

	// Schema metrics
	SchemaReloads    prometheus.Counter
	SchemaLastReload prometheus.Gauge
	SchemaActions    prometheus.Gauge
}

// New creates a new metrics collector registered with the default registry.
func New() *Collector {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a new metrics collector with a custom registry.
// Useful for testing to avoid global state.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		// Validation metrics
		ValidationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "actiongate",
				Name:      "validations_total",
				Help:      "Total number of validation verdicts",
			},
			[]string{"mode", "outcome", "reason"},
		),
		ValidationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "actiongate",
				Name:      "validation_duration_seconds",
				Help:      "Validation duration in seconds",
				Buckets:   []float64{.000001, .000005, .00001, .00005, .0001, .0005, .001, .005, .01},
			},
			[]string{"mode"},
		),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "actiongate",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests processed",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "actiongate",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "actiongate",
				Name:      "requests_in_flight",
				Help:      "Number of HTTP requests currently being processed",
			},
		),

		// Decision journal metrics
		DecisionsRecorded: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "actiongate",
				Name:      "decisions_recorded_total",
				Help:      "Total number of decisions queued for the journal",
			},
		),

		// Schema metrics
		SchemaReloads: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "actiongate",
				Name:      "schema_reloads_total",
				Help:      "Total number of successful schema reloads",
			},
		),
		SchemaLastReload: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "actiongate",
				Name:      "schema_last_reload_timestamp",
				Help:      "Unix timestamp of last successful schema reload",
			},
		),
		SchemaActions: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "actiongate",
				Name:      "schema_actions",
				Help:      "Number of actions declared by the loaded schema",
			},
		),
	}
}
