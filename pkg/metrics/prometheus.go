// Package metrics exports engine counters to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"SajuPulse/internal/domain/models"
)

const namespace = "sajupulse"

// Recorder satisfies repository.Metrics.
type Recorder struct {
	scans   *prometheus.CounterVec
	periods *prometheus.CounterVec
	errors  *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

func New() *Recorder {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers on reg, so tests can use a private registry.
func NewWithRegisterer(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	counter := func(name, help string, labels ...string) *prometheus.CounterVec {
		return f.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help}, labels)
	}
	return &Recorder{
		scans:   counter("scans_total", "Horizon scans by event type and outcome (complete, partial, error).", "event", "outcome"),
		periods: counter("periods_classified_total", "Scanned months by event type and bucket.", "event", "bucket"),
		errors:  counter("errors_total", "Errors by kind.", "type"),
		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Engine operation latency.",
			Buckets:   []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"operation"}),
	}
}

func (r *Recorder) RecordScan(event, outcome string) {
	r.scans.WithLabelValues(event, outcome).Inc()
}

func (r *Recorder) RecordPeriod(event string, bucket models.Bucket) {
	r.periods.WithLabelValues(event, string(bucket)).Inc()
}

func (r *Recorder) RecordError(kind string) {
	r.errors.WithLabelValues(kind).Inc()
}

func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
