// Package metrics provides Prometheus metrics for the scriptor API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "scriptor"

// Status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

var (
	// GenerationTotal counts provider calls.
	GenerationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_total",
			Help:      "Total number of generation calls",
		},
		[]string{"operation", "provider", "status"},
	)

	// GenerationDuration measures provider call latency.
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Duration of generation calls in seconds",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
		[]string{"operation", "provider"},
	)

	// StructureMismatchTotal counts generated HTML whose section or image
	// count differs from the request.
	StructureMismatchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "structure_mismatch_total",
			Help:      "Total number of HTML outputs whose structure differs from the request",
		},
		[]string{"kind"},
	)

	// PublishTotal counts publish forwards by downstream status code class.
	PublishTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_total",
			Help:      "Total number of publish operations",
		},
		[]string{"status"},
	)

	// PublishDuration measures publish round trips.
	PublishDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "publish_duration_seconds",
			Help:      "Duration of publish operations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// ErrorsTotal counts errors by type.
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Total number of errors",
		},
		[]string{"operation", "error_type"},
	)

	// RateLimitedTotal counts requests rejected by the rate limiter.
	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Total number of requests rejected by rate limiting",
		},
	)
)

// RecordGeneration records one provider call.
func RecordGeneration(operation, provider, status string, duration float64) {
	GenerationTotal.WithLabelValues(operation, provider, status).Inc()
	GenerationDuration.WithLabelValues(operation, provider).Observe(duration)
}

// RecordStructureMismatch records a section or image count mismatch.
func RecordStructureMismatch(kind string) {
	StructureMismatchTotal.WithLabelValues(kind).Inc()
}

// RecordPublish records a publish operation. status is a code class such as
// "2xx", or StatusError when the endpoint was unreachable.
func RecordPublish(status string, duration float64) {
	PublishTotal.WithLabelValues(status).Inc()
	PublishDuration.Observe(duration)
}

// RecordError records an error.
func RecordError(operation, errorType string) {
	ErrorsTotal.WithLabelValues(operation, errorType).Inc()
}

// RecordRateLimited records a rejected request.
func RecordRateLimited() {
	RateLimitedTotal.Inc()
}

// StatusClass returns "2xx", "4xx" and so on for an HTTP status code.
func StatusClass(code int) string {
	if code < 100 || code > 599 {
		return "unknown"
	}
	return string(rune('0'+code/100)) + "xx"
}
