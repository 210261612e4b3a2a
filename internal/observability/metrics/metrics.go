package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ErrorsClassified tracks classified failures per category and reason
	ErrorsClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resilience_errors_classified_total",
			Help: "Total number of failures classified into the error taxonomy",
		},
		[]string{"category", "reason"},
	)

	// RetryAttempts tracks retry invocations per category
	RetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resilience_retry_attempts_total",
			Help: "Total number of retry attempts performed",
		},
		[]string{"category"},
	)

	// RetriesExhausted tracks operations that failed after all retries
	RetriesExhausted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resilience_retries_exhausted_total",
			Help: "Total number of operations that exhausted their retry budget",
		},
		[]string{"category"},
	)

	// BreakerState tracks circuit breaker state per dependency (0=closed, 1=open)
	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "resilience_breaker_state",
			Help: "Circuit breaker state per dependency (0=closed, 1=open)",
		},
		[]string{"dependency"},
	)

	// BreakerTrips tracks closed-to-open transitions per dependency
	BreakerTrips = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resilience_breaker_trips_total",
			Help: "Total number of circuit breaker trips",
		},
		[]string{"dependency"},
	)

	// BreakerRejections tracks calls rejected by an open breaker
	BreakerRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resilience_breaker_rejections_total",
			Help: "Total number of calls rejected while the breaker was open",
		},
		[]string{"dependency"},
	)

	// ProbeDuration tracks dependency probe latency
	ProbeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resilience_probe_duration_seconds",
			Help:    "Dependency probe latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"dependency"},
	)

	// ProbeFailures tracks failed dependency probes per reason
	ProbeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resilience_probe_failures_total",
			Help: "Total number of failed dependency probes",
		},
		[]string{"dependency", "reason"},
	)
)
