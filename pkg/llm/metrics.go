package llm

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// attemptsTotal counts completion attempts.
	// Labels: role (primary, fallback), result (success, error)
	attemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "luna",
			Subsystem: "llm",
			Name:      "attempts_total",
			Help:      "Total number of completion attempts",
		},
		[]string{"role", "result"},
	)

	// attemptDuration tracks how long a single completion attempt takes
	attemptDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "luna",
			Subsystem: "llm",
			Name:      "attempt_duration_seconds",
			Help:      "Duration of completion attempts in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"role"},
	)

	// staticFallbacksTotal counts answers served from the static fallback text
	staticFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "luna",
			Subsystem: "llm",
			Name:      "static_fallbacks_total",
			Help:      "Total number of static fallback answers",
		},
	)
)

func recordAttempt(role string, err error, seconds float64) {
	result := "success"
	if err != nil {
		result = "error"
	}
	attemptsTotal.WithLabelValues(role, result).Inc()
	attemptDuration.WithLabelValues(role).Observe(seconds)
}
