package resolver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// resolutionsTotal counts answered questions.
	// Labels: source (manual, gpt, gpt-fallback, gpt-error)
	resolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "luna",
			Subsystem: "resolver",
			Name:      "resolutions_total",
			Help:      "Total number of answered questions by answer source",
		},
		[]string{"source"},
	)

	// resolutionDuration tracks end-to-end resolution time by answer source
	resolutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "luna",
			Subsystem: "resolver",
			Name:      "resolution_duration_seconds",
			Help:      "Duration of question resolution in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"source"},
	)
)
