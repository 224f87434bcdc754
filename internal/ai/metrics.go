package ai

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	resolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cubeinsight_resolutions_total",
		Help: "Resolved questions by resolution tier.",
	}, []string{"provenance"})

	resolveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cubeinsight_resolve_duration_seconds",
		Help:    "End-to-end question resolution latency.",
		Buckets: prometheus.DefBuckets,
	})

	modelAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cubeinsight_model_attempts_total",
		Help: "External model call attempts by model and outcome.",
	}, []string{"model", "outcome"})
)
