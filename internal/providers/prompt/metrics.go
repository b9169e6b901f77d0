package prompt

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scene_generations_total",
			Help: "Scene generations by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	fallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scene_generation_fallbacks_total",
			Help: "Scene generations served by the composer, by reason",
		},
		[]string{"reason"},
	)

	completionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scene_completion_duration_seconds",
			Help:    "Latency of completer calls",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		},
		[]string{"provider"},
	)
)
