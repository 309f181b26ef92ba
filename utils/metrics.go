package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MetricPredictionCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hydroscope",
		Name:      "predictions_total",
		Help:      "Predictions created, by method.",
	}, []string{"method"})

	MetricScorerFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hydroscope",
		Name:      "scorer_failures_total",
		Help:      "Scorer invocations that failed, by reason.",
	}, []string{"reason"})

	MetricScorerLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hydroscope",
		Name:      "scorer_duration_seconds",
		Help:      "Wall time of scorer subprocess invocations.",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30},
	}, []string{"method"})

	MetricBlobWriteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hydroscope",
		Name:      "blob_write_failures_total",
		Help:      "Best-effort blob writes that failed, by kind.",
	}, []string{"kind"})

	MetricAnalyticsFallback = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hydroscope",
		Name:      "analytics_local_fallbacks_total",
		Help:      "Analytics reads answered from the local store instead of S3.",
	})
)
