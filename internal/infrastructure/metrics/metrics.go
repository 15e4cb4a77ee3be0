package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 流水线结果标签
const (
	OutcomeSuccess  = "success"
	OutcomeFallback = "fallback"
	OutcomeFailed   = "failed"
)

// 生成服务单次尝试结果标签
const (
	AttemptSuccess     = "success"
	AttemptRateLimited = "rate_limited"
	AttemptError       = "error"
)

var (
	PipelineRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uispec_pipeline_requests_total",
			Help: "Total number of report pipeline runs by outcome",
		},
		[]string{"outcome"},
	)

	PipelineDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "uispec_pipeline_duration_seconds",
			Help:    "Duration of report pipeline runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20, 45, 90, 180},
		},
	)

	GeneratorAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uispec_generator_attempts_total",
			Help: "Total number of generation service calls by result",
		},
		[]string{"result"},
	)

	Fallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uispec_fallback_total",
			Help: "Total number of fallback paths taken by reason",
		},
		[]string{"reason"},
	)

	DomainClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uispec_domain_classified_total",
			Help: "Total number of analysed documents by domain",
		},
		[]string{"domain"},
	)
)
