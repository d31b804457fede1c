package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// ClassificationsTotal counts classification requests by terminal state.
	ClassificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ecosort",
		Subsystem: "classify",
		Name:      "requests_total",
		Help:      "Total number of classification requests, labeled by terminal state.",
	}, []string{"result"})

	// ClassificationDurationSeconds is end-to-end time per request, measured
	// inside the pipeline (validation through parsing).
	ClassificationDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ecosort",
		Subsystem: "classify",
		Name:      "duration_seconds",
		Help:      "End-to-end time to serve a classification request.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 60, 120},
	}, []string{"result"})

	// RateLimitedTotal counts requests rejected by this service's own limiter.
	RateLimitedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ecosort",
		Subsystem: "classify",
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the fixed-window rate limiter.",
	})

	// UpstreamErrorsTotal counts model-call failures by class.
	UpstreamErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ecosort",
		Subsystem: "classify",
		Name:      "upstream_errors_total",
		Help:      "Total number of upstream model failures, labeled by error class.",
	}, []string{"class"})

	// PredictionsPerRequest tracks how many items the model identifies per image.
	PredictionsPerRequest = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ecosort",
		Subsystem: "classify",
		Name:      "predictions_per_request",
		Help:      "Number of prediction items returned per successful request.",
		Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
	})

	// FeedbackTotal counts feedback submissions by verdict.
	FeedbackTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ecosort",
		Subsystem: "feedback",
		Name:      "submissions_total",
		Help:      "Total number of feedback submissions, labeled by verdict.",
	}, []string{"type"})
)

// Register registers service metrics with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			ClassificationsTotal,
			ClassificationDurationSeconds,
			RateLimitedTotal,
			UpstreamErrorsTotal,
			PredictionsPerRequest,
			FeedbackTotal,
		)
	})
}
