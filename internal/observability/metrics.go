package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce         sync.Once
	httpRequestsTotal    *prometheus.CounterVec
	httpLatencySeconds   *prometheus.HistogramVec
	httpErrorsTotal      *prometheus.CounterVec
	refinementsTotal     *prometheus.CounterVec
	feedbackSubmissions  *prometheus.CounterVec
	feedbackEventsFailed prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "refiner",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "refiner",
			Name:      "http_latency_seconds",
			Help:      "Latency distribution for HTTP requests.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 15.0, 30.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "refiner",
			Name:      "http_errors_total",
			Help:      "Total number of error responses.",
		}, []string{"method", "route", "status"})

		refinementsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "refiner",
			Name:      "refinements_total",
			Help:      "Prompt refinements by processing status.",
		}, []string{"status"})

		feedbackSubmissions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "refiner",
			Name:      "feedback_submissions_total",
			Help:      "Feedback submissions by outcome.",
		}, []string{"outcome"})

		feedbackEventsFailed = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "refiner",
			Name:      "feedback_events_failed_total",
			Help:      "Feedback events that could not be published.",
		})

		prometheus.MustRegister(httpRequestsTotal, httpLatencySeconds, httpErrorsTotal, refinementsTotal, feedbackSubmissions, feedbackEventsFailed)
	})
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the request latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the error response counter.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// Refinements exposes the refinement outcome counter.
func Refinements() *prometheus.CounterVec {
	RegisterMetrics()
	return refinementsTotal
}

// FeedbackSubmissions exposes the feedback outcome counter.
func FeedbackSubmissions() *prometheus.CounterVec {
	RegisterMetrics()
	return feedbackSubmissions
}

// FeedbackEventsFailed exposes the counter of unpublished feedback events.
func FeedbackEventsFailed() prometheus.Counter {
	RegisterMetrics()
	return feedbackEventsFailed
}
