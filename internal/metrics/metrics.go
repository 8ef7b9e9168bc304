package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "receipt_processor",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "receipt_processor",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"method", "path"},
	)

	receiptsProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "receipt_processor",
			Subsystem: "receipts",
			Name:      "processed_total",
			Help:      "Total number of receipts accepted and scored.",
		},
	)

	receiptPoints = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "receipt_processor",
			Subsystem: "receipts",
			Name:      "points",
			Help:      "Distribution of points awarded per receipt.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	validationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "receipt_processor",
			Subsystem: "receipts",
			Name:      "validation_failures_total",
			Help:      "Total number of rejected submissions, by failure kind.",
		},
		[]string{"kind"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		receiptsProcessed,
		receiptPoints,
		validationFailures,
	)
}

// ObserveReceiptProcessed records one accepted submission and its score.
func ObserveReceiptProcessed(points int) {
	receiptsProcessed.Inc()
	receiptPoints.Observe(float64(points))
}

// ObserveValidationFailure records one rejected submission.
func ObserveValidationFailure(kind string) {
	validationFailures.WithLabelValues(kind).Inc()
}

// Handler returns the exposition endpoint for the application registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Instrument wraps a handler with request count and duration collection.
// The pattern label is the registered route, not the raw URL, to keep
// cardinality bounded.
func Instrument(pattern string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		httpRequests.WithLabelValues(r.Method, pattern, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
	})
}
