package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fivetwenty-io/capi-admin/internal/constants"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: constants.MetricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total console API requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: constants.MetricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Console API request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: constants.MetricsNamespace,
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Password-grant logins against the identity service.",
		},
		[]string{"success"},
	)
	authRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: constants.MetricsNamespace,
			Subsystem: "auth",
			Name:      "retries_total",
			Help:      "Requests retried once after the credential was rejected.",
		},
	)
	pages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: constants.MetricsNamespace,
			Subsystem: "client",
			Name:      "pages_total",
			Help:      "Collection pages fetched, by pagination style.",
		},
		[]string{"style"},
	)
	operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: constants.MetricsNamespace,
			Subsystem: "operation",
			Name:      "total",
			Help:      "Lifecycle commands by outcome.",
		},
		[]string{"command", "outcome"},
	)
	operationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: constants.MetricsNamespace,
			Subsystem: "operation",
			Name:      "duration_seconds",
			Help:      "Lifecycle command duration in seconds, including convergence polling.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"command", "outcome"},
	)
)

// RegisterMetrics registers every collector with the default registry.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, logins, authRetries, pages, operations, operationDuration)
	})
}

// RecordHTTPRequest records one console API request.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	RegisterMetrics()

	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}

// Metrics feeds the collectors from the token manager, the resource client
// and the operation controller.
type Metrics struct{}

// NewMetrics registers the collectors and returns the sink.
func NewMetrics() *Metrics {
	RegisterMetrics()

	return &Metrics{}
}

// ObserveLogin implements auth.Metrics.
func (*Metrics) ObserveLogin(success bool) {
	logins.WithLabelValues(strconv.FormatBool(success)).Inc()
}

// ObserveAuthRetry implements client.Metrics.
func (*Metrics) ObserveAuthRetry() {
	authRetries.Inc()
}

// ObservePage implements client.Metrics.
func (*Metrics) ObservePage(style string) {
	pages.WithLabelValues(style).Inc()
}

// ObserveOperation implements operation.Metrics.
func (*Metrics) ObserveOperation(command, outcome string, elapsed time.Duration) {
	operations.WithLabelValues(command, outcome).Inc()
	operationDuration.WithLabelValues(command, outcome).Observe(elapsed.Seconds())
}
