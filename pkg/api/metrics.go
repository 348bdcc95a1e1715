package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for the API.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	storeOperationsTotal *prometheus.CounterVec
	importsTotal         *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics on the given
// registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loreforge_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "loreforge_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		storeOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loreforge_store_operations_total",
				Help: "Total number of store operations",
			},
			[]string{"operation", "status"},
		),
		importsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loreforge_imports_total",
				Help: "Total number of batch import attempts",
			},
			[]string{"outcome"},
		),
	}
}

// RecordStoreOperation records the outcome of a store operation.
func (m *Metrics) RecordStoreOperation(operation string, success bool) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.storeOperationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordImport records the outcome of a batch import attempt.
func (m *Metrics) RecordImport(outcome string) {
	m.importsTotal.WithLabelValues(outcome).Inc()
}

// statusRecorder captures the response status code for instrumentation.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// InstrumentHandler wraps a handler with request count and duration metrics.
func (m *Metrics) InstrumentHandler(method, endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		m.httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(rec.status)).Inc()
		m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
	}
}
