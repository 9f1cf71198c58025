package telemetry

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const RequestIDHeader = "X-Request-ID"

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	plansGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plans_generated_total",
			Help: "Health plans generated, by goal and where they came from",
		},
		[]string{"goal", "source"},
	)

	planCalories = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "plan_calorie_target",
			Help:    "Daily calorie targets of generated plans",
			Buckets: prometheus.LinearBuckets(1000, 250, 13),
		},
		[]string{"goal"},
	)
)

// ObservePlan records a generated plan. source is "local", "remote", "cache"
// or "service" when counted by the plan-service itself.
func ObservePlan(goal, source string, calories int) {
	plansGeneratedTotal.WithLabelValues(goal, source).Inc()
	if source != "cache" {
		planCalories.WithLabelValues(goal).Observe(float64(calories))
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func NewResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// Middleware records request metrics under the matched route pattern, tags
// the request with an id and writes an access log line.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		rw := NewResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)

		// ServeMux fills in the pattern while routing
		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}

		httpRequestsTotal.WithLabelValues(
			r.Method,
			path,
			strconv.Itoa(rw.statusCode),
		).Inc()

		httpRequestDuration.WithLabelValues(
			r.Method,
			path,
		).Observe(duration.Seconds())

		slog.Info("Request processed",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration", duration,
		)
	})
}
