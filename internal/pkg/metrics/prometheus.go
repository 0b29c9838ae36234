package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "iws",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "iws",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "iws",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Leak detection metrics
	leakScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "iws",
			Subsystem: "leak",
			Name:      "scans_total",
			Help:      "Total number of device leak analyses",
		},
		[]string{"outcome"},
	)

	leakEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "iws",
			Subsystem: "leak",
			Name:      "events_total",
			Help:      "Total number of leak events created",
		},
		[]string{"severity"},
	)

	// Alert metrics
	alertsEmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "iws",
			Subsystem: "alert",
			Name:      "emitted_total",
			Help:      "Total number of alerts emitted",
		},
		[]string{"type", "severity"},
	)
)

// RecordLeakScan records one completed leak analysis for a device
func RecordLeakScan(detected bool) {
	outcome := "clean"
	if detected {
		outcome = "leak"
	}
	leakScansTotal.WithLabelValues(outcome).Inc()
}

// RecordLeakEvent records a newly created leak event
func RecordLeakEvent(severity string) {
	leakEventsTotal.WithLabelValues(severity).Inc()
}

// RecordAlertEmitted records an emitted alert
func RecordAlertEmitted(alertType, severity string) {
	alertsEmittedTotal.WithLabelValues(alertType, severity).Inc()
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()

		routePattern := chi.RouteContext(r.Context()).RoutePattern()
		if routePattern == "" {
			routePattern = "unknown"
		}

		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(duration)
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
