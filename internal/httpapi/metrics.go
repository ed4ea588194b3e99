package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpLabels = []string{"path", "method", "status"}

	httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wiregen",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route pattern, method and status",
	}, httpLabels)

	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "wiregen",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency; POST /response includes the model call",
		Buckets:   []float64{.005, .025, .1, .5, 1, 2.5, 5, 10, 30, 60, 120},
	}, httpLabels)

	httpInflight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "wiregen",
		Subsystem: "http",
		Name:      "inflight_requests",
		Help:      "Requests currently being served",
	})

	backpressureTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wiregen",
		Subsystem: "http",
		Name:      "backpressure_total",
		Help:      "Requests answered with 429 by reason",
	}, []string{"reason"})
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, httpInflight, backpressureTotal)
}

// MetricsMiddleware records request count, latency and in-flight requests.
// Paths are labelled with the matched chi route so ids in URLs do not
// create new series; requests that match no route share "unmatched".
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpInflight.Inc()
		defer httpInflight.Dec()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		labels := prometheus.Labels{
			"path":   routeLabel(r),
			"method": r.Method,
			"status": strconv.Itoa(status),
		}
		httpRequestsTotal.With(labels).Inc()
		httpRequestDuration.With(labels).Observe(time.Since(start).Seconds())
	})
}

func routeLabel(r *http.Request) string {
	rc := chi.RouteContext(r.Context())
	if rc == nil {
		return r.URL.Path
	}
	if p := rc.RoutePattern(); p != "" {
		return p
	}
	return "unmatched"
}

// IncrementBackpressure counts a 429 answer. An empty reason is recorded as
// "unspecified".
func IncrementBackpressure(reason string) {
	if reason == "" {
		reason = "unspecified"
	}
	backpressureTotal.WithLabelValues(reason).Inc()
}
