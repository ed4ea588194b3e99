package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values for generateTotal.
const (
	outcomeOK       = "ok"
	outcomeError    = "error"
	outcomeInvalid  = "invalid"
	outcomeRejected = "rejected"
	outcomeCanceled = "canceled"
)

var (
	generateTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wiregen",
			Subsystem: "generate",
			Name:      "requests_total",
			Help:      "Wireframe conversions by model and outcome",
		},
		[]string{"model", "outcome"},
	)

	generateDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wiregen",
			Subsystem: "generate",
			Name:      "duration_seconds",
			Help:      "Duration of model calls in seconds",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 160},
		},
		[]string{"model"},
	)

	uploadBytes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "wiregen",
			Subsystem: "generate",
			Name:      "upload_bytes",
			Help:      "Size of uploaded wireframes in bytes",
			Buckets:   prometheus.ExponentialBuckets(16*1024, 4, 6),
		},
	)
)

func init() {
	prometheus.MustRegister(generateTotal, generateDuration, uploadBytes)
}

// modelLabel keeps label cardinality bounded when callers may send any id.
func (s *Service) modelLabel(id string) string {
	if s.known[id] {
		return id
	}
	return "other"
}

func (s *Service) observe(model, outcome string, start time.Time) {
	label := s.modelLabel(model)
	generateTotal.WithLabelValues(label, outcome).Inc()
	if outcome == outcomeOK || outcome == outcomeError {
		generateDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	}
}
