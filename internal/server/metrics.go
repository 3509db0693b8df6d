package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics tracks the work done by the integrate endpoints. Each server
// owns its registry so tests can create servers independently.
type metrics struct {
	registry     *prometheus.Registry
	integrations *prometheus.CounterVec
	evaluations  prometheus.Histogram
	duration     *prometheus.HistogramVec
}

func newMetrics() *metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &metrics{
		registry: registry,
		integrations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quadra",
			Name:      "integrations_total",
			Help:      "Number of integration requests by method and outcome.",
		}, []string{"method", "outcome"}),
		evaluations: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quadra",
			Name:      "integrand_evaluations",
			Help:      "Integrand evaluations consumed per request.",
			Buckets:   prometheus.ExponentialBuckets(8, 4, 10),
		}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "quadra",
			Name:      "integration_duration_seconds",
			Help:      "Wall-clock time per integration request.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

func (m *metrics) observe(method string, elapsed time.Duration, evaluations int, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.integrations.WithLabelValues(method, outcome).Inc()
	m.evaluations.Observe(float64(evaluations))
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}
