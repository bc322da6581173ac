package gateway

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "casedesk_gateway_requests_total",
			Help: "Remote requests by method and outcome (status code, timeout or error).",
		}, []string{"method", "outcome"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "casedesk_gateway_request_duration_seconds",
			Help:    "Remote request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

// observe is a no-op on a nil receiver so metrics stay optional.
func (m *metrics) observe(method, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, outcome).Inc()
	m.duration.WithLabelValues(method).Observe(took.Seconds())
}
