package apiclient

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records outgoing request counts and latencies
type Metrics struct {
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics creates the client metrics and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	requestCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recipeai",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Total number of backend requests",
		},
		[]string{"method", "route", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "recipeai",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Backend request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	if reg != nil {
		reg.MustRegister(requestCount, requestDuration)
	}

	return &Metrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
	}
}

// observe is a no-op on a nil receiver so the client can run without metrics
func (m *Metrics) observe(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	statusLabel := "error"
	if status > 0 {
		statusLabel = strconv.Itoa(status)
	}
	m.requestCount.WithLabelValues(method, route, statusLabel).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
