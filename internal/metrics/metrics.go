// Package metrics exposes Prometheus instrumentation for the API and the
// moderation workflow.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "modera_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "modera_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	moderationDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "modera_moderation_decisions_total",
		Help: "Count of moderation status changes by target status and result",
	}, []string{"status", "result"})

	activeNotifications = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "modera_active_notifications",
		Help: "Number of live operator notifications",
	})
)

// ObserveHTTPRequest records an HTTP request metric.
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveDecision counts a moderation status change attempt.
func ObserveDecision(status, result string) {
	moderationDecisions.WithLabelValues(status, result).Inc()
}

// SetActiveNotifications updates the live notification gauge.
func SetActiveNotifications(n int) {
	activeNotifications.Set(float64(n))
}
