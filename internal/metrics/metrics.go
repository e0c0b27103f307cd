// Package metrics contains prometheus collectors of the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// nolint:gochecknoglobals
var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agora_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agora_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agora_http_rate_limit_hits_total",
			Help: "Total number of requests rejected by rate limiter",
		},
		[]string{"route"},
	)

	Reactions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agora_reactions_total",
			Help: "Total number of created and deleted likes and dislikes",
		},
		[]string{"target", "type", "op"},
	)

	NotificationsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agora_notifications_published_total",
			Help: "Total number of notification events published",
		},
		[]string{"type", "result"},
	)

	MailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agora_mails_sent_total",
			Help: "Total number of mails passed to mailer",
		},
		[]string{"template", "result"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "agora_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

// RecordAPIRequest records a served HTTP request.
func RecordAPIRequest(method, route string, status int, d time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordReaction records like creation or deletion.
func RecordReaction(target, likeType, op string) {
	Reactions.WithLabelValues(target, likeType, op).Inc()
}

// RecordNotification records a publish attempt.
func RecordNotification(eventType string, err error) {
	NotificationsPublished.WithLabelValues(eventType, result(err)).Inc()
}

// RecordMail records a send attempt.
func RecordMail(template string, err error) {
	MailsSent.WithLabelValues(template, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
