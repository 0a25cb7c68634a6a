package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	contactSubmissionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "focodev_contact_submissions_total",
		Help: "Total number of contact messages persisted",
	})
	notificationFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "focodev_notification_failures_total",
		Help: "Total number of failed outbound notifications by channel",
	}, []string{"channel"})
	rateLimitedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "focodev_rate_limited_total",
		Help: "Total number of requests rejected by a rate limit bucket",
	}, []string{"bucket"})
	auditWriteFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "focodev_audit_write_failures_total",
		Help: "Total number of audit log entries that could not be persisted",
	})
)

// Register registers Prometheus collectors. Call once at startup.
func Register(registry *prometheus.Registry) {
	registry.MustRegister(contactSubmissionsTotal, notificationFailuresTotal, rateLimitedTotal, auditWriteFailuresTotal)
}

// IncContactSubmission increments the persisted contact messages counter.
func IncContactSubmission() { contactSubmissionsTotal.Inc() }

// IncNotificationFailure increments the failure counter for channel.
func IncNotificationFailure(channel string) { notificationFailuresTotal.WithLabelValues(channel).Inc() }

// IncRateLimited increments the rejection counter for bucket.
func IncRateLimited(bucket string) { rateLimitedTotal.WithLabelValues(bucket).Inc() }

// IncAuditWriteFailure increments the dropped audit entries counter.
func IncAuditWriteFailure() { auditWriteFailuresTotal.Inc() }
