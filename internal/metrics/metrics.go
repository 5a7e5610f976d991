package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	submissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Total number of contact form submissions by result",
		},
		[]string{"result"},
	)

	emailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_emails_sent_total",
			Help: "Total number of emails sent successfully",
		},
		[]string{"kind", "provider"},
	)

	emailsFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_emails_failed_total",
			Help: "Total number of failed email sends",
		},
		[]string{"kind", "provider"},
	)

	emailSendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "contact_email_send_duration_seconds",
			Help:    "Email sending duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"kind", "provider"},
	)

	chatNotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_chat_notifications_total",
			Help: "Total number of chat notifications by destination and result",
		},
		[]string{"destination", "result"},
	)
)

// Submission results.
const (
	ResultSaved   = "saved"
	ResultInvalid = "invalid"
	ResultFailed  = "failed"
)

// RecordSubmission counts a handled POST /submit.
func RecordSubmission(result string) {
	submissionsTotal.WithLabelValues(result).Inc()
}

// RecordEmailSent records a successfully sent email.
func RecordEmailSent(kind, provider string, duration time.Duration) {
	emailsSentTotal.WithLabelValues(kind, provider).Inc()
	emailSendDuration.WithLabelValues(kind, provider).Observe(duration.Seconds())
}

// RecordEmailFailed records a failed email send.
func RecordEmailFailed(kind, provider string, duration time.Duration) {
	emailsFailedTotal.WithLabelValues(kind, provider).Inc()
	emailSendDuration.WithLabelValues(kind, provider).Observe(duration.Seconds())
}

// RecordChatNotification records a messenger gateway delivery attempt.
func RecordChatNotification(destination string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	chatNotificationsTotal.WithLabelValues(destination, result).Inc()
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
