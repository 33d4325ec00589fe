package alerts

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the expiry alert pipeline.
type Metrics struct {
	AlertsPublished *prometheus.CounterVec
	PublishFailures prometheus.Counter
}

// NewMetrics creates a Metrics instance with all alert metrics registered.
func NewMetrics() *Metrics {
	return &Metrics{
		AlertsPublished: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "carepath_certification_alerts_published_total",
			Help: "Total number of certification expiry alerts published, by kind",
		}, []string{"kind"}),
		PublishFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "carepath_certification_alert_publish_failures_total",
			Help: "Total number of failed alert publishes",
		}),
	}
}

// IncAlertsPublished records one published alert of the given kind.
func (m *Metrics) IncAlertsPublished(kind string) {
	m.AlertsPublished.WithLabelValues(kind).Inc()
}

// IncPublishFailures records one failed publish.
func (m *Metrics) IncPublishFailures() {
	m.PublishFailures.Inc()
}
