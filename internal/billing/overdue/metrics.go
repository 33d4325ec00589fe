package overdue

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the overdue marker.
type Metrics struct {
	InvoicesMarked prometheus.Counter
}

// NewMetrics creates a Metrics instance with all marker metrics registered.
func NewMetrics() *Metrics {
	return &Metrics{
		InvoicesMarked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "carepath_invoices_marked_overdue_total",
			Help: "Total number of invoices transitioned to Overdue by the marker",
		}),
	}
}

// AddInvoicesMarked records invoices marked in one pass.
func (m *Metrics) AddInvoicesMarked(n int) {
	m.InvoicesMarked.Add(float64(n))
}
