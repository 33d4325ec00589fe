package postgres

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Unit-of-work instances are created per logical operation, so the counters
// are package level and registered once.
var (
	savesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carepath_uow_saves_total",
		Help: "SaveChanges flushes by outcome.",
	}, []string{"outcome"})

	recordsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carepath_uow_records_written_total",
		Help: "Staged records successfully flushed.",
	})

	transactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carepath_uow_transactions_total",
		Help: "Explicit transactions by outcome (commit or rollback).",
	}, []string{"outcome"})
)
