// Package overdue owns the transition of invoices into the Overdue status.
//
// Overdue is a statement about the passage of time, not about payments, so
// no payment-driven recalculation ever assigns it. This marker is the only
// writer: it periodically finds Sent and PartiallyPaid invoices past their
// due date and flips them in a single transaction per pass.
package overdue

import (
	"context"
	"log/slog"
	"time"

	billing "carepath/internal/billing/models"
	"carepath/internal/storage"
	"carepath/pkg/requestcontext"
)

// markerActor is the audit identity stamped on invoices this job touches.
const markerActor = "system:overdue-marker"

// UnitOfWorkFactory yields a fresh unit of work per pass.
type UnitOfWorkFactory func() storage.UnitOfWork

// Marker flips past-due invoices to Overdue on a fixed cadence.
type Marker struct {
	newUow  UnitOfWorkFactory
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures the Marker.
type Option func(*Marker)

// WithLogger sets a logger for pass reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Marker) {
		m.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(metrics *Metrics) Option {
	return func(m *Marker) {
		m.metrics = metrics
	}
}

// NewMarker creates an overdue marker.
func NewMarker(newUow UnitOfWorkFactory, opts ...Option) *Marker {
	m := &Marker{
		newUow: newUow,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run marks on the given interval until ctx is cancelled. A failed pass is
// logged and the next tick retries.
func (m *Marker) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := m.MarkOverdueAt(ctx, requestcontext.Now(ctx)); err != nil {
				m.logger.ErrorContext(ctx, "overdue marking pass failed", "error", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// MarkOverdueAt runs one pass against the clock instant now and returns how
// many invoices were marked. All marks in a pass commit atomically; a pass
// that fails midway leaves every invoice as it was.
func (m *Marker) MarkOverdueAt(ctx context.Context, now time.Time) (int, error) {
	ctx = requestcontext.WithActor(requestcontext.WithTime(ctx, now), markerActor)

	uow := m.newUow()
	defer func() { _ = uow.Close(ctx) }()

	if err := uow.BeginTransaction(ctx); err != nil {
		return 0, err
	}

	pastDue, err := uow.Invoices().Find(ctx, func(inv *billing.Invoice) bool {
		return inv.IsPastDue(now)
	})
	if err != nil {
		_ = uow.RollbackTransaction(ctx)
		return 0, err
	}

	for _, inv := range pastDue {
		if err := inv.MarkOverdue(now, markerActor); err != nil {
			_ = uow.RollbackTransaction(ctx)
			return 0, err
		}
		if err := uow.Invoices().Update(ctx, inv); err != nil {
			_ = uow.RollbackTransaction(ctx)
			return 0, err
		}
	}

	marked, err := uow.SaveChanges(ctx)
	if err != nil {
		_ = uow.RollbackTransaction(ctx)
		return 0, err
	}
	if err := uow.CommitTransaction(ctx); err != nil {
		return 0, err
	}

	if m.metrics != nil {
		m.metrics.AddInvoicesMarked(marked)
	}
	if marked > 0 {
		m.logger.InfoContext(ctx, "marked overdue invoices", "count", marked)
	}
	return marked, nil
}
