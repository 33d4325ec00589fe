package overdue

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	billing "carepath/internal/billing/models"
	"carepath/internal/storage"
	"carepath/internal/storage/memory"
	"carepath/pkg/domain"
	"carepath/pkg/testutil"
)

var markNow = time.Date(2026, 6, 15, 3, 0, 0, 0, time.UTC)

func seedInvoice(t *testing.T, uow storage.UnitOfWork, status billing.InvoiceStatus, dueDate time.Time) *billing.Invoice {
	t.Helper()
	ctx := testutil.Context(markNow)
	issued := dueDate.AddDate(0, -1, 0)
	inv := billing.NewInvoice(domain.ClientID(uuid.New()), "INV-"+uuid.NewString()[:8], issued, dueDate, issued)
	inv.Status = status
	inv.TaxAmount = decimal.Zero
	require.NoError(t, uow.Invoices().Add(ctx, inv))
	_, err := uow.SaveChanges(ctx)
	require.NoError(t, err)
	return inv
}

func TestMarkerMarkOverdueAt(t *testing.T) {
	pastDue := markNow.AddDate(0, 0, -5)
	notYetDue := markNow.AddDate(0, 0, 5)

	t.Run("marks sent and partially paid invoices past due", func(t *testing.T) {
		uow := memory.NewUnitOfWork()
		sent := seedInvoice(t, uow, billing.InvoiceSent, pastDue)
		partial := seedInvoice(t, uow, billing.InvoicePartiallyPaid, pastDue)

		marker := NewMarker(func() storage.UnitOfWork { return uow })
		marked, err := marker.MarkOverdueAt(testutil.Context(markNow), markNow)
		require.NoError(t, err)
		assert.Equal(t, 2, marked)

		for _, inv := range []*billing.Invoice{sent, partial} {
			found, err := uow.Invoices().GetByID(testutil.Context(markNow), inv.RecordID())
			require.NoError(t, err)
			assert.Equal(t, billing.InvoiceOverdue, found.Status)
		}
	})

	t.Run("leaves drafts, paid, cancelled, and current invoices alone", func(t *testing.T) {
		uow := memory.NewUnitOfWork()
		draft := seedInvoice(t, uow, billing.InvoiceDraft, pastDue)
		paid := seedInvoice(t, uow, billing.InvoicePaid, pastDue)
		cancelled := seedInvoice(t, uow, billing.InvoiceCancelled, pastDue)
		current := seedInvoice(t, uow, billing.InvoiceSent, notYetDue)

		marker := NewMarker(func() storage.UnitOfWork { return uow })
		marked, err := marker.MarkOverdueAt(testutil.Context(markNow), markNow)
		require.NoError(t, err)
		assert.Zero(t, marked)

		ctx := testutil.Context(markNow)
		for inv, want := range map[*billing.Invoice]billing.InvoiceStatus{
			draft:     billing.InvoiceDraft,
			paid:      billing.InvoicePaid,
			cancelled: billing.InvoiceCancelled,
			current:   billing.InvoiceSent,
		} {
			found, err := uow.Invoices().GetByID(ctx, inv.RecordID())
			require.NoError(t, err)
			assert.Equal(t, want, found.Status)
		}
	})

	t.Run("repeat passes are idempotent", func(t *testing.T) {
		uow := memory.NewUnitOfWork()
		seedInvoice(t, uow, billing.InvoiceSent, pastDue)

		marker := NewMarker(func() storage.UnitOfWork { return uow })
		ctx := testutil.Context(markNow)
		marked, err := marker.MarkOverdueAt(ctx, markNow)
		require.NoError(t, err)
		assert.Equal(t, 1, marked)

		marked, err = marker.MarkOverdueAt(ctx, markNow.Add(time.Hour))
		require.NoError(t, err)
		assert.Zero(t, marked, "already-overdue invoices are not past due again")
	})

	t.Run("invoice due exactly now is not yet overdue", func(t *testing.T) {
		uow := memory.NewUnitOfWork()
		seedInvoice(t, uow, billing.InvoiceSent, markNow)

		marker := NewMarker(func() storage.UnitOfWork { return uow })
		marked, err := marker.MarkOverdueAt(testutil.Context(markNow), markNow)
		require.NoError(t, err)
		assert.Zero(t, marked)
	})
}
