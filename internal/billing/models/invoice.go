// Package models holds the billing-side domain records: invoices, line
// items, and payments, together with the reconciliation arithmetic that
// keeps an invoice's balance and status consistent with its payments.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"carepath/pkg/domain"
	dErrors "carepath/pkg/domain-errors"
)

// Invoice is a bill issued to a client. LineItems and Payments are loaded
// by the persistence layer; the invoice itself stores only foreign keys and
// its own fields, so the derived amounts below are always recomputed from
// whatever collections the caller attached.
type Invoice struct {
	ID       domain.InvoiceID `json:"id"`
	ClientID domain.ClientID  `json:"client_id"`

	InvoiceNumber string          `json:"invoice_number"`
	Status        InvoiceStatus   `json:"status"`
	InvoiceDate   time.Time       `json:"invoice_date"`
	DueDate       time.Time       `json:"due_date"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	Notes         *string         `json:"notes,omitempty"`

	LineItems []*InvoiceLineItem `json:"line_items,omitempty"`
	Payments  []*Payment         `json:"payments,omitempty"`

	domain.Audit
}

// NewInvoice returns a draft invoice for the given client.
func NewInvoice(clientID domain.ClientID, invoiceNumber string, invoiceDate, dueDate, now time.Time) *Invoice {
	return &Invoice{
		ID:            domain.InvoiceID(uuid.New()),
		ClientID:      clientID,
		InvoiceNumber: invoiceNumber,
		Status:        InvoiceDraft,
		InvoiceDate:   invoiceDate,
		DueDate:       dueDate,
		Audit:         domain.NewAudit(now),
	}
}

// RecordID implements the storage record contract.
func (i *Invoice) RecordID() uuid.UUID {
	return uuid.UUID(i.ID)
}

// Subtotal sums the line item totals.
func (i *Invoice) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, li := range i.LineItems {
		subtotal = subtotal.Add(li.Total())
	}
	return subtotal
}

// Total is subtotal plus tax.
func (i *Invoice) Total() decimal.Decimal {
	return i.Subtotal().Add(i.TaxAmount)
}

// AmountPaid sums settled payments only; pending, failed, and refunded
// payments contribute nothing.
func (i *Invoice) AmountPaid() decimal.Decimal {
	paid := decimal.Zero
	for _, p := range i.Payments {
		if p.IsSettled() {
			paid = paid.Add(p.Amount)
		}
	}
	return paid
}

// Balance is total minus amount paid. Negative on overpayment.
func (i *Invoice) Balance() decimal.Decimal {
	return i.Total().Sub(i.AmountPaid())
}

// IsFullyPaid reports whether the balance has reached zero or below.
func (i *Invoice) IsFullyPaid() bool {
	return !i.Balance().IsPositive()
}

// RecalculateStatus reconciles the status with the attached payments:
// fully paid → Paid, partially paid → PartiallyPaid, otherwise unchanged.
// Idempotent: repeat calls with the same payments make no further
// transition. Never touches a Cancelled invoice and never assigns Overdue;
// overdue marking belongs to the time-based marker job.
func (i *Invoice) RecalculateStatus() {
	if i.Status == InvoiceCancelled {
		return
	}
	switch {
	case i.IsFullyPaid():
		i.Status = InvoicePaid
	case i.AmountPaid().IsPositive():
		i.Status = InvoicePartiallyPaid
	}
}

// MarkSent moves a draft invoice to Sent.
func (i *Invoice) MarkSent(now time.Time, actor string) error {
	if i.Status != InvoiceDraft {
		return dErrors.Newf(dErrors.CodeInvariantViolation, "invoice in status %q cannot be sent", i.Status)
	}
	i.Status = InvoiceSent
	i.Touch(now, actor)
	return nil
}

// Cancel voids the invoice. Allowed from any non-terminal state.
func (i *Invoice) Cancel(now time.Time, actor string) error {
	if i.Status.IsTerminal() {
		return dErrors.Newf(dErrors.CodeInvariantViolation, "invoice in status %q cannot be cancelled", i.Status)
	}
	i.Status = InvoiceCancelled
	i.Touch(now, actor)
	return nil
}

// IsPastDue reports whether the invoice is awaiting money past its due
// date. Only Sent and PartiallyPaid invoices qualify; drafts have not been
// issued and terminal invoices owe nothing.
func (i *Invoice) IsPastDue(now time.Time) bool {
	if i.Status != InvoiceSent && i.Status != InvoicePartiallyPaid {
		return false
	}
	return i.DueDate.Before(now)
}

// MarkOverdue applies the Overdue status. Reserved for the periodic overdue
// marker; callers must have checked IsPastDue.
func (i *Invoice) MarkOverdue(now time.Time, actor string) error {
	if !i.IsPastDue(now) {
		return dErrors.Newf(dErrors.CodeInvariantViolation, "invoice in status %q is not past due", i.Status)
	}
	i.Status = InvoiceOverdue
	i.Touch(now, actor)
	return nil
}
