package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"carepath/pkg/domain"
	dErrors "carepath/pkg/domain-errors"
)

// Payment is one payment applied against an invoice. Payments start Pending
// and either settle, fail, or are refunded after settling. Only Settled
// payments count toward the invoice's amount paid.
type Payment struct {
	ID        domain.PaymentID `json:"id"`
	InvoiceID domain.InvoiceID `json:"invoice_id"`

	PaymentDate     time.Time       `json:"payment_date"`
	Amount          decimal.Decimal `json:"amount"`
	Method          PaymentMethod   `json:"method"`
	Status          PaymentStatus   `json:"status"`
	ReferenceNumber *string         `json:"reference_number,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	FailureReason   *string         `json:"failure_reason,omitempty"`

	domain.Audit
}

// NewPayment returns a pending payment against the given invoice.
func NewPayment(invoiceID domain.InvoiceID, amount decimal.Decimal, method PaymentMethod, now time.Time) *Payment {
	return &Payment{
		ID:          domain.PaymentID(uuid.New()),
		InvoiceID:   invoiceID,
		PaymentDate: now,
		Amount:      amount,
		Method:      method,
		Status:      PaymentPending,
		Audit:       domain.NewAudit(now),
	}
}

// RecordID implements the storage record contract.
func (p *Payment) RecordID() uuid.UUID {
	return uuid.UUID(p.ID)
}

// IsSettled reports whether the funds have cleared.
func (p *Payment) IsSettled() bool {
	return p.Status == PaymentSettled
}

// Settle marks a pending payment as cleared.
func (p *Payment) Settle(now time.Time, actor string) error {
	if p.Status != PaymentPending {
		return dErrors.Newf(dErrors.CodeInvariantViolation, "payment in status %q cannot settle", p.Status)
	}
	p.Status = PaymentSettled
	p.Touch(now, actor)
	return nil
}

// Fail marks a pending payment as failed with the processor's reason.
func (p *Payment) Fail(now time.Time, actor, reason string) error {
	if p.Status != PaymentPending {
		return dErrors.Newf(dErrors.CodeInvariantViolation, "payment in status %q cannot fail", p.Status)
	}
	p.Status = PaymentFailed
	p.FailureReason = &reason
	p.Touch(now, actor)
	return nil
}

// Refund reverses a settled payment.
func (p *Payment) Refund(now time.Time, actor string) error {
	if p.Status != PaymentSettled {
		return dErrors.Newf(dErrors.CodeInvariantViolation, "payment in status %q cannot be refunded", p.Status)
	}
	p.Status = PaymentRefunded
	p.Touch(now, actor)
	return nil
}
