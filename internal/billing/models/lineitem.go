package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"carepath/pkg/domain"
)

var hundred = decimal.NewFromInt(100)

// InvoiceLineItem is one billable line on an invoice, usually generated
// from a completed shift. ShiftID is nil for manual line items (mileage,
// supplies, adjustments).
//
// CostPerHour is internal margin tracking and must never surface on
// client-facing output; the JSON tags keep it and the derived figures out
// of serialized views.
type InvoiceLineItem struct {
	ID        domain.LineItemID `json:"id"`
	InvoiceID domain.InvoiceID  `json:"invoice_id"`
	ShiftID   *domain.ShiftID   `json:"shift_id,omitempty"`

	Description   string          `json:"description"`
	ServiceDate   time.Time       `json:"service_date"`
	BillableHours decimal.Decimal `json:"billable_hours"`
	RatePerHour   decimal.Decimal `json:"rate_per_hour"`

	CostPerHour *decimal.Decimal `json:"-"`

	domain.Audit
}

// NewInvoiceLineItem returns a line item attached to the given invoice.
func NewInvoiceLineItem(invoiceID domain.InvoiceID, description string, billableHours, ratePerHour decimal.Decimal, serviceDate, now time.Time) *InvoiceLineItem {
	return &InvoiceLineItem{
		ID:            domain.LineItemID(uuid.New()),
		InvoiceID:     invoiceID,
		Description:   description,
		ServiceDate:   serviceDate,
		BillableHours: billableHours,
		RatePerHour:   ratePerHour,
		Audit:         domain.NewAudit(now),
	}
}

// RecordID implements the storage record contract.
func (li *InvoiceLineItem) RecordID() uuid.UUID {
	return uuid.UUID(li.ID)
}

// Total is the client-facing line amount: hours × rate.
func (li *InvoiceLineItem) Total() decimal.Decimal {
	return li.BillableHours.Mul(li.RatePerHour)
}

// TotalCost is hours × cost rate, nil when no cost basis is recorded.
func (li *InvoiceLineItem) TotalCost() *decimal.Decimal {
	if li.CostPerHour == nil {
		return nil
	}
	cost := li.BillableHours.Mul(*li.CostPerHour)
	return &cost
}

// GrossProfit is Total − TotalCost, nil when no cost basis is recorded.
func (li *InvoiceLineItem) GrossProfit() *decimal.Decimal {
	totalCost := li.TotalCost()
	if totalCost == nil {
		return nil
	}
	profit := li.Total().Sub(*totalCost)
	return &profit
}

// GrossMarginPercentage is GrossProfit / Total × 100. Nil, not zero, when
// the total is zero or no cost basis exists: a missing cost basis means the
// margin is unknown, which is different from a shift that earned nothing.
func (li *InvoiceLineItem) GrossMarginPercentage() *decimal.Decimal {
	total := li.Total()
	profit := li.GrossProfit()
	if profit == nil || !total.IsPositive() {
		return nil
	}
	pct := profit.Div(total).Mul(hundred)
	return &pct
}
