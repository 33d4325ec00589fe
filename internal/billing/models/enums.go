package models

// InvoiceStatus is the lifecycle state of an invoice.
//
// Transitions are one-directional: Draft → Sent → PartiallyPaid → Paid.
// Cancelled is reachable from any non-terminal state. Overdue is applied by
// the periodic overdue marker comparing due dates to the clock, never by
// RecalculateStatus.
type InvoiceStatus string

const (
	InvoiceDraft         InvoiceStatus = "draft"
	InvoiceSent          InvoiceStatus = "sent"
	InvoicePaid          InvoiceStatus = "paid"
	InvoiceOverdue       InvoiceStatus = "overdue"
	InvoiceCancelled     InvoiceStatus = "cancelled"
	InvoicePartiallyPaid InvoiceStatus = "partially_paid"
)

// IsValid reports whether the value is a known invoice status.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceOverdue, InvoiceCancelled, InvoicePartiallyPaid:
		return true
	}
	return false
}

// IsTerminal reports whether the invoice can no longer change state.
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoicePaid || s == InvoiceCancelled
}

// PaymentStatus is the settlement state of a payment. Only Settled payments
// count toward an invoice's amount paid.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentSettled  PaymentStatus = "settled"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// IsValid reports whether the value is a known payment status.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentSettled, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// PaymentMethod is how a payment was tendered.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodCheck        PaymentMethod = "check"
	MethodCreditCard   PaymentMethod = "credit_card"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodInsurance    PaymentMethod = "insurance"
	MethodMedicaid     PaymentMethod = "medicaid"
)

// IsValid reports whether the value is a known payment method.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodCheck, MethodCreditCard, MethodBankTransfer, MethodInsurance, MethodMedicaid:
		return true
	}
	return false
}
