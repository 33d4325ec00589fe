// Package domain holds the identifier types and shared vocabulary used by
// every entity package. Each entity gets its own uuid-backed ID type so the
// compiler rejects cross-entity assignment (a ShiftID can never be passed
// where an InvoiceID is expected).
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "carepath/pkg/domain-errors"
)

type (
	// UserID identifies a User account.
	UserID uuid.UUID
	// CaregiverID identifies a Caregiver profile.
	CaregiverID uuid.UUID
	// CertificationID identifies a CaregiverCertification.
	CertificationID uuid.UUID
	// ClientID identifies a Client profile.
	ClientID uuid.UUID
	// CarePlanID identifies a CarePlan.
	CarePlanID uuid.UUID
	// ShiftID identifies a Shift.
	ShiftID uuid.UUID
	// VisitNoteID identifies a VisitNote.
	VisitNoteID uuid.UUID
	// VisitPhotoID identifies a VisitPhoto.
	VisitPhotoID uuid.UUID
	// InvoiceID identifies an Invoice.
	InvoiceID uuid.UUID
	// LineItemID identifies an InvoiceLineItem.
	LineItemID uuid.UUID
	// PaymentID identifies a Payment.
	PaymentID uuid.UUID
)

func (id UserID) String() string          { return uuid.UUID(id).String() }
func (id CaregiverID) String() string     { return uuid.UUID(id).String() }
func (id CertificationID) String() string { return uuid.UUID(id).String() }
func (id ClientID) String() string        { return uuid.UUID(id).String() }
func (id CarePlanID) String() string      { return uuid.UUID(id).String() }
func (id ShiftID) String() string         { return uuid.UUID(id).String() }
func (id VisitNoteID) String() string     { return uuid.UUID(id).String() }
func (id VisitPhotoID) String() string    { return uuid.UUID(id).String() }
func (id InvoiceID) String() string       { return uuid.UUID(id).String() }
func (id LineItemID) String() string      { return uuid.UUID(id).String() }
func (id PaymentID) String() string       { return uuid.UUID(id).String() }

// parseUUID enforces the shared invariant: IDs must be valid, non-nil UUIDs.
func parseUUID(raw string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeValidation, "id cannot be empty")
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeValidation, "id is not a valid uuid")
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeValidation, "id cannot be the nil uuid")
	}
	return parsed, nil
}

// ParseUserID parses a string into a UserID, rejecting empty and nil UUIDs.
func ParseUserID(raw string) (UserID, error) {
	parsed, err := parseUUID(raw)
	return UserID(parsed), err
}

// ParseCaregiverID parses a string into a CaregiverID.
func ParseCaregiverID(raw string) (CaregiverID, error) {
	parsed, err := parseUUID(raw)
	return CaregiverID(parsed), err
}

// ParseCertificationID parses a string into a CertificationID.
func ParseCertificationID(raw string) (CertificationID, error) {
	parsed, err := parseUUID(raw)
	return CertificationID(parsed), err
}

// ParseClientID parses a string into a ClientID.
func ParseClientID(raw string) (ClientID, error) {
	parsed, err := parseUUID(raw)
	return ClientID(parsed), err
}

// ParseCarePlanID parses a string into a CarePlanID.
func ParseCarePlanID(raw string) (CarePlanID, error) {
	parsed, err := parseUUID(raw)
	return CarePlanID(parsed), err
}

// ParseShiftID parses a string into a ShiftID.
func ParseShiftID(raw string) (ShiftID, error) {
	parsed, err := parseUUID(raw)
	return ShiftID(parsed), err
}

// ParseVisitNoteID parses a string into a VisitNoteID.
func ParseVisitNoteID(raw string) (VisitNoteID, error) {
	parsed, err := parseUUID(raw)
	return VisitNoteID(parsed), err
}

// ParseVisitPhotoID parses a string into a VisitPhotoID.
func ParseVisitPhotoID(raw string) (VisitPhotoID, error) {
	parsed, err := parseUUID(raw)
	return VisitPhotoID(parsed), err
}

// ParseInvoiceID parses a string into an InvoiceID.
func ParseInvoiceID(raw string) (InvoiceID, error) {
	parsed, err := parseUUID(raw)
	return InvoiceID(parsed), err
}

// ParseLineItemID parses a string into a LineItemID.
func ParseLineItemID(raw string) (LineItemID, error) {
	parsed, err := parseUUID(raw)
	return LineItemID(parsed), err
}

// ParsePaymentID parses a string into a PaymentID.
func ParsePaymentID(raw string) (PaymentID, error) {
	parsed, err := parseUUID(raw)
	return PaymentID(parsed), err
}
