package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"carepath/pkg/domain"
)

// VisitNote is the caregiver's documentation for one shift. The activity
// checkboxes exist for fast mobile entry; the free-text fields are PHI.
//
// VisitDateTime reflects when care was delivered, not when the note was
// submitted; late submissions keep the original visit time.
type VisitNote struct {
	ID          domain.VisitNoteID `json:"id"`
	ShiftID     domain.ShiftID     `json:"shift_id"`
	CaregiverID domain.CaregiverID `json:"caregiver_id"`

	VisitDateTime time.Time `json:"visit_date_time"`

	// Activity checkboxes.
	PersonalCare      bool `json:"personal_care"`
	MealPreparation   bool `json:"meal_preparation"`
	Medication        bool `json:"medication"`
	LightHousekeeping bool `json:"light_housekeeping"`
	Companionship     bool `json:"companionship"`
	Transportation    bool `json:"transportation"`
	Exercise          bool `json:"exercise"`

	// Free-text clinical fields (PHI).
	Activities      *string `json:"-"`
	ClientCondition *string `json:"-"`
	Concerns        *string `json:"-"`
	Medications     *string `json:"-"`

	// Vital signs, recorded when taken.
	BloodPressureSystolic  *int             `json:"blood_pressure_systolic,omitempty"`
	BloodPressureDiastolic *int             `json:"blood_pressure_diastolic,omitempty"`
	Temperature            *decimal.Decimal `json:"temperature,omitempty"`
	HeartRate              *int             `json:"heart_rate,omitempty"`

	// Signature images live in blob storage; only the URLs are kept here.
	CaregiverSignatureURL      *string `json:"caregiver_signature_url,omitempty"`
	ClientOrFamilySignatureURL *string `json:"client_or_family_signature_url,omitempty"`

	domain.Audit
}

// NewVisitNote returns a visit note for the given shift and caregiver.
func NewVisitNote(shiftID domain.ShiftID, caregiverID domain.CaregiverID, visitDateTime, now time.Time) *VisitNote {
	return &VisitNote{
		ID:            domain.VisitNoteID(uuid.New()),
		ShiftID:       shiftID,
		CaregiverID:   caregiverID,
		VisitDateTime: visitDateTime,
		Audit:         domain.NewAudit(now),
	}
}

// RecordID implements the storage record contract.
func (n *VisitNote) RecordID() uuid.UUID {
	return uuid.UUID(n.ID)
}
