package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"carepath/pkg/domain"
)

// Client is the profile for a care recipient. MedicalConditions and
// Allergies are PHI; the infrastructure layer encrypts them at rest, this
// layer only carries them.
//
// HourlyBillRate is copied onto Shift.BillRate at shift creation to preserve
// the rate in effect at time of service.
type Client struct {
	ID     domain.ClientID `json:"id"`
	UserID domain.UserID   `json:"user_id"`

	DateOfBirth time.Time `json:"date_of_birth"`

	EmergencyContactName         *string `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone        *string `json:"emergency_contact_phone,omitempty"`
	EmergencyContactRelationship *string `json:"emergency_contact_relationship,omitempty"`

	// Care requirements, matched against caregiver Has* skill flags.
	RequiresDementiaCare         bool `json:"requires_dementia_care"`
	RequiresMobilityAssistance   bool `json:"requires_mobility_assistance"`
	RequiresMedicationManagement bool `json:"requires_medication_management"`
	RequiresCompanionship        bool `json:"requires_companionship"`

	SpecialInstructions *string `json:"special_instructions,omitempty"`
	MedicalConditions   *string `json:"-"`
	Allergies           *string `json:"-"`

	ServiceType          domain.ServiceType `json:"service_type"`
	HourlyBillRate       decimal.Decimal    `json:"hourly_bill_rate"`
	EstimatedWeeklyHours int                `json:"estimated_weekly_hours"`

	// Service-location coordinates for check-in geofencing; nil when the
	// address has not been geocoded yet.
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	LocationNotes *string  `json:"location_notes,omitempty"`

	InsuranceProvider     *string `json:"insurance_provider,omitempty"`
	InsurancePolicyNumber *string `json:"insurance_policy_number,omitempty"`
	MedicaidNumber        *string `json:"medicaid_number,omitempty"`

	domain.Audit
}

// NewClient returns an in-home-care client with fresh audit fields.
func NewClient(userID domain.UserID, now time.Time) *Client {
	return &Client{
		ID:          domain.ClientID(uuid.New()),
		UserID:      userID,
		ServiceType: domain.ServiceTypeInHomeCare,
		Audit:       domain.NewAudit(now),
	}
}

// RecordID implements the storage record contract.
func (c *Client) RecordID() uuid.UUID {
	return uuid.UUID(c.ID)
}

// Age returns whole years between the date of birth and today, using
// year-anniversary arithmetic so leap-day birthdays resolve correctly: a
// Feb 29 birthday has not occurred in a non-leap year until Mar 1.
func (c *Client) Age(today time.Time) int {
	dob := c.DateOfBirth
	years := today.Year() - dob.Year()
	if years < 0 {
		return years
	}
	anniversary := dob.AddDate(years, 0, 0)
	if anniversary.After(today) {
		years--
	}
	return years
}
