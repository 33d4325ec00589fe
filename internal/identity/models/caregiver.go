package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"carepath/pkg/domain"
)

// Caregiver is the profile for a care provider. W-2 employees deliver
// in-home care; 1099 contractors staff facilities.
//
// HourlyPayRate is copied onto Shift.PayRate at shift creation so the rate
// in effect at time of service is preserved even if the caregiver's rate
// changes later.
//
// TotalShiftsCompleted and NoShowCount are event-sourced counters. They only
// move through RecordCompletedShift and RecordNoShow, which the application
// layer calls when a shift transitions to Completed or NoShow; the fields are
// unexported so nothing outside this package can assign them directly.
type Caregiver struct {
	ID     domain.CaregiverID `json:"id"`
	UserID domain.UserID      `json:"user_id"`

	EmploymentType  EmploymentType  `json:"employment_type"`
	HourlyPayRate   decimal.Decimal `json:"hourly_pay_rate"`
	HireDate        time.Time       `json:"hire_date"`
	TerminationDate *time.Time      `json:"termination_date,omitempty"`

	// Skill flags, matched against the client's Requires* flags when a
	// coordinator assigns a shift.
	HasDementiaCare         bool `json:"has_dementia_care"`
	HasAlzheimersCare       bool `json:"has_alzheimers_care"`
	HasMobilityAssistance   bool `json:"has_mobility_assistance"`
	HasMedicationManagement bool `json:"has_medication_management"`

	AvailableWeekdays bool `json:"available_weekdays"`
	AvailableWeekends bool `json:"available_weekends"`
	AvailableNights   bool `json:"available_nights"`
	MaxWeeklyHours    int  `json:"max_weekly_hours"`

	// AverageRating is a rolling 1.0-5.0 average maintained by the
	// application layer; nil until the first rating lands.
	AverageRating *decimal.Decimal `json:"average_rating,omitempty"`

	totalShiftsCompleted int
	noShowCount          int

	domain.Audit
}

// DefaultMaxWeeklyHours is applied to new caregivers until scheduling
// adjusts it.
const DefaultMaxWeeklyHours = 40

// NewCaregiver returns a W-2 caregiver profile with scheduling defaults.
func NewCaregiver(userID domain.UserID, now time.Time) *Caregiver {
	return &Caregiver{
		ID:                domain.CaregiverID(uuid.New()),
		UserID:            userID,
		EmploymentType:    EmploymentW2Employee,
		AvailableWeekdays: true,
		MaxWeeklyHours:    DefaultMaxWeeklyHours,
		Audit:             domain.NewAudit(now),
	}
}

// RecordID implements the storage record contract.
func (c *Caregiver) RecordID() uuid.UUID {
	return uuid.UUID(c.ID)
}

// RecordCompletedShift increments the completed-shift counter by exactly one.
// Call when a shift transitions to Completed.
func (c *Caregiver) RecordCompletedShift() {
	c.totalShiftsCompleted++
}

// RecordNoShow increments the no-show counter by exactly one. Call when a
// shift transitions to NoShow.
func (c *Caregiver) RecordNoShow() {
	c.noShowCount++
}

// TotalShiftsCompleted returns the cumulative completed-shift count.
func (c *Caregiver) TotalShiftsCompleted() int {
	return c.totalShiftsCompleted
}

// NoShowCount returns the cumulative no-show count.
func (c *Caregiver) NoShowCount() int {
	return c.noShowCount
}

// RestorePerformanceCounters rehydrates the counters from persisted state.
// For store implementations only; business code must use the Record methods.
func (c *Caregiver) RestorePerformanceCounters(totalShiftsCompleted, noShowCount int) {
	c.totalShiftsCompleted = totalShiftsCompleted
	c.noShowCount = noShowCount
}

// IsActive reports whether the caregiver is currently employed.
func (c *Caregiver) IsActive(now time.Time) bool {
	return c.TerminationDate == nil || c.TerminationDate.After(now)
}
