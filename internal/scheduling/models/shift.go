// Package models holds the scheduling-side domain records: shifts, visit
// notes, and visit photos.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"carepath/pkg/domain"
	dErrors "carepath/pkg/domain-errors"
)

var (
	minutesPerHour = decimal.NewFromInt(60)
	hundred        = decimal.NewFromInt(100)
)

// Shift is one scheduled care session delivered by a caregiver to a client.
//
// BillRate and PayRate are snapshots copied from Client.HourlyBillRate and
// Caregiver.HourlyPayRate at creation, preserving the rates in effect at
// time of service; by convention they are never reassigned afterwards.
//
// CaregiverID is nil for an open shift awaiting assignment.
//
// The margin computations are pure functions of stored fields, recomputed on
// every call. Margin targets are 40-45% for in-home (W-2) shifts and 25-30%
// for facility (1099) shifts; these are reporting targets, not enforced here.
type Shift struct {
	ID          domain.ShiftID      `json:"id"`
	ClientID    domain.ClientID     `json:"client_id"`
	CaregiverID *domain.CaregiverID `json:"caregiver_id,omitempty"`

	ScheduledStartTime time.Time  `json:"scheduled_start_time"`
	ScheduledEndTime   time.Time  `json:"scheduled_end_time"`
	ActualStartTime    *time.Time `json:"actual_start_time,omitempty"`
	ActualEndTime      *time.Time `json:"actual_end_time,omitempty"`

	Status      ShiftStatus        `json:"status"`
	ServiceType domain.ServiceType `json:"service_type"`

	BillRate decimal.Decimal `json:"bill_rate"`
	PayRate  decimal.Decimal `json:"pay_rate"`

	// W-2 extras; nil when not applicable (1099 contractors get no overtime).
	OvertimePayRate *decimal.Decimal `json:"overtime_pay_rate,omitempty"`
	WeekendPremium  *decimal.Decimal `json:"weekend_premium,omitempty"`
	HolidayPremium  *decimal.Decimal `json:"holiday_premium,omitempty"`

	// GPS check-in/out for in-home geofencing. Validation happens in the
	// mobile app; these are the recorded facts.
	CheckInLatitude   *float64   `json:"check_in_latitude,omitempty"`
	CheckInLongitude  *float64   `json:"check_in_longitude,omitempty"`
	CheckInTime       *time.Time `json:"check_in_time,omitempty"`
	CheckOutLatitude  *float64   `json:"check_out_latitude,omitempty"`
	CheckOutLongitude *float64   `json:"check_out_longitude,omitempty"`
	CheckOutTime      *time.Time `json:"check_out_time,omitempty"`

	// Unpaid break in minutes, subtracted when computing billable hours.
	BreakMinutes int `json:"break_minutes"`

	Notes              *string    `json:"notes,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`

	domain.Audit
}

// NewShift returns a scheduled shift with the rate snapshots taken.
func NewShift(clientID domain.ClientID, serviceType domain.ServiceType, billRate, payRate decimal.Decimal, scheduledStart, scheduledEnd, now time.Time) *Shift {
	return &Shift{
		ID:                 domain.ShiftID(uuid.New()),
		ClientID:           clientID,
		ScheduledStartTime: scheduledStart,
		ScheduledEndTime:   scheduledEnd,
		Status:             ShiftScheduled,
		ServiceType:        serviceType,
		BillRate:           billRate,
		PayRate:            payRate,
		Audit:              domain.NewAudit(now),
	}
}

// RecordID implements the storage record contract.
func (s *Shift) RecordID() uuid.UUID {
	return uuid.UUID(s.ID)
}

// ScheduledDuration is the planned length of the shift.
func (s *Shift) ScheduledDuration() time.Duration {
	return s.ScheduledEndTime.Sub(s.ScheduledStartTime)
}

// ActualDuration is the worked length of the shift, nil until both actual
// timestamps are recorded.
func (s *Shift) ActualDuration() *time.Duration {
	if s.ActualStartTime == nil || s.ActualEndTime == nil {
		return nil
	}
	d := s.ActualEndTime.Sub(*s.ActualStartTime)
	return &d
}

// BillableHours is worked minutes minus the unpaid break, in hours.
// Zero when the shift has no recorded actual times, and floored at zero when
// the break consumes the whole shift; never negative. Hours are fractional
// to the minute, computed in exact decimal arithmetic.
func (s *Shift) BillableHours() decimal.Decimal {
	if s.ActualStartTime == nil || s.ActualEndTime == nil {
		return decimal.Zero
	}
	workedMinutes := int64(s.ActualEndTime.Sub(*s.ActualStartTime)/time.Minute) - int64(s.BreakMinutes)
	if workedMinutes <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(workedMinutes).Div(minutesPerHour)
}

// GrossMargin is (BillRate − PayRate) × BillableHours, in dollars. Zero for
// an incomplete shift.
func (s *Shift) GrossMargin() decimal.Decimal {
	return s.BillRate.Sub(s.PayRate).Mul(s.BillableHours())
}

// GrossMarginPercentage is the gross margin as a percentage of revenue.
// Zero when the bill rate is zero or the shift has no billable hours, so the
// value is always well-defined, never a division by zero.
func (s *Shift) GrossMarginPercentage() decimal.Decimal {
	hours := s.BillableHours()
	if !s.BillRate.IsPositive() || !hours.IsPositive() {
		return decimal.Zero
	}
	revenue := s.BillRate.Mul(hours)
	return s.GrossMargin().Div(revenue).Mul(hundred)
}

// Start moves the shift to InProgress, recording the actual start time.
func (s *Shift) Start(now time.Time, actor string) error {
	if !s.Status.CanTransitionTo(ShiftInProgress) {
		return dErrors.Newf(dErrors.CodeInvariantViolation, "shift in status %q cannot start", s.Status)
	}
	s.Status = ShiftInProgress
	s.ActualStartTime = &now
	s.Touch(now, actor)
	return nil
}

// Complete moves the shift to Completed, recording the actual end time.
func (s *Shift) Complete(now time.Time, actor string) error {
	if !s.Status.CanTransitionTo(ShiftCompleted) {
		return dErrors.Newf(dErrors.CodeInvariantViolation, "shift in status %q cannot complete", s.Status)
	}
	s.Status = ShiftCompleted
	s.ActualEndTime = &now
	s.Touch(now, actor)
	return nil
}

// Cancel moves the shift to Cancelled with the given reason.
func (s *Shift) Cancel(now time.Time, actor, reason string) error {
	if !s.Status.CanTransitionTo(ShiftCancelled) {
		return dErrors.Newf(dErrors.CodeInvariantViolation, "shift in status %q cannot be cancelled", s.Status)
	}
	s.Status = ShiftCancelled
	s.CancellationReason = &reason
	s.CancelledAt = &now
	s.Touch(now, actor)
	return nil
}

// MarkNoShow records that the assigned caregiver failed to appear. The
// caller is responsible for also calling Caregiver.RecordNoShow; the shift
// does not reach into the caregiver record.
func (s *Shift) MarkNoShow(now time.Time, actor string) error {
	if !s.Status.CanTransitionTo(ShiftNoShow) {
		return dErrors.Newf(dErrors.CodeInvariantViolation, "shift in status %q cannot be marked no-show", s.Status)
	}
	s.Status = ShiftNoShow
	s.Touch(now, actor)
	return nil
}

// Assign attaches a caregiver to an open shift.
func (s *Shift) Assign(caregiverID domain.CaregiverID, now time.Time, actor string) error {
	if s.Status != ShiftScheduled {
		return dErrors.Newf(dErrors.CodeInvariantViolation, "shift in status %q cannot be reassigned", s.Status)
	}
	s.CaregiverID = &caregiverID
	s.Touch(now, actor)
	return nil
}
