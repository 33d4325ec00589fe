// Package models holds the clinical-side domain records. Goals,
// interventions, and notes are PHI and follow the same access rules as the
// client's medical fields.
package models

import (
	"time"

	"github.com/google/uuid"

	"carepath/pkg/domain"
)

// CarePlan is a plan of care for a client. A client should have at most one
// active plan at a time; that is caller discipline enforced at the service
// layer (checked before activation), not a structural invariant here.
type CarePlan struct {
	ID       domain.CarePlanID `json:"id"`
	ClientID domain.ClientID   `json:"client_id"`

	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`

	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	IsActive  bool       `json:"is_active"`

	Goals         *string `json:"-"`
	Interventions *string `json:"-"`
	Notes         *string `json:"-"`

	domain.Audit
}

// NewCarePlan returns an active plan starting at the given date.
func NewCarePlan(clientID domain.ClientID, title string, startDate, now time.Time) *CarePlan {
	return &CarePlan{
		ID:        domain.CarePlanID(uuid.New()),
		ClientID:  clientID,
		Title:     title,
		StartDate: startDate,
		IsActive:  true,
		Audit:     domain.NewAudit(now),
	}
}

// RecordID implements the storage record contract.
func (p *CarePlan) RecordID() uuid.UUID {
	return uuid.UUID(p.ID)
}

// Deactivate closes the plan, stamping the end date.
func (p *CarePlan) Deactivate(now time.Time, actor string) {
	p.IsActive = false
	p.EndDate = &now
	p.Touch(now, actor)
}
