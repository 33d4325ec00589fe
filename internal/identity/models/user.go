package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"carepath/pkg/domain"
)

// User is the account record behind every person in the system. A user owns
// at most one Caregiver or Client profile, linked by UserID on the profile
// side.
//
// Invariants:
//   - Email is unique across live accounts (enforced by the store)
//   - Required string fields default to empty rather than failing construction
type User struct {
	ID          domain.UserID `json:"id"`
	FirstName   string        `json:"first_name"`
	LastName    string        `json:"last_name"`
	Email       string        `json:"email"`
	PhoneNumber string        `json:"phone_number"`
	Address     *string       `json:"address,omitempty"`
	City        *string       `json:"city,omitempty"`
	State       *string       `json:"state,omitempty"`
	ZipCode     *string       `json:"zip_code,omitempty"`
	Role        UserRole      `json:"role"`
	IsActive    bool          `json:"is_active"`
	LastLoginAt *time.Time    `json:"last_login_at,omitempty"`

	domain.Audit
}

// NewUser returns an active user with fresh audit fields.
func NewUser(role UserRole, now time.Time) *User {
	return &User{
		ID:       domain.UserID(uuid.New()),
		Role:     role,
		IsActive: true,
		Audit:    domain.NewAudit(now),
	}
}

// RecordID implements the storage record contract.
func (u *User) RecordID() uuid.UUID {
	return uuid.UUID(u.ID)
}

// FullName joins first and last name, trimming the stray space left when
// either part is empty.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
