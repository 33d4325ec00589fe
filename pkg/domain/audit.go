package domain

import "time"

// Audit carries the audit-trail and soft-delete fields every entity embeds.
//
// Invariants:
//   - CreatedAt is immutable after construction
//   - UpdatedAt is nil until the first mutation
//   - IsDeleted is the only form of deletion; records are retained for the
//     six-year medical-record retention window and never physically removed
type Audit struct {
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	CreatedBy *string    `json:"created_by,omitempty"`
	UpdatedBy *string    `json:"updated_by,omitempty"`
	IsDeleted bool       `json:"is_deleted"`
}

// NewAudit returns audit fields for a freshly created record.
func NewAudit(now time.Time) Audit {
	return Audit{CreatedAt: now}
}

// NewAuditBy returns audit fields attributed to the given actor.
func NewAuditBy(now time.Time, actor string) Audit {
	a := Audit{CreatedAt: now}
	if actor != "" {
		a.CreatedBy = &actor
	}
	return a
}

// Touch records a mutation timestamp and, when known, the acting user.
func (a *Audit) Touch(now time.Time, actor string) {
	a.UpdatedAt = &now
	if actor != "" {
		a.UpdatedBy = &actor
	}
}

// SoftDelete marks the record logically deleted. All standard read paths
// exclude soft-deleted records.
func (a *Audit) SoftDelete(now time.Time, actor string) {
	a.IsDeleted = true
	a.Touch(now, actor)
}

// Deleted reports whether the record is soft-deleted.
func (a *Audit) Deleted() bool {
	return a.IsDeleted
}
