// Package storage defines the persistence contract the rest of the system
// programs against: a generic repository per entity type and a unit of work
// that commits staged changes atomically.
//
// Implementations live in the memory and postgres subpackages. Every read
// path excludes soft-deleted records unconditionally; the filter is built
// into the contract, not opt-in.
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	billing "carepath/internal/billing/models"
	clinical "carepath/internal/clinical/models"
	identity "carepath/internal/identity/models"
	scheduling "carepath/internal/scheduling/models"
	dErrors "carepath/pkg/domain-errors"
)

var (
	// ErrNotFound is returned when a lookup matches no live record.
	// Soft-deleted records are indistinguishable from absent ones.
	ErrNotFound = dErrors.New(dErrors.CodeNotFound, "record not found")

	// ErrTransactionActive is returned when BeginTransaction is called
	// while a transaction is already open on the same unit of work. A
	// caller bug, not a store fault.
	ErrTransactionActive = dErrors.New(dErrors.CodeUsage, "a transaction is already active on this unit of work")

	// ErrNoTransaction is returned when Commit or Rollback is called with
	// no open transaction. A caller bug, not a store fault.
	ErrNoTransaction = dErrors.New(dErrors.CodeUsage, "no transaction is active on this unit of work")
)

// Record is the shape every persistable entity satisfies via its embedded
// audit fields plus a RecordID method.
type Record interface {
	RecordID() uuid.UUID
	Deleted() bool
	Touch(now time.Time, actor string)
	SoftDelete(now time.Time, actor string)
}

// Predicate filters records in Find, Exists, and Count. Implementations
// evaluate it only against live (non-deleted) records.
type Predicate[T Record] func(T) bool

// Repository is the generic persistence surface for one entity type.
//
// Add, Update, and Delete stage changes on the owning unit of work; nothing
// is durable until SaveChanges. Delete is always a soft delete: it flips
// the IsDeleted flag and the record drops out of every read path.
type Repository[T Record] interface {
	// GetByID returns the live record with the given id, or ErrNotFound.
	GetByID(ctx context.Context, recordID uuid.UUID) (T, error)

	// GetAll returns all live records ordered by creation time.
	GetAll(ctx context.Context) ([]T, error)

	// Find returns live records matching the predicate, ordered by
	// creation time.
	Find(ctx context.Context, pred Predicate[T]) ([]T, error)

	// Add stages an insert.
	Add(ctx context.Context, record T) error

	// Update stages a full-record update.
	Update(ctx context.Context, record T) error

	// Delete stages a soft delete.
	Delete(ctx context.Context, record T) error

	// Exists reports whether any live record matches the predicate.
	Exists(ctx context.Context, pred Predicate[T]) (bool, error)

	// Count counts live records matching the predicate; a nil predicate
	// counts all live records.
	Count(ctx context.Context, pred Predicate[T]) (int, error)
}

// UnitOfWork aggregates one repository per entity type under a single
// transactional boundary.
//
// SaveChanges persists everything staged since the previous save in one
// atomic write and returns the number of affected records. Explicit
// transactions span multiple saves: at most one may be open per instance,
// and Commit/Rollback without one (or a second Begin) fail fast with a
// usage error. Close releases underlying resources and must be safe to
// defer alongside normal commits and error paths alike.
type UnitOfWork interface {
	Users() Repository[*identity.User]
	Caregivers() Repository[*identity.Caregiver]
	CaregiverCertifications() Repository[*identity.CaregiverCertification]
	Clients() Repository[*identity.Client]
	CarePlans() Repository[*clinical.CarePlan]
	Shifts() Repository[*scheduling.Shift]
	VisitNotes() Repository[*scheduling.VisitNote]
	VisitPhotos() Repository[*scheduling.VisitPhoto]
	Invoices() Repository[*billing.Invoice]
	InvoiceLineItems() Repository[*billing.InvoiceLineItem]
	Payments() Repository[*billing.Payment]

	SaveChanges(ctx context.Context) (int, error)

	BeginTransaction(ctx context.Context) error
	CommitTransaction(ctx context.Context) error
	RollbackTransaction(ctx context.Context) error

	Close(ctx context.Context) error
}
