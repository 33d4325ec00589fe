// Package memory is the in-memory implementation of the storage contract.
// It backs unit and service tests and intentionally favors clarity over
// performance: one mutex, plain maps, records held by pointer.
//
// Committed state lives on a Store; every UnitOfWork minted from it shares
// the tables but carries its own staged changes and transaction, so closing
// one handle never disturbs another caller's pending work.
//
// Soft deletes are tracked as tombstones inside the store rather than by
// mutating the caller's record, so transaction rollback can restore the
// committed state exactly. Field-level mutations the caller makes on
// records it already holds are outside the store's control; the postgres
// implementation provides full isolation.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	billing "carepath/internal/billing/models"
	clinical "carepath/internal/clinical/models"
	identity "carepath/internal/identity/models"
	scheduling "carepath/internal/scheduling/models"
	"carepath/internal/storage"
	dErrors "carepath/pkg/domain-errors"
)

type opKind int

const (
	opAdd opKind = iota
	opUpdate
	opDelete
)

type stagedOp struct {
	kind   opKind
	record storage.Record
	target tableOps
}

// tableOps is the untyped surface the unit of work drives tables through.
type tableOps interface {
	apply(op stagedOp) error
	snapshot() tableState
	restore(state tableState)
}

type tableState struct {
	recs      map[uuid.UUID]storage.Record
	tombstone map[uuid.UUID]bool
}

// Store holds the committed records shared by every unit of work minted
// from it. Safe for concurrent use; all tables share its lock.
type Store struct {
	mu sync.RWMutex

	users          *table[*identity.User]
	caregivers     *table[*identity.Caregiver]
	certifications *table[*identity.CaregiverCertification]
	clients        *table[*identity.Client]
	carePlans      *table[*clinical.CarePlan]
	shifts         *table[*scheduling.Shift]
	visitNotes     *table[*scheduling.VisitNote]
	visitPhotos    *table[*scheduling.VisitPhoto]
	invoices       *table[*billing.Invoice]
	lineItems      *table[*billing.InvoiceLineItem]
	payments       *table[*billing.Payment]

	tables []tableOps
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	s := &Store{}
	s.users = newTable[*identity.User](s)
	s.caregivers = newTable[*identity.Caregiver](s)
	s.certifications = newTable[*identity.CaregiverCertification](s)
	s.clients = newTable[*identity.Client](s)
	s.carePlans = newTable[*clinical.CarePlan](s)
	s.shifts = newTable[*scheduling.Shift](s)
	s.visitNotes = newTable[*scheduling.VisitNote](s)
	s.visitPhotos = newTable[*scheduling.VisitPhoto](s)
	s.invoices = newTable[*billing.Invoice](s)
	s.lineItems = newTable[*billing.InvoiceLineItem](s)
	s.payments = newTable[*billing.Payment](s)
	s.tables = []tableOps{
		s.users, s.caregivers, s.certifications, s.clients,
		s.carePlans, s.shifts, s.visitNotes, s.visitPhotos,
		s.invoices, s.lineItems, s.payments,
	}
	return s
}

// NewUnitOfWork mints a fresh unit of work over the store's tables.
func (s *Store) NewUnitOfWork() *UnitOfWork {
	u := &UnitOfWork{store: s}
	u.users = &repo[*identity.User]{uow: u, tbl: s.users}
	u.caregivers = &repo[*identity.Caregiver]{uow: u, tbl: s.caregivers}
	u.certifications = &repo[*identity.CaregiverCertification]{uow: u, tbl: s.certifications}
	u.clients = &repo[*identity.Client]{uow: u, tbl: s.clients}
	u.carePlans = &repo[*clinical.CarePlan]{uow: u, tbl: s.carePlans}
	u.shifts = &repo[*scheduling.Shift]{uow: u, tbl: s.shifts}
	u.visitNotes = &repo[*scheduling.VisitNote]{uow: u, tbl: s.visitNotes}
	u.visitPhotos = &repo[*scheduling.VisitPhoto]{uow: u, tbl: s.visitPhotos}
	u.invoices = &repo[*billing.Invoice]{uow: u, tbl: s.invoices}
	u.lineItems = &repo[*billing.InvoiceLineItem]{uow: u, tbl: s.lineItems}
	u.payments = &repo[*billing.Payment]{uow: u, tbl: s.payments}
	return u
}

func (s *Store) snapshotAllLocked() []tableSnapshot {
	snaps := make([]tableSnapshot, 0, len(s.tables))
	for _, tbl := range s.tables {
		snaps = append(snaps, tableSnapshot{target: tbl, state: tbl.snapshot()})
	}
	return snaps
}

func (s *Store) restoreAllLocked(snaps []tableSnapshot) {
	for _, snap := range snaps {
		snap.target.restore(snap.state)
	}
}

// UnitOfWork is the in-memory unit of work. Staged changes and the explicit
// transaction belong to this instance alone; committed state is shared with
// every other unit of work over the same Store.
type UnitOfWork struct {
	store *Store

	staged     []stagedOp
	txActive   bool
	txSnapshot []tableSnapshot

	users          *repo[*identity.User]
	caregivers     *repo[*identity.Caregiver]
	certifications *repo[*identity.CaregiverCertification]
	clients        *repo[*identity.Client]
	carePlans      *repo[*clinical.CarePlan]
	shifts         *repo[*scheduling.Shift]
	visitNotes     *repo[*scheduling.VisitNote]
	visitPhotos    *repo[*scheduling.VisitPhoto]
	invoices       *repo[*billing.Invoice]
	lineItems      *repo[*billing.InvoiceLineItem]
	payments       *repo[*billing.Payment]
}

type tableSnapshot struct {
	target tableOps
	state  tableState
}

// NewUnitOfWork returns a unit of work over its own empty store, for tests
// and single-caller use. Callers sharing committed state across handles use
// NewStore and mint per-caller units of work from it.
func NewUnitOfWork() *UnitOfWork {
	return NewStore().NewUnitOfWork()
}

var _ storage.UnitOfWork = (*UnitOfWork)(nil)

func (u *UnitOfWork) Users() storage.Repository[*identity.User] { return u.users }

func (u *UnitOfWork) Caregivers() storage.Repository[*identity.Caregiver] { return u.caregivers }

func (u *UnitOfWork) CaregiverCertifications() storage.Repository[*identity.CaregiverCertification] {
	return u.certifications
}

func (u *UnitOfWork) Clients() storage.Repository[*identity.Client] { return u.clients }

func (u *UnitOfWork) CarePlans() storage.Repository[*clinical.CarePlan] { return u.carePlans }

func (u *UnitOfWork) Shifts() storage.Repository[*scheduling.Shift] { return u.shifts }

func (u *UnitOfWork) VisitNotes() storage.Repository[*scheduling.VisitNote] { return u.visitNotes }

func (u *UnitOfWork) VisitPhotos() storage.Repository[*scheduling.VisitPhoto] { return u.visitPhotos }

func (u *UnitOfWork) Invoices() storage.Repository[*billing.Invoice] { return u.invoices }

func (u *UnitOfWork) InvoiceLineItems() storage.Repository[*billing.InvoiceLineItem] {
	return u.lineItems
}

func (u *UnitOfWork) Payments() storage.Repository[*billing.Payment] { return u.payments }

func (u *UnitOfWork) stage(ctx context.Context, kind opKind, record storage.Record, target tableOps) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.staged = append(u.staged, stagedOp{kind: kind, record: record, target: target})
	return nil
}

// SaveChanges applies every staged add/update/delete atomically and returns
// the number of affected records. On error the committed state is restored
// untouched and the staged changes remain for the caller to retry or roll
// back.
func (u *UnitOfWork) SaveChanges(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	undo := u.store.snapshotAllLocked()
	for _, op := range u.staged {
		if err := op.target.apply(op); err != nil {
			u.store.restoreAllLocked(undo)
			return 0, err
		}
	}
	applied := len(u.staged)
	u.staged = nil
	return applied, nil
}

// BeginTransaction opens an explicit transaction. At most one may be active
// per unit of work.
func (u *UnitOfWork) BeginTransaction(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	if u.txActive {
		return storage.ErrTransactionActive
	}
	u.txActive = true
	u.txSnapshot = u.store.snapshotAllLocked()
	return nil
}

// CommitTransaction makes every save since BeginTransaction permanent.
func (u *UnitOfWork) CommitTransaction(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	if !u.txActive {
		return storage.ErrNoTransaction
	}
	u.txActive = false
	u.txSnapshot = nil
	return nil
}

// RollbackTransaction discards every save since BeginTransaction along with
// anything still staged.
func (u *UnitOfWork) RollbackTransaction(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	if !u.txActive {
		return storage.ErrNoTransaction
	}
	u.store.restoreAllLocked(u.txSnapshot)
	u.txActive = false
	u.txSnapshot = nil
	u.staged = nil
	return nil
}

// Close discards this instance's staged changes and transaction. The shared
// store keeps its committed records and other units of work are unaffected;
// Close never fails.
func (u *UnitOfWork) Close(context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.staged = nil
	u.txActive = false
	u.txSnapshot = nil
	return nil
}

// repo is one unit of work's view of a shared table: reads go straight to
// committed state, writes stage on the owning unit of work.
type repo[T storage.Record] struct {
	uow *UnitOfWork
	tbl *table[T]
}

func (r *repo[T]) GetByID(ctx context.Context, recordID uuid.UUID) (T, error) {
	return r.tbl.getByID(ctx, recordID)
}

func (r *repo[T]) GetAll(ctx context.Context) ([]T, error) {
	return r.tbl.find(ctx, nil)
}

func (r *repo[T]) Find(ctx context.Context, pred storage.Predicate[T]) ([]T, error) {
	return r.tbl.find(ctx, pred)
}

func (r *repo[T]) Add(ctx context.Context, record T) error {
	return r.uow.stage(ctx, opAdd, record, r.tbl)
}

func (r *repo[T]) Update(ctx context.Context, record T) error {
	return r.uow.stage(ctx, opUpdate, record, r.tbl)
}

func (r *repo[T]) Delete(ctx context.Context, record T) error {
	return r.uow.stage(ctx, opDelete, record, r.tbl)
}

func (r *repo[T]) Exists(ctx context.Context, pred storage.Predicate[T]) (bool, error) {
	return r.tbl.exists(ctx, pred)
}

func (r *repo[T]) Count(ctx context.Context, pred storage.Predicate[T]) (int, error) {
	return r.tbl.count(ctx, pred)
}

// table is one entity type's committed records. Tombstones record soft
// deletes without mutating the caller's record.
type table[T storage.Record] struct {
	store     *Store
	recs      map[uuid.UUID]T
	tombstone map[uuid.UUID]bool
	seq       map[uuid.UUID]int64
	next      int64
}

func newTable[T storage.Record](store *Store) *table[T] {
	return &table[T]{
		store:     store,
		recs:      make(map[uuid.UUID]T),
		tombstone: make(map[uuid.UUID]bool),
		seq:       make(map[uuid.UUID]int64),
	}
}

func (t *table[T]) live(recordID uuid.UUID) (T, bool) {
	rec, ok := t.recs[recordID]
	if !ok || t.tombstone[recordID] || rec.Deleted() {
		var zero T
		return zero, false
	}
	return rec, true
}

func (t *table[T]) getByID(ctx context.Context, recordID uuid.UUID) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	rec, ok := t.live(recordID)
	if !ok {
		return zero, storage.ErrNotFound
	}
	return rec, nil
}

func (t *table[T]) find(ctx context.Context, pred storage.Predicate[T]) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	matches := make([]T, 0, len(t.recs))
	for recordID := range t.recs {
		rec, ok := t.live(recordID)
		if !ok {
			continue
		}
		if pred != nil && !pred(rec) {
			continue
		}
		matches = append(matches, rec)
	}
	sort.Slice(matches, func(a, b int) bool {
		return t.seq[matches[a].RecordID()] < t.seq[matches[b].RecordID()]
	})
	return matches, nil
}

func (t *table[T]) exists(ctx context.Context, pred storage.Predicate[T]) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	for recordID := range t.recs {
		rec, ok := t.live(recordID)
		if !ok {
			continue
		}
		if pred == nil || pred(rec) {
			return true, nil
		}
	}
	return false, nil
}

func (t *table[T]) count(ctx context.Context, pred storage.Predicate[T]) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	count := 0
	for recordID := range t.recs {
		rec, ok := t.live(recordID)
		if !ok {
			continue
		}
		if pred == nil || pred(rec) {
			count++
		}
	}
	return count, nil
}

// apply executes one staged op against committed state. Caller holds the
// store lock.
func (t *table[T]) apply(op stagedOp) error {
	rec := op.record.(T)
	recordID := rec.RecordID()
	switch op.kind {
	case opAdd:
		if _, exists := t.recs[recordID]; exists && !t.tombstone[recordID] {
			return dErrors.Newf(dErrors.CodeConflict, "record %s already exists", recordID)
		}
		t.recs[recordID] = rec
		delete(t.tombstone, recordID)
		t.next++
		t.seq[recordID] = t.next
	case opUpdate:
		if _, ok := t.live(recordID); !ok {
			return storage.ErrNotFound
		}
		t.recs[recordID] = rec
	case opDelete:
		if _, ok := t.live(recordID); !ok {
			return storage.ErrNotFound
		}
		t.tombstone[recordID] = true
	}
	return nil
}

func (t *table[T]) snapshot() tableState {
	recs := make(map[uuid.UUID]storage.Record, len(t.recs))
	for recordID, rec := range t.recs {
		recs[recordID] = rec
	}
	tombstone := make(map[uuid.UUID]bool, len(t.tombstone))
	for recordID := range t.tombstone {
		tombstone[recordID] = true
	}
	return tableState{recs: recs, tombstone: tombstone}
}

func (t *table[T]) restore(state tableState) {
	recs := make(map[uuid.UUID]T, len(state.recs))
	for recordID, rec := range state.recs {
		recs[recordID] = rec.(T)
	}
	t.recs = recs
	tombstone := make(map[uuid.UUID]bool, len(state.tombstone))
	for recordID := range state.tombstone {
		tombstone[recordID] = true
	}
	t.tombstone = tombstone
}
