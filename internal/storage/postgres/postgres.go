// Package postgres is the pgx-backed implementation of the storage
// contract. Writes are staged on the unit of work and flushed in a single
// transaction by SaveChanges; explicit transactions map directly onto a
// pgx.Tx held by the unit of work.
//
// Every query carries the soft-delete filter in SQL; there is no way to
// read a deleted record through this package.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	billing "carepath/internal/billing/models"
	clinical "carepath/internal/clinical/models"
	identity "carepath/internal/identity/models"
	scheduling "carepath/internal/scheduling/models"
	"carepath/internal/storage"
	dErrors "carepath/pkg/domain-errors"
	"carepath/pkg/requestcontext"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx so reads run
// against the active transaction when one is open.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// command is one staged write, rendered at flush time so audit stamps
// reflect the save instant.
type command struct {
	render func(now time.Time, actor string) (string, []any)
}

// UnitOfWork stages writes against a shared pgx pool. One instance per
// logical operation; instances are not safe for concurrent use with each
// other's transactions but serialize their own staged changes internally.
type UnitOfWork struct {
	pool   *pgxpool.Pool
	tracer trace.Tracer

	mu     sync.Mutex
	staged []command
	tx     pgx.Tx

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

// NewUnitOfWork returns a unit of work backed by the given pool. The pool
// is shared and stays open after Close.
func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	uow := &UnitOfWork{
		pool:   pool,
		tracer: otel.Tracer("carepath/storage/postgres"),
	}
	uow.users = newRepo(uow, userMapper)
	uow.caregivers = newRepo(uow, caregiverMapper)
	uow.certifications = newRepo(uow, certificationMapper)
	uow.clients = newRepo(uow, clientMapper)
	uow.carePlans = newRepo(uow, carePlanMapper)
	uow.shifts = newRepo(uow, shiftMapper)
	uow.visitNotes = newRepo(uow, visitNoteMapper)
	uow.visitPhotos = newRepo(uow, visitPhotoMapper)
	uow.invoices = newRepo(uow, invoiceMapper)
	uow.lineItems = newRepo(uow, lineItemMapper)
	uow.payments = newRepo(uow, paymentMapper)
	return uow
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

func (u *UnitOfWork) querier() querier {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.tx != nil {
		return u.tx
	}
	return u.pool
}

func (u *UnitOfWork) stage(cmd command) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.staged = append(u.staged, cmd)
}

// SaveChanges flushes every staged write in one transaction (the explicit
// one when open, otherwise a transaction of its own) and returns the number
// of staged records written. Staged changes survive a failed flush so the
// caller can roll back or retry.
func (u *UnitOfWork) SaveChanges(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	ctx, span := u.tracer.Start(ctx, "uow.SaveChanges")
	defer span.End()

	now := requestcontext.Now(ctx)
	actor := requestcontext.Actor(ctx)

	u.mu.Lock()
	cmds := u.staged
	tx := u.tx
	u.mu.Unlock()

	if len(cmds) == 0 {
		return 0, nil
	}

	ownTx := tx == nil
	if ownTx {
		var err error
		tx, err = u.pool.Begin(ctx)
		if err != nil {
			return 0, dErrors.Wrap(err, dErrors.CodeInternal, "begin save transaction")
		}
		defer func() { _ = tx.Rollback(ctx) }()
	}

	for _, cmd := range cmds {
		sql, args := cmd.render(now, actor)
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			savesTotal.WithLabelValues("error").Inc()
			return 0, dErrors.Wrap(err, dErrors.CodeInternal, "flush staged changes")
		}
	}

	if ownTx {
		if err := tx.Commit(ctx); err != nil {
			savesTotal.WithLabelValues("error").Inc()
			return 0, dErrors.Wrap(err, dErrors.CodeInternal, "commit save transaction")
		}
	}

	u.mu.Lock()
	u.staged = nil
	u.mu.Unlock()
	savesTotal.WithLabelValues("ok").Inc()
	recordsWritten.Add(float64(len(cmds)))
	return len(cmds), nil
}

// BeginTransaction opens the instance's single explicit transaction.
func (u *UnitOfWork) BeginTransaction(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.tx != nil {
		return storage.ErrTransactionActive
	}
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "begin transaction")
	}
	u.tx = tx
	return nil
}

// CommitTransaction commits the explicit transaction.
func (u *UnitOfWork) CommitTransaction(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.mu.Lock()
	tx := u.tx
	u.mu.Unlock()
	if tx == nil {
		return storage.ErrNoTransaction
	}
	ctx, span := u.tracer.Start(ctx, "uow.CommitTransaction")
	defer span.End()
	err := tx.Commit(ctx)
	u.mu.Lock()
	u.tx = nil
	u.mu.Unlock()
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "commit transaction")
	}
	transactionsTotal.WithLabelValues("commit").Inc()
	return nil
}

// RollbackTransaction rolls back the explicit transaction and discards
// staged changes.
func (u *UnitOfWork) RollbackTransaction(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.mu.Lock()
	tx := u.tx
	u.mu.Unlock()
	if tx == nil {
		return storage.ErrNoTransaction
	}
	err := tx.Rollback(ctx)
	u.mu.Lock()
	u.tx = nil
	u.staged = nil
	u.mu.Unlock()
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "rollback transaction")
	}
	transactionsTotal.WithLabelValues("rollback").Inc()
	return nil
}

// Close rolls back any open transaction and discards staged changes. The
// shared pool is left open; the owner of the pool closes it at shutdown.
// Safe to defer on every path.
func (u *UnitOfWork) Close(ctx context.Context) error {
	u.mu.Lock()
	tx := u.tx
	u.tx = nil
	u.staged = nil
	u.mu.Unlock()
	if tx != nil {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "rollback on close")
		}
	}
	return nil
}

// mapper describes how one entity type maps onto its table. Column order
// is the contract: values and scan must agree with cols / selectList.
type mapper[T storage.Record] struct {
	table      string
	cols       []string
	selectList string
	values     func(T) []any
	scan       func(rows pgx.Rows) (T, error)
}

// repo is the generic pgx repository; all SQL is derived from the mapper.
type repo[T storage.Record] struct {
	uow *UnitOfWork
	m   mapper[T]

	insertSQL string
	updateSQL string
	deleteSQL string
	byIDSQL   string
	allSQL    string
	countSQL  string
}

func newRepo[T storage.Record](uow *UnitOfWork, m mapper[T]) *repo[T] {
	placeholders := make([]string, len(m.cols))
	for i := range m.cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	sets := make([]string, 0, len(m.cols)-1)
	for i, col := range m.cols[1:] {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i+2))
	}
	return &repo[T]{
		uow: uow,
		m:   m,
		insertSQL: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			m.table, strings.Join(m.cols, ", "), strings.Join(placeholders, ", ")),
		updateSQL: fmt.Sprintf("UPDATE %s SET %s WHERE id = $1 AND is_deleted = FALSE",
			m.table, strings.Join(sets, ", ")),
		deleteSQL: fmt.Sprintf(
			"UPDATE %s SET is_deleted = TRUE, updated_at = $2, updated_by = $3 WHERE id = $1 AND is_deleted = FALSE",
			m.table),
		byIDSQL: fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 AND is_deleted = FALSE",
			m.selectList, m.table),
		allSQL: fmt.Sprintf("SELECT %s FROM %s WHERE is_deleted = FALSE ORDER BY created_at, id",
			m.selectList, m.table),
		countSQL: fmt.Sprintf("SELECT count(*) FROM %s WHERE is_deleted = FALSE", m.table),
	}
}

func (r *repo[T]) GetByID(ctx context.Context, recordID uuid.UUID) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	rows, err := r.uow.querier().Query(ctx, r.byIDSQL, recordID)
	if err != nil {
		return zero, dErrors.Wrap(err, dErrors.CodeInternal, "query by id")
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return zero, dErrors.Wrap(err, dErrors.CodeInternal, "query by id")
		}
		return zero, storage.ErrNotFound
	}
	rec, err := r.m.scan(rows)
	if err != nil {
		return zero, dErrors.Wrap(err, dErrors.CodeInternal, "scan record")
	}
	return rec, nil
}

func (r *repo[T]) GetAll(ctx context.Context) ([]T, error) {
	return r.Find(ctx, nil)
}

func (r *repo[T]) Find(ctx context.Context, pred storage.Predicate[T]) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := r.uow.querier().Query(ctx, r.allSQL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "query records")
	}
	defer rows.Close()

	var matches []T
	for rows.Next() {
		rec, err := r.m.scan(rows)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "scan record")
		}
		if pred == nil || pred(rec) {
			matches = append(matches, rec)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "iterate records")
	}
	return matches, nil
}

func (r *repo[T]) Add(ctx context.Context, record T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.uow.stage(command{render: func(time.Time, string) (string, []any) {
		return r.insertSQL, r.m.values(record)
	}})
	return nil
}

func (r *repo[T]) Update(ctx context.Context, record T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.uow.stage(command{render: func(now time.Time, actor string) (string, []any) {
		record.Touch(now, actor)
		return r.updateSQL, r.m.values(record)
	}})
	return nil
}

func (r *repo[T]) Delete(ctx context.Context, record T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.uow.stage(command{render: func(now time.Time, actor string) (string, []any) {
		record.SoftDelete(now, actor)
		var updatedBy *string
		if actor != "" {
			updatedBy = &actor
		}
		return r.deleteSQL, []any{record.RecordID(), now, updatedBy}
	}})
	return nil
}

func (r *repo[T]) Exists(ctx context.Context, pred storage.Predicate[T]) (bool, error) {
	if pred == nil {
		count, err := r.Count(ctx, nil)
		return count > 0, err
	}
	matches, err := r.Find(ctx, pred)
	if err != nil {
		return false, err
	}
	return len(matches) > 0, nil
}

func (r *repo[T]) Count(ctx context.Context, pred storage.Predicate[T]) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if pred != nil {
		matches, err := r.Find(ctx, pred)
		if err != nil {
			return 0, err
		}
		return len(matches), nil
	}
	rows, err := r.uow.querier().Query(ctx, r.countSQL)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "count records")
	}
	defer rows.Close()
	count := 0
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, dErrors.Wrap(err, dErrors.CodeInternal, "scan count")
		}
	}
	if err := rows.Err(); err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "count records")
	}
	return count, nil
}
