package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"telescope-scheduler/internal/domain/appointment"
	"telescope-scheduler/internal/domain/user"
	"telescope-scheduler/internal/infra/readstore"
	"telescope-scheduler/internal/infra/repository"
	"telescope-scheduler/internal/pkg/errs"
	"telescope-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Read-only transaction for consistent multi-table snapshots
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db shared.DBTX) error) error {
	return u.runReadOnlyTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db shared.DBTX) error) error {
	return fn(ctx, u.pool)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return newCommandReads(u.pool)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{dbtx: pgxTx}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func (u *PostgresUoW) runReadOnlyTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, db shared.DBTX) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback read-only transaction", "error", rollbackErr.Error())
			}
		}
	}()

	if err := fn(ctx, pgxTx); err != nil {
		return err
	}

	return pgxTx.Commit(ctx)
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Fallback to a simple calculation if crypto/rand fails
		return 0
	}
	// Safe conversion: mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx shared.DBTX

	// Lazy-initialized repositories
	appointmentRepo shared.AppointmentRepository
	membershipRepo  shared.MembershipRepository
	auditLogRepo    shared.AuditLogRepository
	lockRepo        shared.LockRepository
	commandReads    shared.CommandReads
}

func (t *pgTx) DB() shared.DBTX {
	return t.dbtx
}

func (t *pgTx) Appointments() shared.AppointmentRepository {
	if t.appointmentRepo == nil {
		t.appointmentRepo = repository.NewAppointmentRepository()
	}
	return t.appointmentRepo
}

func (t *pgTx) Memberships() shared.MembershipRepository {
	if t.membershipRepo == nil {
		t.membershipRepo = repository.NewMembershipRepository()
	}
	return t.membershipRepo
}

func (t *pgTx) AuditLogs() shared.AuditLogRepository {
	if t.auditLogRepo == nil {
		t.auditLogRepo = repository.NewAuditLogRepository()
	}
	return t.auditLogRepo
}

func (t *pgTx) Locks() shared.LockRepository {
	if t.lockRepo == nil {
		t.lockRepo = repository.NewLockRepository()
	}
	return t.lockRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = newCommandReads(t.dbtx)
	}
	return t.commandReads
}

// commandReads runs its lookups on whichever DBTX it was built with, so reads
// made through a Tx see that transaction's locks and writes.
type commandReads struct {
	directory *readstore.DirectoryReadStore
	tracker   *readstore.TrackerReadStore
}

func newCommandReads(db shared.DBTX) *commandReads {
	return &commandReads{
		directory: readstore.NewDirectoryReadStore(db),
		tracker:   readstore.NewTrackerReadStore(db),
	}
}

func (r *commandReads) TelescopeExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.directory.TelescopeExists(ctx, id)
}

func (r *commandReads) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.directory.UserExists(ctx, id)
}

func (r *commandReads) CelestialBodyExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.directory.CelestialBodyExists(ctx, id)
}

func (r *commandReads) ApprovedCategory(ctx context.Context, userID uuid.UUID) (*user.Role, error) {
	return r.directory.ApprovedCategory(ctx, userID)
}

func (r *commandReads) AllottedTimeCap(ctx context.Context, userID uuid.UUID) (*time.Duration, bool, error) {
	return r.directory.AllottedTimeCap(ctx, userID)
}

func (r *commandReads) ScheduledDuration(ctx context.Context, userID uuid.UUID) (time.Duration, error) {
	return r.directory.ScheduledDuration(ctx, userID)
}

func (r *commandReads) ActiveBookings(ctx context.Context, telescopeID uuid.UUID, slot appointment.TimeSlot) ([]appointment.Booking, error) {
	return r.tracker.ActiveBookings(ctx, telescopeID, slot)
}

func (r *commandReads) AppointmentForUpdate(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	return r.tracker.AppointmentForUpdate(ctx, id)
}

func (r *commandReads) StaleRequests(ctx context.Context, startedBefore time.Time, limit int) ([]uuid.UUID, error) {
	return r.tracker.StaleRequests(ctx, startedBefore, limit)
}
