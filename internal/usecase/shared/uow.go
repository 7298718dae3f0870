package shared

import (
	"context"
	"time"

	"telescope-scheduler/internal/domain/appointment"
	"telescope-scheduler/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Appointments() AppointmentRepository
	Memberships() MembershipRepository
	AuditLogs() AuditLogRepository
	Locks() LockRepository
	Reads() CommandReads
	DB() DBTX
}

// CommandReads are the directory and tracker lookups the write side needs.
type CommandReads interface {
	TelescopeExists(ctx context.Context, id uuid.UUID) (bool, error)
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
	CelestialBodyExists(ctx context.Context, id uuid.UUID) (bool, error)
	// ApprovedCategory returns nil when the user has no approved category of service.
	ApprovedCategory(ctx context.Context, userID uuid.UUID) (*user.Role, error)
	// AllottedTimeCap reports found=false when no cap record exists. A nil cap is unlimited.
	AllottedTimeCap(ctx context.Context, userID uuid.UUID) (capTime *time.Duration, found bool, err error)
	ScheduledDuration(ctx context.Context, userID uuid.UUID) (time.Duration, error)
	// ActiveBookings lists active appointments on the telescope overlapping slot.
	ActiveBookings(ctx context.Context, telescopeID uuid.UUID, slot appointment.TimeSlot) ([]appointment.Booking, error)
	// AppointmentForUpdate loads and row-locks the appointment when called inside a transaction.
	AppointmentForUpdate(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
	StaleRequests(ctx context.Context, startedBefore time.Time, limit int) ([]uuid.UUID, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, tx DBTX, a *appointment.Appointment) (uuid.UUID, error)
	Update(ctx context.Context, tx DBTX, a *appointment.Appointment) error
}

type MembershipRepository interface {
	Approve(ctx context.Context, tx DBTX, m *user.Membership) error
}

type AuditLogRepository interface {
	Create(ctx context.Context, tx DBTX, entry AuditEntry) error
}

// LockRepository serializes writers per user and per telescope for the
// lifetime of the current transaction.
type LockRepository interface {
	LockUser(ctx context.Context, tx DBTX, userID uuid.UUID) error
	LockTelescope(ctx context.Context, tx DBTX, telescopeID uuid.UUID) error
}
