package readstore

import (
	"context"
	"time"

	"telescope-scheduler/internal/domain/user"
	"telescope-scheduler/internal/infra"
	"telescope-scheduler/internal/pkg/pgconv"
	"telescope-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	telescopeExistsSQL     = `SELECT EXISTS (SELECT 1 FROM telescopes WHERE id = $1)`
	userExistsSQL          = `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`
	celestialBodyExistsSQL = `SELECT EXISTS (SELECT 1 FROM celestial_bodies WHERE id = $1)`
)

// the most generous approved category wins if stale rows remain
const approvedCategorySQL = `
SELECT role
FROM user_roles
WHERE user_id = $1
  AND approved
  AND role IN ('GUEST', 'STUDENT', 'RESEARCHER', 'MEMBER')
ORDER BY CASE role
    WHEN 'MEMBER' THEN 0
    WHEN 'RESEARCHER' THEN 1
    WHEN 'STUDENT' THEN 2
    ELSE 3
END
LIMIT 1`

const allottedTimeCapSQL = `SELECT allotted_time_ms FROM allotted_time_caps WHERE user_id = $1`

const scheduledDurationSQL = `
SELECT COALESCE(SUM((EXTRACT(EPOCH FROM (end_time - start_time)) * 1000)::bigint), 0)
FROM appointments
WHERE user_id = $1 AND status = 'SCHEDULED'`

// DirectoryReadStore answers existence and allotment questions about users,
// telescopes and celestial bodies.
type DirectoryReadStore struct {
	db shared.DBTX
}

func NewDirectoryReadStore(db shared.DBTX) *DirectoryReadStore {
	return &DirectoryReadStore{db: db}
}

func (r *DirectoryReadStore) TelescopeExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, telescopeExistsSQL, id, "telescope")
}

func (r *DirectoryReadStore) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, userExistsSQL, id, "user")
}

func (r *DirectoryReadStore) CelestialBodyExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, celestialBodyExistsSQL, id, "celestial body")
}

func (r *DirectoryReadStore) exists(ctx context.Context, sql string, id uuid.UUID, what string) (bool, error) {
	var ok bool
	if err := r.db.QueryRow(ctx, sql, id).Scan(&ok); err != nil {
		return false, infra.WrapRepoErr("failed to check "+what+" existence", err)
	}
	return ok, nil
}

func (r *DirectoryReadStore) ApprovedCategory(ctx context.Context, userID uuid.UUID) (*user.Role, error) {
	var raw string
	err := r.db.QueryRow(ctx, approvedCategorySQL, userID).Scan(&raw)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to read category of service", err)
	}
	role, err := user.NewRole(raw)
	if err != nil {
		return nil, infra.WrapRepoErr("stored category of service is invalid", err, infra.KindDBFailure)
	}
	return &role, nil
}

func (r *DirectoryReadStore) AllottedTimeCap(ctx context.Context, userID uuid.UUID) (*time.Duration, bool, error) {
	var ms pgtype.Int8
	err := r.db.QueryRow(ctx, allottedTimeCapSQL, userID).Scan(&ms)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, false, nil
		}
		return nil, false, infra.WrapRepoErr("failed to read allotted time cap", err)
	}
	return pgconv.DurationPtrFromMillis(ms), true, nil
}

func (r *DirectoryReadStore) ScheduledDuration(ctx context.Context, userID uuid.UUID) (time.Duration, error) {
	var ms int64
	if err := r.db.QueryRow(ctx, scheduledDurationSQL, userID).Scan(&ms); err != nil {
		return 0, infra.WrapRepoErr("failed to sum scheduled time", err)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
