package repository

import (
	"context"

	"telescope-scheduler/internal/infra"
	"telescope-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

// Transaction-scoped advisory locks; released on commit or rollback.
const advisoryLockSQL = `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`

type LockRepository struct{}

func NewLockRepository() *LockRepository {
	return &LockRepository{}
}

func (r *LockRepository) LockUser(ctx context.Context, tx shared.DBTX, userID uuid.UUID) error {
	return r.lock(ctx, tx, UserLockKey(userID))
}

func (r *LockRepository) LockTelescope(ctx context.Context, tx shared.DBTX, telescopeID uuid.UUID) error {
	return r.lock(ctx, tx, TelescopeLockKey(telescopeID))
}

func (r *LockRepository) lock(ctx context.Context, tx shared.DBTX, key string) error {
	if _, err := tx.Exec(ctx, advisoryLockSQL, key); err != nil {
		return infra.WrapRepoErr("failed to acquire lock "+key, err)
	}
	return nil
}

func UserLockKey(id uuid.UUID) string {
	return "user:" + id.String()
}

func TelescopeLockKey(id uuid.UUID) string {
	return "telescope:" + id.String()
}
