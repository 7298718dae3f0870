package repository

import (
	"context"

	"telescope-scheduler/internal/domain/user"
	"telescope-scheduler/internal/infra"
	"telescope-scheduler/internal/pkg/pgconv"
	"telescope-scheduler/internal/usecase/shared"
)

// a user holds at most one approved category of service
const revokeOtherCategoriesSQL = `
UPDATE user_roles
SET approved = false, updated_at = $3
WHERE user_id = $1
  AND role <> $2
  AND role IN ('GUEST', 'STUDENT', 'RESEARCHER', 'MEMBER')
  AND approved`

const upsertCategorySQL = `
INSERT INTO user_roles (user_id, role, approved, created_at, updated_at)
VALUES ($1, $2, true, $3, $3)
ON CONFLICT (user_id, role) DO UPDATE
SET approved = true, updated_at = EXCLUDED.updated_at`

const upsertAllottedTimeCapSQL = `
INSERT INTO allotted_time_caps (user_id, allotted_time_ms, created_at, updated_at)
VALUES ($1, $2, $3, $3)
ON CONFLICT (user_id) DO UPDATE
SET allotted_time_ms = EXCLUDED.allotted_time_ms, updated_at = EXCLUDED.updated_at`

type MembershipRepository struct{}

func NewMembershipRepository() *MembershipRepository {
	return &MembershipRepository{}
}

func (r *MembershipRepository) Approve(ctx context.Context, tx shared.DBTX, m *user.Membership) error {
	category := m.Category().String()
	at := pgconv.TimeToPgtype(m.ApprovedAt())

	if _, err := tx.Exec(ctx, revokeOtherCategoriesSQL, m.UserID(), category, at); err != nil {
		return infra.WrapRepoErr("failed to revoke previous category of service", err)
	}
	if _, err := tx.Exec(ctx, upsertCategorySQL, m.UserID(), category, at); err != nil {
		return infra.WrapRepoErr("failed to approve category of service", err)
	}
	if _, err := tx.Exec(ctx, upsertAllottedTimeCapSQL, m.UserID(), pgconv.DurationPtrToMillis(m.AllottedTime()), at); err != nil {
		return infra.WrapRepoErr("failed to store allotted time cap", err)
	}
	return nil
}
