package repository

import (
	"context"

	"telescope-scheduler/internal/infra"
	"telescope-scheduler/internal/pkg/pgconv"
	"telescope-scheduler/internal/usecase/shared"
)

const insertLogSQL = `
INSERT INTO logs (id, affected_table, action, event, success, record_id, user_id, error_tags, timestamp)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

type AuditLogRepository struct{}

func NewAuditLogRepository() *AuditLogRepository {
	return &AuditLogRepository{}
}

func (r *AuditLogRepository) Create(ctx context.Context, tx shared.DBTX, entry shared.AuditEntry) error {
	tags := entry.ErrorTags
	if tags == nil {
		tags = []string{}
	}

	_, err := tx.Exec(ctx, insertLogSQL,
		entry.ID,
		string(entry.AffectedTable),
		string(entry.Action),
		entry.Event,
		entry.Success,
		pgconv.UUIDPtrToPgtype(entry.RecordID),
		pgconv.UUIDPtrToPgtype(entry.UserID),
		tags,
		pgconv.TimeToPgtype(entry.Timestamp),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to write audit log", err)
	}
	return nil
}
