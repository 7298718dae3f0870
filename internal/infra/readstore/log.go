package readstore

import (
	"context"

	"telescope-scheduler/internal/infra"
	"telescope-scheduler/internal/pkg/pgconv"
	"telescope-scheduler/internal/usecase/queries"
	"telescope-scheduler/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgtype"
)

const listLogsFirstPageSQL = `
SELECT id, affected_table, action, event, success, record_id, user_id, error_tags, timestamp
FROM logs
ORDER BY timestamp DESC, id DESC
LIMIT $1`

const listLogsKeysetSQL = `
SELECT id, affected_table, action, event, success, record_id, user_id, error_tags, timestamp
FROM logs
WHERE (timestamp, id) < ($1, $2)
ORDER BY timestamp DESC, id DESC
LIMIT $3`

type LogReadStore struct {
	db shared.DBTX
}

func NewLogReadStore(db shared.DBTX) *LogReadStore {
	return &LogReadStore{db: db}
}

func (r *LogReadStore) Find(ctx context.Context, after *queries.Keyset, limit int32) ([]*queries.LogView, error) {
	var (
		sql  = listLogsFirstPageSQL
		args = []any{limit}
	)
	if after != nil {
		sql = listLogsKeysetSQL
		args = []any{pgconv.TimeToPgtype(after.Time), after.ID, limit}
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list audit logs", err)
	}
	defer rows.Close()

	var result []*queries.LogView
	for rows.Next() {
		var (
			v                queries.LogView
			recordID, userID pgtype.UUID
			ts               pgtype.Timestamptz
		)
		if err := rows.Scan(&v.ID, &v.AffectedTable, &v.Action, &v.Event, &v.Success,
			&recordID, &userID, &v.ErrorTags, &ts); err != nil {
			return nil, infra.WrapRepoErr("failed to scan audit log", err)
		}
		v.RecordID = pgconv.UUIDPtrFromPgtype(recordID)
		v.UserID = pgconv.UUIDPtrFromPgtype(userID)
		v.Timestamp = pgconv.TimeFromPgtype(ts).UTC()
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate audit logs", err)
	}
	return result, nil
}
