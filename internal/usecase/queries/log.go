package queries

import (
	"context"
	"time"

	"telescope-scheduler/internal/domain/appointment"

	"github.com/google/uuid"
)

type LogView struct {
	ID            uuid.UUID  `json:"id"`
	AffectedTable string     `json:"affected_table"`
	Action        string     `json:"action"`
	Event         string     `json:"event"`
	Success       bool       `json:"success"`
	RecordID      *uuid.UUID `json:"record_id,omitempty"`
	UserID        *uuid.UUID `json:"user_id,omitempty"`
	ErrorTags     []string   `json:"error_tags,omitempty"`
	Timestamp     time.Time  `json:"timestamp"`
}

type LogReadStore interface {
	// Find lists entries newest first.
	Find(ctx context.Context, after *Keyset, limit int32) ([]*LogView, error)
}

type LogQueries interface {
	List(ctx context.Context, cursor *Cursor, limit int) ([]*LogView, *Cursor, error)
}

type logQueriesImpl struct {
	repo LogReadStore
}

func NewLogQueries(repo LogReadStore) LogQueries {
	return &logQueriesImpl{repo: repo}
}

func (q *logQueriesImpl) List(ctx context.Context, cursor *Cursor, limit int) ([]*LogView, *Cursor, error) {
	limit = ValidateLimit(limit)

	var after *Keyset
	if cursor != nil && cursor.After != "" {
		t, id, err := DecodeAfterCursor(cursor.After)
		if err != nil {
			return nil, nil, appointment.NewError(appointment.TagPageParams, "Invalid cursor")
		}
		after = &Keyset{Time: t, ID: id}
	}

	rows, err := q.repo.Find(ctx, after, int32(limit+1))
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.Timestamp, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
