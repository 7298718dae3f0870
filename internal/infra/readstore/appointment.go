package readstore

import (
	"context"

	"telescope-scheduler/internal/infra"
	"telescope-scheduler/internal/pkg/pgconv"
	"telescope-scheduler/internal/usecase/queries"
	"telescope-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const appointmentViewSelect = `
SELECT a.id, a.user_id, u.first_name, u.last_name, a.telescope_id, t.name,
       a.start_time, a.end_time, a.is_public, a.priority, a.status, a.type,
       a.payload, a.created_at, a.updated_at
FROM appointments a
JOIN users u ON u.id = a.user_id
JOIN telescopes t ON t.id = a.telescope_id`

type AppointmentReadStore struct {
	db shared.DBTX
}

func NewAppointmentReadStore(db shared.DBTX) *AppointmentReadStore {
	return &AppointmentReadStore{db: db}
}

func (r *AppointmentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AppointmentView, error) {
	row := r.db.QueryRow(ctx, appointmentViewSelect+` WHERE a.id = $1`, id)
	v, err := scanAppointmentView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find appointment by ID", err)
	}
	return v, nil
}

func (r *AppointmentReadStore) Find(
	ctx context.Context,
	filter queries.Predicate,
	after *queries.Keyset,
	order queries.SortOrder,
	limit int32,
) ([]*queries.AppointmentView, error) {
	sql, args, err := buildFindSQL(filter, after, order, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build appointment filter", err, infra.KindDBFailure)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list appointments", err)
	}
	defer rows.Close()

	var result []*queries.AppointmentView
	for rows.Next() {
		v, err := scanAppointmentView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan appointment", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate appointments", err)
	}
	return result, nil
}

func buildFindSQL(filter queries.Predicate, after *queries.Keyset, order queries.SortOrder, limit int32) (string, []any, error) {
	var b sqlBuilder
	where, err := b.render(filter)
	if err != nil {
		return "", nil, err
	}
	keyset := b.keysetClause(after, order)
	lim := b.bind(limit)

	sql := appointmentViewSelect +
		" WHERE " + where +
		" AND " + keyset +
		" ORDER BY " + orderClause(order) +
		" LIMIT " + lim
	return sql, b.args, nil
}

func scanAppointmentView(row pgx.Row) (*queries.AppointmentView, error) {
	var (
		v                    queries.AppointmentView
		startTime, endTime   pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&v.ID, &v.UserID, &v.UserFirstName, &v.UserLastName, &v.TelescopeID, &v.TelescopeName,
		&startTime, &endTime, &v.IsPublic, &v.Priority, &v.Status, &v.Type,
		&v.Payload, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.StartTime = pgconv.TimeFromPgtype(startTime).UTC()
	v.EndTime = pgconv.TimeFromPgtype(endTime).UTC()
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt).UTC()
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt).UTC()
	return &v, nil
}

