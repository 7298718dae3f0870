package readstore

import (
	"context"
	"time"

	"telescope-scheduler/internal/domain/appointment"
	"telescope-scheduler/internal/infra"
	"telescope-scheduler/internal/infra/repository/converter"
	"telescope-scheduler/internal/pkg/pgconv"
	"telescope-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const activeBookingsSQL = `
SELECT id, telescope_id, start_time, end_time, status, priority
FROM appointments
WHERE telescope_id = $1
  AND status IN ('REQUESTED', 'SCHEDULED', 'IN_PROGRESS')
  AND tstzrange(start_time, end_time, '[)') && $2::tstzrange
ORDER BY start_time, id`

const appointmentForUpdateSQL = `
SELECT id, user_id, telescope_id, start_time, end_time, is_public,
       priority, status, type, payload, created_at, updated_at
FROM appointments
WHERE id = $1
FOR UPDATE`

const staleRequestsSQL = `
SELECT id
FROM appointments
WHERE status = 'REQUESTED' AND start_time < $1
ORDER BY start_time, id
LIMIT $2`

// TrackerReadStore reads the appointment tracker on behalf of the write side.
type TrackerReadStore struct {
	db shared.DBTX
}

func NewTrackerReadStore(db shared.DBTX) *TrackerReadStore {
	return &TrackerReadStore{db: db}
}

func (r *TrackerReadStore) ActiveBookings(ctx context.Context, telescopeID uuid.UUID, slot appointment.TimeSlot) ([]appointment.Booking, error) {
	rows, err := r.db.Query(ctx, activeBookingsSQL, telescopeID, slot.ToTstzrange())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active bookings", err)
	}
	defer rows.Close()

	var bookings []appointment.Booking
	for rows.Next() {
		var (
			b                appointment.Booking
			start, end       pgtype.Timestamptz
			status, priority string
		)
		if err := rows.Scan(&b.ID, &b.TelescopeID, &start, &end, &status, &priority); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		s, err := appointment.NewTimeSlot(pgconv.TimeFromPgtype(start).UTC(), pgconv.TimeFromPgtype(end).UTC())
		if err != nil {
			return nil, infra.WrapRepoErr("stored booking has an invalid window", err, infra.KindDBFailure)
		}
		b.Slot = s
		b.Status = appointment.Status(status)
		b.Priority = appointment.Priority(priority)
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return bookings, nil
}

// AppointmentForUpdate row-locks the appointment for the rest of the transaction.
func (r *TrackerReadStore) AppointmentForUpdate(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	var (
		row                  converter.AppointmentRow
		start, end           pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, appointmentForUpdateSQL, id).Scan(
		&row.ID, &row.UserID, &row.TelescopeID, &start, &end, &row.IsPublic,
		&row.Priority, &row.Status, &row.Type, &row.Payload, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load appointment", err)
	}
	row.StartTime = pgconv.TimeFromPgtype(start).UTC()
	row.EndTime = pgconv.TimeFromPgtype(end).UTC()
	row.CreatedAt = pgconv.TimeFromPgtype(createdAt).UTC()
	row.UpdatedAt = pgconv.TimeFromPgtype(updatedAt).UTC()

	a, err := converter.AppointmentFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode appointment", err, infra.KindDBFailure)
	}
	return a, nil
}

func (r *TrackerReadStore) StaleRequests(ctx context.Context, startedBefore time.Time, limit int) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, staleRequestsSQL, pgconv.TimeToPgtype(startedBefore), limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list stale requests", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan stale request", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate stale requests", err)
	}
	return ids, nil
}
