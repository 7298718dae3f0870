package repository

import (
	"context"

	"telescope-scheduler/internal/domain/appointment"
	"telescope-scheduler/internal/infra"
	"telescope-scheduler/internal/infra/repository/converter"
	"telescope-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

const insertAppointmentSQL = `
INSERT INTO appointments (
    id, user_id, telescope_id, start_time, end_time, is_public,
    priority, status, type, payload, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id`

const updateAppointmentSQL = `
UPDATE appointments
SET status = $2, is_public = $3, updated_at = $4
WHERE id = $1`

type AppointmentRepository struct{}

func NewAppointmentRepository() *AppointmentRepository {
	return &AppointmentRepository{}
}

func (r *AppointmentRepository) Create(ctx context.Context, tx shared.DBTX, a *appointment.Appointment) (uuid.UUID, error) {
	row, err := converter.AppointmentToInfra(a)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to encode appointment", err, infra.KindDBFailure)
	}

	var id uuid.UUID
	err = tx.QueryRow(ctx, insertAppointmentSQL,
		row.ID, row.UserID, row.TelescopeID, row.StartTime, row.EndTime, row.IsPublic,
		row.Priority, row.Status, row.Type, row.Payload, row.CreatedAt, row.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create appointment", err)
	}

	return id, nil
}

// Update persists the mutable part of an appointment: its status and visibility.
func (r *AppointmentRepository) Update(ctx context.Context, tx shared.DBTX, a *appointment.Appointment) error {
	tag, err := tx.Exec(ctx, updateAppointmentSQL, a.ID(), a.Status().String(), a.IsPublic(), a.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to update appointment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	return nil
}
