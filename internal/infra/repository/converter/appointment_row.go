package converter

import (
	"time"

	"telescope-scheduler/internal/domain/appointment"

	"github.com/google/uuid"
)

// AppointmentRow mirrors the appointments table.
type AppointmentRow struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	TelescopeID uuid.UUID
	StartTime   time.Time
	EndTime     time.Time
	IsPublic    bool
	Priority    string
	Status      string
	Type        string
	Payload     []byte
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func AppointmentToInfra(a *appointment.Appointment) (AppointmentRow, error) {
	payload, err := EncodePayload(a.Payload())
	if err != nil {
		return AppointmentRow{}, err
	}
	return AppointmentRow{
		ID:          a.ID(),
		UserID:      a.UserID(),
		TelescopeID: a.TelescopeID(),
		StartTime:   a.Slot().Start(),
		EndTime:     a.Slot().End(),
		IsPublic:    a.IsPublic(),
		Priority:    a.Priority().String(),
		Status:      a.Status().String(),
		Type:        a.Type().String(),
		Payload:     payload,
		CreatedAt:   a.CreatedAt(),
		UpdatedAt:   a.UpdatedAt(),
	}, nil
}

func AppointmentFromInfra(row AppointmentRow) (*appointment.Appointment, error) {
	slot, err := appointment.NewTimeSlot(row.StartTime, row.EndTime)
	if err != nil {
		return nil, err
	}
	typ := appointment.Type(row.Type)
	payload, err := DecodePayload(typ, row.Payload)
	if err != nil {
		return nil, err
	}
	return appointment.ReconstructAppointment(
		row.ID, row.UserID, row.TelescopeID,
		slot,
		row.IsPublic,
		appointment.Priority(row.Priority),
		appointment.Status(row.Status),
		typ,
		payload,
		row.CreatedAt, row.UpdatedAt,
	), nil
}
