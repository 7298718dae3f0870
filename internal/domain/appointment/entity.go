package appointment

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	id          uuid.UUID
	userID      uuid.UUID
	telescopeID uuid.UUID
	slot        TimeSlot
	isPublic    bool
	priority    Priority
	status      Status
	typ         Type
	payload     Payload
	createdAt   time.Time
	updatedAt   time.Time
}

// NewAppointment validates spec against facts and builds an appointment in
// the initial status of its creation path. The returned error is a
// *ValidationError carrying every failure.
func NewAppointment(spec CreateSpec, facts Facts, initial Status, now time.Time) (*Appointment, error) {
	if initial != StatusScheduled && initial != StatusRequested {
		return nil, NewError(TagStatus, "Appointments start as REQUESTED or SCHEDULED")
	}
	if errs := Validate(spec, facts, initial, now); !errs.IsEmpty() {
		return nil, errs.Err()
	}

	return &Appointment{
		id:          uuid.New(),
		userID:      spec.UserID,
		telescopeID: spec.TelescopeID,
		slot:        TimeSlot{start: spec.Start, end: spec.End},
		isPublic:    spec.IsPublic,
		priority:    spec.Priority,
		status:      initial,
		typ:         spec.Type,
		payload:     spec.Payload,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructAppointment(
	id, userID, telescopeID uuid.UUID,
	slot TimeSlot,
	isPublic bool,
	priority Priority,
	status Status,
	typ Type,
	payload Payload,
	createdAt, updatedAt time.Time,
) *Appointment {
	return &Appointment{
		id:          id,
		userID:      userID,
		telescopeID: telescopeID,
		slot:        slot,
		isPublic:    isPublic,
		priority:    priority,
		status:      status,
		typ:         typ,
		payload:     payload,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (a *Appointment) ID() uuid.UUID          { return a.id }
func (a *Appointment) UserID() uuid.UUID      { return a.userID }
func (a *Appointment) TelescopeID() uuid.UUID { return a.telescopeID }
func (a *Appointment) Slot() TimeSlot         { return a.slot }
func (a *Appointment) IsPublic() bool         { return a.isPublic }
func (a *Appointment) Priority() Priority     { return a.priority }
func (a *Appointment) Status() Status         { return a.status }
func (a *Appointment) Type() Type             { return a.typ }
func (a *Appointment) Payload() Payload       { return a.payload }
func (a *Appointment) CreatedAt() time.Time   { return a.createdAt }
func (a *Appointment) UpdatedAt() time.Time   { return a.updatedAt }

func (a *Appointment) Booking() Booking {
	return Booking{
		ID:          a.id,
		TelescopeID: a.telescopeID,
		Slot:        a.slot,
		Status:      a.status,
		Priority:    a.priority,
	}
}

func (a *Appointment) candidate() Candidate {
	return Candidate{
		ID:          a.id,
		TelescopeID: a.telescopeID,
		Slot:        a.slot,
		Priority:    a.priority,
	}
}
