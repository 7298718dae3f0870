package commands

import (
	"context"
	"time"

	"telescope-scheduler/internal/domain/appointment"
	"telescope-scheduler/internal/domain/user"
	"telescope-scheduler/internal/infra"
	"telescope-scheduler/internal/pkg/clock"
	"telescope-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateAppointmentRequest struct {
	UserID      uuid.UUID
	TelescopeID uuid.UUID
	Start       time.Time
	End         time.Time
	IsPublic    bool
	Priority    appointment.Priority
	Type        appointment.Type
	Payload     appointment.Payload
}

func (r CreateAppointmentRequest) toSpec() appointment.CreateSpec {
	return appointment.CreateSpec{
		UserID:      r.UserID,
		TelescopeID: r.TelescopeID,
		Start:       r.Start,
		End:         r.End,
		IsPublic:    r.IsPublic,
		Priority:    r.Priority,
		Type:        r.Type,
		Payload:     r.Payload,
	}
}

// AppointmentCommands is the write side of the scheduler. The caller is
// already authorized; actor identifies who is acting.
type AppointmentCommands interface {
	Create(ctx context.Context, actor user.Actor, req CreateAppointmentRequest) (uuid.UUID, error)
	Request(ctx context.Context, actor user.Actor, req CreateAppointmentRequest) (uuid.UUID, error)
	Approve(ctx context.Context, actor user.Actor, id uuid.UUID) error
	Deny(ctx context.Context, actor user.Actor, id uuid.UUID) error
	Start(ctx context.Context, actor user.Actor, id uuid.UUID) error
	Finish(ctx context.Context, actor user.Actor, id uuid.UUID) error
	Cancel(ctx context.Context, actor user.Actor, id uuid.UUID) error
	MakePublic(ctx context.Context, actor user.Actor, id uuid.UUID) error
}

type appointmentUseCaseImpl struct {
	uow   shared.UnitOfWork
	audit *auditTrail
	clock clock.Clock
}

func NewAppointmentUseCase(uow shared.UnitOfWork, auditRepo shared.AuditLogRepository, publisher shared.AuditPublisher, clk clock.Clock) AppointmentCommands {
	return &appointmentUseCaseImpl{
		uow:   uow,
		audit: newAuditTrail(uow, auditRepo, publisher, clk),
		clock: clk,
	}
}

func (uc *appointmentUseCaseImpl) Create(ctx context.Context, actor user.Actor, req CreateAppointmentRequest) (uuid.UUID, error) {
	return uc.schedule(ctx, actor, req, appointment.StatusScheduled)
}

func (uc *appointmentUseCaseImpl) Request(ctx context.Context, actor user.Actor, req CreateAppointmentRequest) (uuid.UUID, error) {
	return uc.schedule(ctx, actor, req, appointment.StatusRequested)
}

func (uc *appointmentUseCaseImpl) schedule(ctx context.Context, actor user.Actor, req CreateAppointmentRequest, initial appointment.Status) (uuid.UUID, error) {
	spec := req.toSpec()

	var createdID uuid.UUID
	var entry shared.AuditEntry
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Locks().LockUser(ctx, tx.DB(), spec.UserID); err != nil {
			return err
		}
		if err := tx.Locks().LockTelescope(ctx, tx.DB(), spec.TelescopeID); err != nil {
			return err
		}

		now := uc.clock.Now()
		facts, err := gatherFacts(ctx, tx.Reads(), spec, initial)
		if err != nil {
			return err
		}

		appt, err := appointment.NewAppointment(spec, facts, initial, now)
		if err != nil {
			return err
		}

		id, err := tx.Appointments().Create(ctx, tx.DB(), appt)
		if err != nil {
			return mapPersistErr(err)
		}
		createdID = id

		entry = uc.audit.success(shared.AuditTableAppointment, shared.AuditActionCreate, string(initial), id, actor)
		return uc.audit.write(ctx, tx, entry)
	})
	if err != nil {
		uc.audit.failure(ctx, shared.AuditTableAppointment, shared.AuditActionCreate, string(initial), uuid.Nil, actor, err)
		return uuid.Nil, err
	}

	uc.audit.publish(ctx, entry)
	return createdID, nil
}

// gatherFacts asks the directory and tracker everything the validator needs.
func gatherFacts(ctx context.Context, reads shared.CommandReads, spec appointment.CreateSpec, initial appointment.Status) (appointment.Facts, error) {
	var facts appointment.Facts
	var err error

	if facts.TelescopeExists, err = reads.TelescopeExists(ctx, spec.TelescopeID); err != nil {
		return facts, err
	}

	allotment, err := shared.AvailableTime(ctx, reads, spec.UserID)
	if verr, ok := appointment.AsValidation(err); ok {
		// user exists unless the tracker says otherwise
		facts.UserExists = !verr.Errors.Has(appointment.TagUserID)
	} else if err != nil {
		return facts, err
	} else {
		facts.UserExists = true
		facts.Category = allotment.Category
		available := allotment.Available
		facts.Available = &available
	}

	if bodyID, ok := appointment.CelestialBodyOf(spec.Payload); ok && bodyID != uuid.Nil {
		if facts.CelestialBodyExists, err = reads.CelestialBodyExists(ctx, bodyID); err != nil {
			return facts, err
		}
	}

	if initial == appointment.StatusScheduled && facts.TelescopeExists {
		if slot, serr := appointment.NewTimeSlot(spec.Start, spec.End); serr == nil {
			if facts.Existing, err = reads.ActiveBookings(ctx, spec.TelescopeID, slot); err != nil {
				return facts, err
			}
		}
	}

	return facts, nil
}

func (uc *appointmentUseCaseImpl) Approve(ctx context.Context, actor user.Actor, id uuid.UUID) error {
	return uc.transition(ctx, actor, id, appointment.EventApprove, func(ctx context.Context, tx shared.Tx, a *appointment.Appointment, now time.Time) error {
		if !a.CanApply(appointment.EventApprove) {
			return a.Approve(nil, now)
		}
		existing, err := tx.Reads().ActiveBookings(ctx, a.TelescopeID(), a.Slot())
		if err != nil {
			return err
		}
		return a.Approve(existing, now)
	})
}

func (uc *appointmentUseCaseImpl) Deny(ctx context.Context, actor user.Actor, id uuid.UUID) error {
	return uc.transition(ctx, actor, id, appointment.EventDeny, func(_ context.Context, _ shared.Tx, a *appointment.Appointment, now time.Time) error {
		return a.Deny(now)
	})
}

func (uc *appointmentUseCaseImpl) Start(ctx context.Context, actor user.Actor, id uuid.UUID) error {
	return uc.transition(ctx, actor, id, appointment.EventStart, func(_ context.Context, _ shared.Tx, a *appointment.Appointment, now time.Time) error {
		return a.Start(now)
	})
}

func (uc *appointmentUseCaseImpl) Finish(ctx context.Context, actor user.Actor, id uuid.UUID) error {
	return uc.transition(ctx, actor, id, appointment.EventFinish, func(_ context.Context, _ shared.Tx, a *appointment.Appointment, now time.Time) error {
		return a.Finish(now)
	})
}

func (uc *appointmentUseCaseImpl) Cancel(ctx context.Context, actor user.Actor, id uuid.UUID) error {
	return uc.transition(ctx, actor, id, appointment.EventCancel, func(_ context.Context, _ shared.Tx, a *appointment.Appointment, now time.Time) error {
		return a.Cancel(actor, now)
	})
}

func (uc *appointmentUseCaseImpl) MakePublic(ctx context.Context, actor user.Actor, id uuid.UUID) error {
	return uc.transition(ctx, actor, id, appointment.EventMakePublic, func(_ context.Context, _ shared.Tx, a *appointment.Appointment, now time.Time) error {
		return a.MakePublic(actor, now)
	})
}

type transitionFunc func(ctx context.Context, tx shared.Tx, a *appointment.Appointment, now time.Time) error

func (uc *appointmentUseCaseImpl) transition(ctx context.Context, actor user.Actor, id uuid.UUID, ev appointment.Event, apply transitionFunc) error {
	var entry shared.AuditEntry
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		a, err := tx.Reads().AppointmentForUpdate(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return appointment.NewError(appointment.TagID, "Appointment not found")
			}
			return err
		}

		if err := tx.Locks().LockTelescope(ctx, tx.DB(), a.TelescopeID()); err != nil {
			return err
		}

		if err := apply(ctx, tx, a, uc.clock.Now()); err != nil {
			return err
		}

		if err := tx.Appointments().Update(ctx, tx.DB(), a); err != nil {
			return mapPersistErr(err)
		}

		entry = uc.audit.success(shared.AuditTableAppointment, shared.AuditActionUpdate, string(ev), id, actor)
		return uc.audit.write(ctx, tx, entry)
	})
	if err != nil {
		uc.audit.failure(ctx, shared.AuditTableAppointment, shared.AuditActionUpdate, string(ev), id, actor, err)
		return err
	}

	uc.audit.publish(ctx, entry)
	return nil
}

// mapPersistErr turns an exclusion constraint violation into OVERLAP.
func mapPersistErr(err error) error {
	if infra.IsKind(err, infra.KindConflict) {
		return appointment.NewError(appointment.TagOverlap, "Appointment conflicts with an existing appointment on this telescope")
	}
	return err
}
