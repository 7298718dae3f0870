package appointment

import (
	"fmt"
	"time"

	"telescope-scheduler/internal/domain/user"
)

type Event string

const (
	EventApprove    Event = "approve"
	EventDeny       Event = "deny"
	EventStart      Event = "start"
	EventFinish     Event = "finish"
	EventCancel     Event = "cancel"
	EventMakePublic Event = "makePublic"
)

type transition struct {
	from []Status
	to   Status
}

var transitions = map[Event]transition{
	EventApprove: {from: []Status{StatusRequested}, to: StatusScheduled},
	EventDeny:    {from: []Status{StatusRequested}, to: StatusCanceled},
	EventStart:   {from: []Status{StatusScheduled}, to: StatusInProgress},
	EventFinish:  {from: []Status{StatusInProgress}, to: StatusCompleted},
	EventCancel:  {from: []Status{StatusRequested, StatusScheduled}, to: StatusCanceled},
}

// CanApply reports whether ev is legal from the current status.
func (a *Appointment) CanApply(ev Event) bool {
	if ev == EventMakePublic {
		return a.status == StatusScheduled && !a.isPublic
	}
	t, ok := transitions[ev]
	if !ok {
		return false
	}
	for _, from := range t.from {
		if a.status == from {
			return true
		}
	}
	return false
}

func (a *Appointment) apply(ev Event, now time.Time) error {
	if !a.CanApply(ev) {
		return illegalTransition(ev, a.status)
	}
	a.status = transitions[ev].to
	a.updatedAt = now
	return nil
}

func illegalTransition(ev Event, from Status) error {
	return NewError(TagStatus, fmt.Sprintf("Cannot %s an appointment that is %s", ev, from))
}

// Approve schedules a requested appointment. existing is re-checked for
// overlaps and any conflict refuses the transition with status unchanged.
func (a *Appointment) Approve(existing []Booking, now time.Time) error {
	if !a.CanApply(EventApprove) {
		return illegalTransition(EventApprove, a.status)
	}
	if conflicts := FindConflicts(a.candidate(), existing); len(conflicts) > 0 {
		return NewError(TagOverlap, "Appointment conflicts with an existing appointment on this telescope")
	}
	return a.apply(EventApprove, now)
}

func (a *Appointment) Deny(now time.Time) error {
	return a.apply(EventDeny, now)
}

func (a *Appointment) Start(now time.Time) error {
	return a.apply(EventStart, now)
}

func (a *Appointment) Finish(now time.Time) error {
	return a.apply(EventFinish, now)
}

func (a *Appointment) Cancel(actor user.Actor, now time.Time) error {
	if !actor.CanManage(a.userID) {
		return NewError(TagUserID, "Only the owner or an admin can cancel this appointment")
	}
	return a.apply(EventCancel, now)
}

// MakePublic flips visibility on a scheduled appointment. It refuses to run
// twice.
func (a *Appointment) MakePublic(actor user.Actor, now time.Time) error {
	if !actor.CanManage(a.userID) {
		return NewError(TagUserID, "Only the owner or an admin can publish this appointment")
	}
	if a.status != StatusScheduled {
		return illegalTransition(EventMakePublic, a.status)
	}
	if a.isPublic {
		return NewError(TagPublic, "Appointment is already public")
	}
	a.isPublic = true
	a.updatedAt = now
	return nil
}
