package appointment

import (
	"fmt"
	"time"

	"telescope-scheduler/internal/domain/user"

	"github.com/google/uuid"
)

// GuestAppointmentTimeCap bounds a single guest appointment regardless of the
// guest's cumulative allotment.
const GuestAppointmentTimeCap = 5 * time.Hour

type CreateSpec struct {
	UserID      uuid.UUID
	TelescopeID uuid.UUID
	Start       time.Time
	End         time.Time
	IsPublic    bool
	Priority    Priority
	Type        Type
	Payload     Payload
}

// Facts are the directory and tracker answers gathered for one request.
// Available is nil when the tracker could not compute a value for the user.
type Facts struct {
	TelescopeExists     bool
	UserExists          bool
	Category            *user.Role
	Available           *time.Duration
	CelestialBodyExists bool
	Existing            []Booking
}

// Validate collects every failure for a create (initial SCHEDULED) or
// request (initial REQUESTED) of spec. Conflicts only count on the
// immediate-schedule path; approval re-checks them for requests.
func Validate(spec CreateSpec, facts Facts, initial Status, now time.Time) Errors {
	var errs Errors

	if !facts.TelescopeExists {
		errs.Add(TagTelescopeID, "Telescope not found")
	}
	if !facts.UserExists {
		errs.Add(TagUserID, "User not found")
	}

	orderedSlot := spec.Start.Before(spec.End)
	if !orderedSlot {
		errs.Add(TagEndTime, "End time must be after start time")
	}
	if spec.Start.Before(now) {
		errs.Add(TagStartTime, "Start time must not be in the past")
	}

	if facts.UserExists {
		validateAllotment(&errs, spec, facts, orderedSlot)
	}

	if !spec.Priority.IsValid() {
		errs.Add(TagPriority, "Invalid priority")
	}
	switch {
	case !spec.Type.IsValid():
		errs.Add(TagType, "Invalid appointment type")
	case spec.Payload == nil || spec.Payload.Type() != spec.Type:
		errs.Add(TagType, fmt.Sprintf("Missing %s details", spec.Type))
	default:
		spec.Payload.validate(&errs, facts)
	}

	if initial == StatusScheduled && orderedSlot && facts.TelescopeExists {
		slot := TimeSlot{start: spec.Start, end: spec.End}
		conflicts := FindConflicts(Candidate{TelescopeID: spec.TelescopeID, Slot: slot, Priority: spec.Priority}, facts.Existing)
		if len(conflicts) > 0 {
			errs.Add(TagOverlap, "Appointment conflicts with an existing appointment on this telescope")
		}
	}

	return errs
}

func validateAllotment(errs *Errors, spec CreateSpec, facts Facts, orderedSlot bool) {
	if facts.Category == nil || facts.Available == nil {
		errs.Add(TagCategoryOfService, "User has no approved category of service")
		return
	}
	if !orderedSlot {
		return
	}
	duration := spec.End.Sub(spec.Start)
	if duration > *facts.Available {
		errs.Add(TagAllottedTime, "Appointment exceeds the remaining allotted time")
	}
	if *facts.Category == user.RoleGuest && duration > GuestAppointmentTimeCap {
		errs.Add(TagAllottedTime, fmt.Sprintf("Guest appointments cannot exceed %s", GuestAppointmentTimeCap))
	}
}
