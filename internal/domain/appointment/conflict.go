package appointment

import (
	"github.com/google/uuid"
)

// Booking is the slice of an appointment that conflict detection looks at.
type Booking struct {
	ID          uuid.UUID
	TelescopeID uuid.UUID
	Slot        TimeSlot
	Status      Status
	Priority    Priority
}

// Candidate describes the window being created or approved. ID is uuid.Nil
// for appointments that do not exist yet.
type Candidate struct {
	ID          uuid.UUID
	TelescopeID uuid.UUID
	Slot        TimeSlot
	Priority    Priority
}

// FindConflicts returns the active bookings on the candidate's telescope whose
// window overlaps the candidate. Priority does not relax the check: any two
// active appointments on one telescope must be disjoint.
func FindConflicts(c Candidate, existing []Booking) []Booking {
	var conflicts []Booking
	for _, b := range existing {
		if c.ID != uuid.Nil && b.ID == c.ID {
			continue
		}
		if b.TelescopeID != c.TelescopeID || !b.Status.IsActive() {
			continue
		}
		if c.Slot.Overlaps(b.Slot) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts
}
