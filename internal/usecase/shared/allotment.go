package shared

import (
	"context"
	"time"

	"telescope-scheduler/internal/domain/appointment"
	"telescope-scheduler/internal/domain/user"

	"github.com/google/uuid"
)

// Allotment is the tracker answer for one user. Category is nil when the
// user has no approved category of service.
type Allotment struct {
	Category  *user.Role
	Available time.Duration
}

// AvailableTime computes the user's remaining observation time. It fails
// with USER_ID for unknown users and CATEGORY_OF_SERVICE when there is no
// approved category or no cap record.
func AvailableTime(ctx context.Context, reads CommandReads, userID uuid.UUID) (*Allotment, error) {
	exists, err := reads.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, appointment.NewError(appointment.TagUserID, "User not found")
	}

	category, err := reads.ApprovedCategory(ctx, userID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, appointment.NewError(appointment.TagCategoryOfService, "User has no approved category of service")
	}

	capTime, found, err := reads.AllottedTimeCap(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, appointment.NewError(appointment.TagCategoryOfService, "User has no allotted time record")
	}

	scheduled, err := reads.ScheduledDuration(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Allotment{
		Category:  category,
		Available: appointment.AvailableTime(capTime, scheduled),
	}, nil
}
