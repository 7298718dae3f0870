package request

import (
	"time"

	"telescope-scheduler/internal/domain/user"
	"telescope-scheduler/internal/usecase/commands"
)

type ApproveCategoryRequest struct {
	Category string `json:"category" binding:"required,category"`
	// AllottedTimeMinutes overrides the category default cap.
	AllottedTimeMinutes *int64 `json:"allotted_time_minutes,omitempty" binding:"omitempty,min=0"`
	Unlimited           bool   `json:"unlimited"`
}

func (r ApproveCategoryRequest) ToCommand() commands.ApproveCategoryRequest {
	cmd := commands.ApproveCategoryRequest{
		Category:  user.Role(r.Category),
		Unlimited: r.Unlimited,
	}
	if r.AllottedTimeMinutes != nil {
		d := time.Duration(*r.AllottedTimeMinutes) * time.Minute
		cmd.AllottedTime = &d
	}
	return cmd
}
