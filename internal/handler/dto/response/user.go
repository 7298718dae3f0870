package response

import (
	"telescope-scheduler/internal/usecase/queries"
)

type AvailableTimeResponse struct {
	UserID    string `json:"user_id"`
	Category  string `json:"category"`
	Unlimited bool   `json:"unlimited"`
	// AvailableMs is omitted when the allotment is unlimited.
	AvailableMs *int64 `json:"available_ms,omitempty"`
}

func FromAvailableTime(v *queries.AvailableTimeView) *AvailableTimeResponse {
	res := &AvailableTimeResponse{
		UserID:    v.UserID.String(),
		Category:  v.Category,
		Unlimited: v.Unlimited,
	}
	if !v.Unlimited {
		ms := v.Available.Milliseconds()
		res.AvailableMs = &ms
	}
	return res
}
