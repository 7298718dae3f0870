package appointment

import (
	"math"
	"time"
)

// Unlimited is returned for users whose cap record holds no ceiling.
const Unlimited = time.Duration(math.MaxInt64)

// AvailableTime derives the remaining allotment from a cap and the summed
// duration of the user's scheduled appointments. A nil cap is unlimited.
func AvailableTime(capTime *time.Duration, scheduled time.Duration) time.Duration {
	if capTime == nil {
		return Unlimited
	}
	remaining := *capTime - scheduled
	if remaining < 0 {
		return 0
	}
	return remaining
}
