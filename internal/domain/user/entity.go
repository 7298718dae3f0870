package user

import (
	"time"

	"github.com/google/uuid"
)

// Membership is an approved category of service together with the
// allotted time cap that comes with it.
type Membership struct {
	userID     uuid.UUID
	category   Role
	allotted   *time.Duration
	approvedAt time.Time
}

// NewMembership approves category for userID. A nil override keeps the
// category's default cap and unlimited forces a null cap.
func NewMembership(userID uuid.UUID, category Role, override *time.Duration, unlimited bool, now time.Time) (*Membership, error) {
	if !category.IsCategoryOfService() {
		return nil, ErrNotCategoryRole
	}

	allotted, err := DefaultAllottedTime(category)
	if err != nil {
		return nil, err
	}
	switch {
	case unlimited:
		allotted = nil
	case override != nil:
		if *override < 0 {
			return nil, ErrNegativeAllotment
		}
		v := *override
		allotted = &v
	}

	return &Membership{
		userID:     userID,
		category:   category,
		allotted:   allotted,
		approvedAt: now,
	}, nil
}

func (m *Membership) UserID() uuid.UUID            { return m.userID }
func (m *Membership) Category() Role               { return m.category }
func (m *Membership) AllottedTime() *time.Duration { return m.allotted }
func (m *Membership) ApprovedAt() time.Time        { return m.approvedAt }
func (m *Membership) IsUnlimited() bool            { return m.allotted == nil }
