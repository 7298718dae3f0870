//go:build unit || e2e

package builder

import (
	"time"

	"telescope-scheduler/internal/domain/user"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Role      user.Role
	// Category is the approved category of service; empty means none.
	Category     user.Role
	AllottedTime *time.Duration
	Unlimited    bool
}

func NewUserBuilder() *UserBuilder {
	id := uuid.New()
	return &UserBuilder{
		ID:        id,
		FirstName: "Grote",
		LastName:  "Reber",
		Email:     "reber." + id.String()[:8] + "@example.com",
		Role:      user.RoleResearcher,
		Category:  user.RoleResearcher,
	}
}

func (b *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	if mutate != nil {
		mutate(b)
	}
	return b
}

func (b *UserBuilder) WithName(first, last string) *UserBuilder {
	b.FirstName = first
	b.LastName = last
	return b
}

func (b *UserBuilder) WithRole(role user.Role) *UserBuilder {
	b.Role = role
	return b
}

func (b *UserBuilder) WithCategory(category user.Role, allotted *time.Duration) *UserBuilder {
	b.Category = category
	b.AllottedTime = allotted
	return b
}

func (b *UserBuilder) Unbounded() *UserBuilder {
	b.Unlimited = true
	return b
}

func (b *UserBuilder) BuildActor() user.Actor {
	return user.Actor{UserID: b.ID, Role: b.Role}
}
