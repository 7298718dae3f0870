package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidRole        = errors.New("invalid role")
	ErrNotCategoryRole    = errors.New("role is not a category of service")
	ErrNegativeAllotment  = errors.New("allotted time cannot be negative")
	ErrCategoryUnapproved = errors.New("category of service is not approved")
)

type Role string

const (
	RoleUser       Role = "USER"
	RoleGuest      Role = "GUEST"
	RoleStudent    Role = "STUDENT"
	RoleResearcher Role = "RESEARCHER"
	RoleMember     Role = "MEMBER"
	RoleAdmin      Role = "ADMIN"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleGuest, RoleStudent, RoleResearcher, RoleMember, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsCategoryOfService reports whether the role grants scheduling eligibility.
func (r Role) IsCategoryOfService() bool {
	switch r {
	case RoleGuest, RoleStudent, RoleResearcher, RoleMember:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// Default caps written when a category is approved. nil means unlimited.
var defaultAllottedTime = map[Role]*time.Duration{
	RoleGuest:      durationPtr(5 * time.Hour),
	RoleStudent:    durationPtr(25 * time.Hour),
	RoleResearcher: durationPtr(50 * time.Hour),
	RoleMember:     nil,
}

func DefaultAllottedTime(r Role) (*time.Duration, error) {
	if !r.IsCategoryOfService() {
		return nil, ErrNotCategoryRole
	}
	d := defaultAllottedTime[r]
	if d == nil {
		return nil, nil
	}
	v := *d
	return &v, nil
}

func durationPtr(d time.Duration) *time.Duration {
	return &d
}

// roleRank orders roles for RequireRoleAtLeast style checks.
var roleRank = map[Role]int{
	RoleUser:       0,
	RoleGuest:      1,
	RoleStudent:    2,
	RoleMember:     3,
	RoleResearcher: 4,
	RoleAdmin:      5,
}

// AtLeast reports whether r ranks at or above min in the role hierarchy.
func (r Role) AtLeast(min Role) bool {
	rank, ok := roleRank[r]
	if !ok {
		return false
	}
	return rank >= roleRank[min]
}

// Actor is the authenticated caller handed to the core.
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanManage reports whether the actor owns the record or is an admin.
func (a Actor) CanManage(ownerID uuid.UUID) bool {
	return a.IsAdmin() || a.UserID == ownerID
}
