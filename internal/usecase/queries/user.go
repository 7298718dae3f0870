package queries

import (
	"context"
	"time"

	"telescope-scheduler/internal/domain/appointment"
	"telescope-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

type AvailableTimeView struct {
	UserID    uuid.UUID
	Category  string
	Available time.Duration
	Unlimited bool
}

type UserQueries interface {
	AvailableTime(ctx context.Context, userID uuid.UUID) (*AvailableTimeView, error)
}

type userQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewUserQueries(uow shared.UnitOfWork) UserQueries {
	return &userQueriesImpl{uow: uow}
}

func (q *userQueriesImpl) AvailableTime(ctx context.Context, userID uuid.UUID) (*AvailableTimeView, error) {
	allotment, err := shared.AvailableTime(ctx, q.uow.CommandReads(), userID)
	if err != nil {
		return nil, err
	}
	return &AvailableTimeView{
		UserID:    userID,
		Category:  allotment.Category.String(),
		Available: allotment.Available,
		Unlimited: allotment.Available == appointment.Unlimited,
	}, nil
}
