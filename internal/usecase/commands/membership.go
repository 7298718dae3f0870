package commands

import (
	"context"
	"time"

	"telescope-scheduler/internal/domain/user"
	"telescope-scheduler/internal/pkg/clock"
	"telescope-scheduler/internal/pkg/errs"
	"telescope-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidCategory = errs.New("invalid category of service")

type ApproveCategoryRequest struct {
	Category user.Role
	// AllottedTime overrides the category default when set.
	AllottedTime *time.Duration
	Unlimited    bool
}

type MembershipCommands interface {
	ApproveCategory(ctx context.Context, actor user.Actor, userID uuid.UUID, req ApproveCategoryRequest) error
}

type membershipUseCaseImpl struct {
	uow   shared.UnitOfWork
	audit *auditTrail
	clock clock.Clock
}

func NewMembershipUseCase(uow shared.UnitOfWork, auditRepo shared.AuditLogRepository, publisher shared.AuditPublisher, clk clock.Clock) MembershipCommands {
	return &membershipUseCaseImpl{
		uow:   uow,
		audit: newAuditTrail(uow, auditRepo, publisher, clk),
		clock: clk,
	}
}

// ApproveCategory grants a category of service and writes its allotted time cap.
func (uc *membershipUseCaseImpl) ApproveCategory(ctx context.Context, actor user.Actor, userID uuid.UUID, req ApproveCategoryRequest) error {
	m, err := user.NewMembership(userID, req.Category, req.AllottedTime, req.Unlimited, uc.clock.Now())
	if err != nil {
		return errs.Mark(err, ErrInvalidCategory)
	}

	const event = "approveCategory"
	var entry shared.AuditEntry
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Locks().LockUser(ctx, tx.DB(), userID); err != nil {
			return err
		}
		exists, err := tx.Reads().UserExists(ctx, userID)
		if err != nil {
			return err
		}
		if !exists {
			return errs.ErrUserNotFound
		}
		if err := tx.Memberships().Approve(ctx, tx.DB(), m); err != nil {
			return err
		}

		entry = uc.audit.success(shared.AuditTableUser, shared.AuditActionUpdate, event, userID, actor)
		return uc.audit.write(ctx, tx, entry)
	})
	if err != nil {
		uc.audit.failure(ctx, shared.AuditTableUser, shared.AuditActionUpdate, event, userID, actor, err)
		return err
	}

	uc.audit.publish(ctx, entry)
	return nil
}
