package commands

import (
	"context"
	"log/slog"

	"telescope-scheduler/internal/domain/appointment"
	"telescope-scheduler/internal/domain/user"
	"telescope-scheduler/internal/pkg/clock"
	"telescope-scheduler/internal/pkg/errs"
	"telescope-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

// auditTrail writes one log row per command and forwards it to the publisher.
// Success rows share the command's transaction; failure rows are written
// after rollback so they survive it.
type auditTrail struct {
	uow       shared.UnitOfWork
	repo      shared.AuditLogRepository
	publisher shared.AuditPublisher
	clock     clock.Clock
}

func newAuditTrail(uow shared.UnitOfWork, repo shared.AuditLogRepository, publisher shared.AuditPublisher, clk clock.Clock) *auditTrail {
	return &auditTrail{uow: uow, repo: repo, publisher: publisher, clock: clk}
}

func (a *auditTrail) success(table shared.AuditTable, action shared.AuditAction, event string, recordID uuid.UUID, actor user.Actor) shared.AuditEntry {
	entry := a.entry(table, action, event, recordID, actor)
	entry.Success = true
	return entry
}

func (a *auditTrail) entry(table shared.AuditTable, action shared.AuditAction, event string, recordID uuid.UUID, actor user.Actor) shared.AuditEntry {
	entry := shared.AuditEntry{
		ID:            uuid.New(),
		AffectedTable: table,
		Action:        action,
		Event:         event,
		Timestamp:     a.clock.Now(),
	}
	if recordID != uuid.Nil {
		id := recordID
		entry.RecordID = &id
	}
	if actor.UserID != uuid.Nil {
		id := actor.UserID
		entry.UserID = &id
	}
	return entry
}

func (a *auditTrail) write(ctx context.Context, tx shared.Tx, entry shared.AuditEntry) error {
	return tx.AuditLogs().Create(ctx, tx.DB(), entry)
}

func (a *auditTrail) failure(ctx context.Context, table shared.AuditTable, action shared.AuditAction, event string, recordID uuid.UUID, actor user.Actor, cause error) {
	entry := a.entry(table, action, event, recordID, actor)
	entry.ErrorTags = errorTags(cause)

	err := a.uow.WithDB(ctx, func(ctx context.Context, db shared.DBTX) error {
		return a.repo.Create(ctx, db, entry)
	})
	if err != nil {
		slog.Warn("failed to store audit failure entry", "event", event, "error", err.Error())
		return
	}
	a.publish(ctx, entry)
}

func (a *auditTrail) publish(ctx context.Context, entry shared.AuditEntry) {
	if a.publisher == nil {
		return
	}
	if err := a.publisher.Publish(ctx, entry); err != nil {
		slog.Warn("failed to publish audit entry",
			"entry_id", entry.ID.String(),
			"event", entry.Event,
			"error", err.Error())
	}
}

func errorTags(err error) []string {
	if errs.Is(err, errs.ErrUserNotFound) {
		return []string{string(appointment.TagUserID)}
	}
	verr, ok := appointment.AsValidation(err)
	if !ok {
		return []string{"INTERNAL"}
	}
	tags := verr.Errors.Tags()
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}
