package broker

import (
	"context"
	"log/slog"

	"telescope-scheduler/internal/usecase/shared"
)

// LogPublisher writes audit entries to the structured log. It stands in for
// the broker when none is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, entry shared.AuditEntry) error {
	attrs := []any{
		slog.String("id", entry.ID.String()),
		slog.String("table", string(entry.AffectedTable)),
		slog.String("action", string(entry.Action)),
		slog.String("event", entry.Event),
		slog.Bool("success", entry.Success),
	}
	if entry.RecordID != nil {
		attrs = append(attrs, slog.String("record_id", entry.RecordID.String()))
	}
	if entry.UserID != nil {
		attrs = append(attrs, slog.String("user_id", entry.UserID.String()))
	}
	if len(entry.ErrorTags) > 0 {
		attrs = append(attrs, slog.Any("error_tags", entry.ErrorTags))
	}
	p.logger.InfoContext(ctx, "audit", attrs...)
	return nil
}
