package bootstrap

import (
	"context"
	"log/slog"

	"telescope-scheduler/internal/infra/broker"
	"telescope-scheduler/internal/pkg/config"
	"telescope-scheduler/internal/usecase/shared"

	"go.uber.org/fx"
)

var BrokerModule = fx.Module("broker",
	fx.Provide(
		NewAuditPublisher,
	),
)

// NewAuditPublisher prefers RabbitMQ and falls back to the structured log
// when the broker is disabled or cannot be reached.
func NewAuditPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) shared.AuditPublisher {
	if !cfg.Broker.Enabled {
		return broker.NewLogPublisher(logger)
	}

	pub, err := broker.NewRabbitMQPublisher(cfg.Broker)
	if err != nil {
		logger.Warn("audit broker unavailable, publishing to log", "queue", cfg.Broker.AuditQueue, "error", err.Error())
		return broker.NewLogPublisher(logger)
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})
	return pub
}
