package bootstrap

import (
	"log/slog"

	"telescope-scheduler/internal/handler/middleware"
	"telescope-scheduler/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
		func(l *middleware.Logger) *slog.Logger {
			return l.GetSlogLogger()
		},
	),
)

// NewLogger also installs the logger as the slog default so packages that
// log through slog directly share its level and format.
func NewLogger(cfg config.Config) *middleware.Logger {
	logger := middleware.NewLogger(cfg.Log)
	slog.SetDefault(logger.GetSlogLogger())
	return logger
}
