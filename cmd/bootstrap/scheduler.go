package bootstrap

import (
	"context"
	"log/slog"

	"telescope-scheduler/internal/jobs"
	"telescope-scheduler/internal/pkg/clock"
	"telescope-scheduler/internal/pkg/config"
	"telescope-scheduler/internal/usecase/commands"
	"telescope-scheduler/internal/usecase/shared"

	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Provide(
		NewStaleRequestJob,
	),
	fx.Invoke(startScheduler),
)

func NewStaleRequestJob(cfg config.Config, uow shared.UnitOfWork, cmds commands.AppointmentCommands, clk clock.Clock) *jobs.StaleRequestJob {
	return jobs.NewStaleRequestJob(cfg.Scheduler, uow, cmds, clk)
}

func startScheduler(lc fx.Lifecycle, cfg config.Config, job *jobs.StaleRequestJob, logger *slog.Logger) {
	if !cfg.Scheduler.Enabled {
		logger.Info("stale request job disabled")
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return job.Start()
		},
		OnStop: func(ctx context.Context) error {
			return job.Stop(ctx)
		},
	})
}
