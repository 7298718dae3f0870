package jobs

import (
	"context"
	"log/slog"
	"time"

	"telescope-scheduler/internal/domain/appointment"
	"telescope-scheduler/internal/domain/user"
	"telescope-scheduler/internal/pkg/clock"
	"telescope-scheduler/internal/pkg/config"
	"telescope-scheduler/internal/usecase/commands"
	"telescope-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

const (
	staleBatchSize = 100
	runTimeout     = 30 * time.Second
)

// SystemActor is the identity maintenance jobs act under in the audit log.
var SystemActor = user.Actor{UserID: uuid.Nil, Role: user.RoleAdmin}

// StaleRequestJob cancels REQUESTED appointments whose start time has passed
// without an admin decision.
type StaleRequestJob struct {
	cron  *cron.Cron
	spec  string
	reads shared.CommandReads
	cmds  commands.AppointmentCommands
	clock clock.Clock
}

func NewStaleRequestJob(cfg config.SchedulerConfig, uow shared.UnitOfWork, cmds commands.AppointmentCommands, clk clock.Clock) *StaleRequestJob {
	spec := cfg.StaleRequestSpec
	if spec == "" {
		spec = "@every 1m"
	}
	return &StaleRequestJob{
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger{}),
			cron.SkipIfStillRunning(cronLogger{}),
		)),
		spec:  spec,
		reads: uow.CommandReads(),
		cmds:  cmds,
		clock: clk,
	}
}

func (j *StaleRequestJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, j.tick); err != nil {
		return err
	}
	j.cron.Start()
	slog.Info("stale request job started", "spec", j.spec)
	return nil
}

// Stop waits for a running pass to finish or ctx to expire.
func (j *StaleRequestJob) Stop(ctx context.Context) error {
	done := j.cron.Stop()
	select {
	case <-done.Done():
		slog.Info("stale request job stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (j *StaleRequestJob) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	if _, err := j.RunOnce(ctx); err != nil {
		slog.Error("stale request job failed", "error", err.Error())
	}
}

// RunOnce cancels one batch and reports how many were canceled. Appointments
// that changed state meanwhile are skipped.
func (j *StaleRequestJob) RunOnce(ctx context.Context) (int, error) {
	ids, err := j.reads.StaleRequests(ctx, j.clock.Now(), staleBatchSize)
	if err != nil {
		return 0, err
	}

	canceled := 0
	for _, id := range ids {
		err := j.cmds.Cancel(ctx, SystemActor, id)
		if err == nil {
			canceled++
			continue
		}
		if verr, ok := appointment.AsValidation(err); ok {
			slog.Info("stale request skipped", "appointment_id", id.String(), "tags", verr.Errors.Tags())
			continue
		}
		// infrastructure trouble affects the rest of the batch too
		return canceled, err
	}

	if canceled > 0 {
		slog.Info("stale requests canceled", "count", canceled)
	}
	return canceled, nil
}

// cronLogger routes cron's own messages to slog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	slog.Error("cron: "+msg, append(keysAndValues, "error", err.Error())...)
}
