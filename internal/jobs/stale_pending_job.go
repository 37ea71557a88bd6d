package jobs

import (
	"context"
	"log/slog"

	"porter/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StalePendingJob sweeps the open pool on a schedule, cancelling Pending
// deliveries nobody accepted within the staleness threshold.
type StalePendingJob struct {
	handler        commands.ExpireStalePendingCommandHandler
	olderThanHours int
	cron           *cron.Cron
	logger         *slog.Logger
}

// NewStalePendingJob creates the sweep job. The threshold is how many
// hours a booking may sit unclaimed before the sweep cancels it.
func NewStalePendingJob(
	handler commands.ExpireStalePendingCommandHandler,
	olderThanHours int,
	logger *slog.Logger,
) *StalePendingJob {
	return &StalePendingJob{
		handler:        handler,
		olderThanHours: olderThanHours,
		cron:           cron.New(cron.WithSeconds()),
		logger:         logger.With("component", "stale_pending_job"),
	}
}

// Start schedules the sweep at the top of every hour.
func (j *StalePendingJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewExpireStalePendingCommand(j.olderThanHours)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale pending sweep misconfigured", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Stale pending sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale pending sweep started (running hourly)")
	return nil
}

// Stop stops the sweep job.
func (j *StalePendingJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale pending sweep stopped")
}
