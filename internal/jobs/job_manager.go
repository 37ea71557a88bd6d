package jobs

import (
	"fmt"
	"log/slog"

	"porter/internal/core/application/usecases/commands"
	"porter/internal/core/application/usecases/queries"
	"porter/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	stalePendingJob    *StalePendingJob
	paymentReminderJob *PaymentReminderJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes use case handlers as dependencies to wire up the job execution.
func NewJobManager(
	expireStaleHandler commands.ExpireStalePendingCommandHandler,
	unpaidHandler queries.GetUnpaidDeliveriesQueryHandler,
	publisher ports.EventPublisher,
	staleThresholdHours int,
	reminderHours int,
	logger *slog.Logger,
) (*JobManager, error) {
	paymentReminderJob, err := NewPaymentReminderJob(unpaidHandler, publisher, reminderHours, logger)
	if err != nil {
		return nil, err
	}

	return &JobManager{
		stalePendingJob:    NewStalePendingJob(expireStaleHandler, staleThresholdHours, logger),
		paymentReminderJob: paymentReminderJob,
	}, nil
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.stalePendingJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale pending sweep: %w", err)
	}

	if err := jm.paymentReminderJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.stalePendingJob.Stop()
		return fmt.Errorf("failed to start payment reminder job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.paymentReminderJob.Stop()
	jm.stalePendingJob.Stop()
}
