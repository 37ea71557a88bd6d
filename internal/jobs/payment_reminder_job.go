package jobs

import (
	"context"
	"log/slog"
	"time"

	"porter/internal/core/application/usecases/queries"
	"porter/internal/core/domain/model/delivery"
	"porter/internal/core/domain/model/kernel"
	"porter/internal/core/ports"
	"porter/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// PaymentReminderJob re-announces overdue unpaid deliveries on the push
// channel so connected clients surface the outstanding fee again.
type PaymentReminderJob struct {
	unpaidHandler queries.GetUnpaidDeliveriesQueryHandler
	publisher     ports.EventPublisher
	reminderAge   time.Duration
	actor         delivery.Actor
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewPaymentReminderJob creates the reminder job. The threshold is how
// many hours a delivered fee may sit unpaid before the job starts nudging
// the client. It queries with a synthetic admin identity so the sweep
// sees every user's unpaid fees.
func NewPaymentReminderJob(
	unpaidHandler queries.GetUnpaidDeliveriesQueryHandler,
	publisher ports.EventPublisher,
	reminderHours int,
	logger *slog.Logger,
) (*PaymentReminderJob, error) {
	if reminderHours <= 0 {
		return nil, errs.NewValueIsInvalidError("reminderHours")
	}

	actor, err := delivery.NewActor(kernel.NewUUID(), delivery.RoleAdmin)
	if err != nil {
		return nil, err
	}

	return &PaymentReminderJob{
		unpaidHandler: unpaidHandler,
		publisher:     publisher,
		reminderAge:   time.Duration(reminderHours) * time.Hour,
		actor:         actor,
		cron:          cron.New(cron.WithSeconds()),
		logger:        logger.With("component", "payment_reminder_job"),
	}, nil
}

// Start schedules the reminder at half past every hour, offset from the
// stale-pending sweep so the two never contend.
func (j *PaymentReminderJob) Start() error {
	_, err := j.cron.AddFunc("0 30 * * * *", func() {
		j.run(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payment reminder job started (running hourly)")
	return nil
}

// Stop stops the reminder job.
func (j *PaymentReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Payment reminder job stopped")
}

func (j *PaymentReminderJob) run(ctx context.Context) {
	query, err := queries.NewGetUnpaidDeliveriesQuery(j.actor)
	if err != nil {
		j.logger.ErrorContext(ctx, "Payment reminder query misconfigured", "error", err)
		return
	}

	unpaid, err := j.unpaidHandler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Payment reminder query failed", "error", err)
		return
	}

	cutoff := time.Now().UTC().Add(-j.reminderAge)
	reminded := 0
	for _, d := range unpaid {
		if d.UpdatedAt.After(cutoff) {
			continue
		}

		if err := j.publisher.Publish(ctx, ports.EventDeliveryUpdated, d.ID); err != nil {
			j.logger.WarnContext(ctx, "failed to publish payment reminder",
				"delivery_id", d.ID.String(),
				"error", err)
			continue
		}
		reminded++
	}

	if reminded > 0 {
		j.logger.InfoContext(ctx, "Published payment reminders", "count", reminded)
	}
}
