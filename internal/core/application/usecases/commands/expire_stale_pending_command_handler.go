package commands

import (
	"context"
	"log/slog"

	"porter/internal/core/domain/model/kernel"
	"porter/internal/core/ports"
)

// ExpireStalePendingCommandHandler cancels Pending deliveries nobody
// accepted long past their scheduled time, so the open pool does not fill
// up with dead bookings.
type ExpireStalePendingCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewExpireStalePendingCommandHandler creates a handler for the sweep.
func NewExpireStalePendingCommandHandler(
	uowFactory DeliveryUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ExpireStalePendingCommandHandler {
	return ExpireStalePendingCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle cancels every stale Pending delivery in one transaction. The
// candidate read locks the rows it returns and skips rows a porter is
// accepting right now, so an accept and the sweep serialize on the row:
// whichever commits first wins, the other sees the new state.
func (h *ExpireStalePendingCommandHandler) Handle(ctx context.Context, cmd ExpireStalePendingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stale, err := uow.DeliveryRepository().GetAllStalePending(ctx, cmd.OlderThanHours())
	if err != nil {
		return err
	}

	expired := make([]kernel.UUID, 0, len(stale))
	for _, aggregate := range stale {
		if err = aggregate.Cancel(); err != nil {
			h.logger.Warn("skipping stale delivery that moved on",
				"delivery_id", aggregate.ID().String(),
				"status", aggregate.Status().String(),
				"error", err)
			continue
		}

		if err = uow.DeliveryRepository().Update(ctx, aggregate); err != nil {
			return err
		}
		expired = append(expired, aggregate.ID())
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, id := range expired {
		if err = h.publisher.Publish(ctx, ports.EventDeliveryUpdated, id); err != nil {
			h.logger.Warn("failed to publish delivery event",
				"event", ports.EventDeliveryUpdated,
				"delivery_id", id.String(),
				"error", err)
		}
	}

	if len(expired) > 0 {
		h.logger.Info("expired stale pending deliveries", "count", len(expired))
	}
	return nil
}
