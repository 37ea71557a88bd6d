package commands

import (
	"context"
	"log/slog"

	"porter/internal/core/domain/model/kernel"
	"porter/internal/core/ports"
	"porter/internal/pkg/errs"
)

// DeleteDeliveryCommandHandler removes a cancelled delivery. Deletion is
// the only destructive operation in the lifecycle and is gated twice: on
// ownership and on the delivery being Cancelled.
type DeleteDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewDeleteDeliveryCommandHandler creates a handler for delete operations.
func NewDeleteDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) DeleteDeliveryCommandHandler {
	return DeleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the delete command. A delivery that is not Cancelled
// yields a conflict error so a stale client cannot destroy live state.
func (h *DeleteDeliveryCommandHandler) Handle(ctx context.Context, cmd DeleteDeliveryCommand) error {
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

	aggregate, err := uow.DeliveryRepository().GetForUpdate(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	if !cmd.Actor().IsAdmin() && !aggregate.IsOwnedBy(cmd.Actor().ID()) {
		return ErrActionNotPermitted
	}

	if !aggregate.CanDelete() {
		return errs.NewConflictError("status", aggregate.Status().String())
	}

	if err = uow.DeliveryRepository().Delete(ctx, aggregate.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publish(ctx, aggregate.ID())
	return nil
}

func (h *DeleteDeliveryCommandHandler) publish(ctx context.Context, deliveryID kernel.UUID) {
	if err := h.publisher.Publish(ctx, ports.EventDeliveryUpdated, deliveryID); err != nil {
		h.logger.Warn("failed to publish delivery event",
			"event", ports.EventDeliveryUpdated,
			"delivery_id", deliveryID.String(),
			"error", err)
	}
}
