package commands

import (
	"context"
	"log/slog"

	"porter/internal/core/domain/model/kernel"
	"porter/internal/core/ports"
)

// CancelDeliveryCommandHandler cancels a pending delivery for its owner or
// an admin. Cancelling after a porter accepted, or cancelling twice, is
// rejected by the transition rules.
type CancelDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCancelDeliveryCommandHandler creates a handler for cancel operations.
func NewCancelDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CancelDeliveryCommandHandler {
	return CancelDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the cancel command against the locked, authoritative
// delivery state.
func (h *CancelDeliveryCommandHandler) Handle(ctx context.Context, cmd CancelDeliveryCommand) error {
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

	if err = aggregate.Cancel(); err != nil {
		return err
	}

	if err = uow.DeliveryRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publish(ctx, aggregate.ID())
	return nil
}

func (h *CancelDeliveryCommandHandler) publish(ctx context.Context, deliveryID kernel.UUID) {
	if err := h.publisher.Publish(ctx, ports.EventDeliveryUpdated, deliveryID); err != nil {
		h.logger.Warn("failed to publish delivery event",
			"event", ports.EventDeliveryUpdated,
			"delivery_id", deliveryID.String(),
			"error", err)
	}
}
