package commands

import (
	"context"
	"log/slog"

	"porter/internal/core/domain/model/kernel"
	"porter/internal/core/ports"
)

// AdminUpdateDeliveryCommandHandler applies admin overrides. The override
// is not re-validated against the transition table; the audit log entry
// with the before and after state is the control instead.
type AdminUpdateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewAdminUpdateDeliveryCommandHandler creates a handler for admin overrides.
func NewAdminUpdateDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AdminUpdateDeliveryCommandHandler {
	return AdminUpdateDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle applies the override inside a transaction and writes the audit
// entry after commit.
func (h *AdminUpdateDeliveryCommandHandler) Handle(ctx context.Context, cmd AdminUpdateDeliveryCommand) error {
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

	fromStatus := aggregate.Status()
	fromPorter := porterIDString(aggregate.PorterID())

	if err = aggregate.Override(cmd.Status(), cmd.PorterID()); err != nil {
		return err
	}

	if err = uow.DeliveryRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Warn("admin override applied",
		"admin_id", cmd.Actor().ID().String(),
		"delivery_id", aggregate.ID().String(),
		"status_from", fromStatus.String(),
		"status_to", aggregate.Status().String(),
		"porter_from", fromPorter,
		"porter_to", porterIDString(aggregate.PorterID()))

	h.publish(ctx, aggregate.ID())
	return nil
}

func porterIDString(id *kernel.UUID) string {
	if id == nil {
		return "none"
	}
	return id.String()
}

func (h *AdminUpdateDeliveryCommandHandler) publish(ctx context.Context, deliveryID kernel.UUID) {
	if err := h.publisher.Publish(ctx, ports.EventDeliveryUpdated, deliveryID); err != nil {
		h.logger.Warn("failed to publish delivery event",
			"event", ports.EventDeliveryUpdated,
			"delivery_id", deliveryID.String(),
			"error", err)
	}
}
