package commands

import (
	"context"
	"log/slog"
	"time"

	"porter/internal/core/domain/model/kernel"
	"porter/internal/core/domain/model/tracking"
	"porter/internal/core/ports"
	"porter/internal/pkg/errs"
)

// AdvanceDeliveryCommandHandler moves an assigned delivery one step along
// the fulfillment chain on behalf of its porter.
//
// Double submits are harmless: if the requested status was already reached
// the handler reports a conflict instead of applying it twice, and the
// client reconciles by refreshing.
type AdvanceDeliveryCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewAdvanceDeliveryCommandHandler creates a handler for advance operations.
func NewAdvanceDeliveryCommandHandler(
	uowFactory FulfillmentUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AdvanceDeliveryCommandHandler {
	return AdvanceDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the advance command. Inside one transaction it locks
// the delivery row, verifies the acting porter holds the delivery, applies
// the transition, records the porter's position, and appends a tracking
// point.
func (h *AdvanceDeliveryCommandHandler) Handle(ctx context.Context, cmd AdvanceDeliveryCommand) error {
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

	if !aggregate.IsAssignedTo(cmd.Actor().ID()) {
		return ErrActionNotPermitted
	}

	if aggregate.Status() == cmd.Next() {
		return errs.NewConflictError("status", aggregate.Status().String())
	}

	if err = aggregate.Advance(cmd.Next()); err != nil {
		return err
	}

	if err = h.recordPosition(ctx, uow, cmd.Actor().ID(), cmd.Location()); err != nil {
		return err
	}

	point, err := tracking.NewTrackingPoint(
		kernel.NewUUID(), aggregate.ID(), cmd.Location(), time.Now().UTC())
	if err != nil {
		return err
	}
	if err = uow.TrackingRepository().Add(ctx, point); err != nil {
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

func (h *AdvanceDeliveryCommandHandler) recordPosition(
	ctx context.Context,
	uow FulfillmentUoW,
	porterID kernel.UUID,
	location kernel.GeoPoint,
) error {
	profile, err := uow.PorterRepository().Get(ctx, porterID)
	if err != nil {
		return err
	}

	if err = profile.ReportLocation(location, time.Now().UTC()); err != nil {
		return err
	}

	return uow.PorterRepository().Update(ctx, profile)
}

func (h *AdvanceDeliveryCommandHandler) publish(ctx context.Context, deliveryID kernel.UUID) {
	if err := h.publisher.Publish(ctx, ports.EventDeliveryUpdated, deliveryID); err != nil {
		h.logger.Warn("failed to publish delivery event",
			"event", ports.EventDeliveryUpdated,
			"delivery_id", deliveryID.String(),
			"error", err)
	}
}
