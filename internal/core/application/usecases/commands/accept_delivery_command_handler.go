package commands

import (
	"context"
	"log/slog"
	"time"

	"porter/internal/core/domain/model/delivery"
	"porter/internal/core/domain/model/kernel"
	"porter/internal/core/domain/model/tracking"
	"porter/internal/core/ports"
	"porter/internal/pkg/errs"
)

// AcceptDeliveryCommandHandler claims a pending delivery for a porter.
//
// Two porters can race for the same booking; the row lock serializes them
// and the loser finds the delivery already Accepted. That is a conflict,
// not a failure: the losing client refreshes its pool and moves on.
type AcceptDeliveryCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewAcceptDeliveryCommandHandler creates a handler for accept operations.
func NewAcceptDeliveryCommandHandler(
	uowFactory FulfillmentUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AcceptDeliveryCommandHandler {
	return AcceptDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the accept command. Inside one transaction it locks the
// delivery row, verifies it is still Pending, assigns the porter, records
// the porter's position, and appends the first tracking point.
func (h *AcceptDeliveryCommandHandler) Handle(ctx context.Context, cmd AcceptDeliveryCommand) error {
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

	if aggregate.Status() != delivery.Pending {
		return errs.NewConflictError("status", aggregate.Status().String())
	}

	if err = aggregate.Accept(cmd.Actor().ID()); err != nil {
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

// recordPosition stores the porter's latest fix on the profile so the
// pool and live-map views stay current.
func (h *AcceptDeliveryCommandHandler) recordPosition(
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

func (h *AcceptDeliveryCommandHandler) publish(ctx context.Context, deliveryID kernel.UUID) {
	if err := h.publisher.Publish(ctx, ports.EventDeliveryUpdated, deliveryID); err != nil {
		h.logger.Warn("failed to publish delivery event",
			"event", ports.EventDeliveryUpdated,
			"delivery_id", deliveryID.String(),
			"error", err)
	}
}
