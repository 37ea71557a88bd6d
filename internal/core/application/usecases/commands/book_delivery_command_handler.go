package commands

import (
	"context"
	"log/slog"

	"porter/internal/core/domain/model/delivery"
	"porter/internal/core/ports"
)

// Fare schedule: flat base fee per package size class plus a per-kilometer
// rate on the great-circle route distance.
const perKmRate = 12.0

func baseFares() map[delivery.PackageType]float64 {
	return map[delivery.PackageType]float64{
		delivery.PackageSmall:  40.0,
		delivery.PackageMedium: 70.0,
		delivery.PackageLarge:  150.0,
	}
}

// BookDeliveryCommandHandler creates new deliveries in Pending status.
// The fee is quoted here, from the fare schedule and the route distance,
// so the stored amount never depends on what the client claims.
type BookDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewBookDeliveryCommandHandler creates a handler for booking operations.
func NewBookDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) BookDeliveryCommandHandler {
	return BookDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the booking command: quotes the fee, creates the
// aggregate, persists it, and announces the new booking to the open pool.
func (h *BookDeliveryCommandHandler) Handle(ctx context.Context, cmd BookDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	distance, err := cmd.Pickup().DistanceKm(cmd.Dropoff())
	if err != nil {
		return err
	}
	amount := baseFares()[cmd.PackageType()] + perKmRate*distance

	aggregate, err := delivery.NewDelivery(
		cmd.DeliveryID(),
		cmd.UserID(),
		cmd.Pickup(),
		cmd.Dropoff(),
		cmd.PackageType(),
		cmd.WeightKg(),
		cmd.Description(),
		cmd.ScheduledTime(),
		amount,
		cmd.Prepaid(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DeliveryRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publish(ctx, aggregate)
	return nil
}

// publish announces the booking after commit. Best effort: a push failure
// only delays client refresh, it never fails the booking.
func (h *BookDeliveryCommandHandler) publish(ctx context.Context, aggregate *delivery.Delivery) {
	if err := h.publisher.Publish(ctx, ports.EventNewDelivery, aggregate.ID()); err != nil {
		h.logger.Warn("failed to publish delivery event",
			"event", ports.EventNewDelivery,
			"delivery_id", aggregate.ID().String(),
			"error", err)
	}
}
