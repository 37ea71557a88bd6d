package commands

import (
	"context"
	"fmt"
	"log/slog"

	"porter/internal/core/domain/model/delivery"
	"porter/internal/core/domain/model/kernel"
	"porter/internal/core/ports"
	"porter/internal/pkg/errs"
)

// PayDeliveryCommandHandler settles the fee of a delivered booking.
//
// The charge happens inside the transaction window but before the state
// flips to Paid: if the gateway fails nothing is committed, and if the
// commit fails the charge is logged for reconciliation. A delivery that is
// already Paid, or not yet Delivered, yields a conflict so double submits
// never reach the gateway twice.
type PayDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	gateway    ports.PaymentGateway
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewPayDeliveryCommandHandler creates a handler for payment operations.
func NewPayDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	gateway ports.PaymentGateway,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) PayDeliveryCommandHandler {
	return PayDeliveryCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the payment command: locks the delivery, verifies it is
// Delivered and unpaid, charges through the gateway, and marks it Paid.
func (h *PayDeliveryCommandHandler) Handle(ctx context.Context, cmd PayDeliveryCommand) error {
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

	if aggregate.Status() != delivery.Delivered {
		return errs.NewConflictError("status", aggregate.Status().String())
	}
	if aggregate.PaymentStatus() == delivery.PaymentPaid {
		return errs.NewConflictError("paymentStatus", aggregate.PaymentStatus().String())
	}

	receipt, err := h.gateway.Charge(ctx, aggregate)
	if err != nil {
		return fmt.Errorf("payment gateway charge: %w", err)
	}

	if err = aggregate.MarkPaid(); err != nil {
		return err
	}

	if err = uow.DeliveryRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		h.logger.Error("charge succeeded but commit failed, needs reconciliation",
			"delivery_id", aggregate.ID().String(),
			"charge_id", receipt.ChargeID,
			"error", err)
		return err
	}

	h.logger.Info("delivery fee settled",
		"delivery_id", aggregate.ID().String(),
		"charge_id", receipt.ChargeID,
		"amount", aggregate.Amount())

	h.publish(ctx, aggregate.ID())
	return nil
}

func (h *PayDeliveryCommandHandler) publish(ctx context.Context, deliveryID kernel.UUID) {
	if err := h.publisher.Publish(ctx, ports.EventDeliveryUpdated, deliveryID); err != nil {
		h.logger.Warn("failed to publish delivery event",
			"event", ports.EventDeliveryUpdated,
			"delivery_id", deliveryID.String(),
			"error", err)
	}
}
