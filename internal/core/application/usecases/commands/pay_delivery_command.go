package commands

import (
	"errors"

	"porter/internal/core/domain/model/delivery"
	"porter/internal/core/domain/model/kernel"
	"porter/internal/pkg/guard"
)

var ErrPayDeliveryCommandIsNotConstructed = errors.New(
	"PayDeliveryCommand must be created via NewPayDeliveryCommand constructor",
)

// PayDeliveryCommand represents a request to settle the fee of a delivered
// booking through the payment gateway.
type PayDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	actor      delivery.Actor

	guard guard.ConstructorGuard
}

// NewPayDeliveryCommand creates a payment command. Only the booking user
// or an admin can pay; the delivered-and-unpaid gate lives in the handler
// against the authoritative state.
func NewPayDeliveryCommand(deliveryID kernel.UUID, actor delivery.Actor) (PayDeliveryCommand, error) {
	cmd := PayDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setActor(actor),
	); err != nil {
		return PayDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PayDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrPayDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery being paid for.
func (c PayDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Actor returns who requested the payment.
func (c PayDeliveryCommand) Actor() delivery.Actor {
	return c.actor
}

func (c *PayDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}
	c.deliveryID = deliveryID
	return nil
}

func (c *PayDeliveryCommand) setActor(actor delivery.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.Role() == delivery.RolePorter {
		return ErrActionNotPermitted
	}
	c.actor = actor
	return nil
}
