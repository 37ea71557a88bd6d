package commands

import (
	"errors"

	"porter/internal/core/domain/model/delivery"
	"porter/internal/core/domain/model/kernel"
	"porter/internal/pkg/guard"
)

var ErrCancelDeliveryCommandIsNotConstructed = errors.New(
	"CancelDeliveryCommand must be created via NewCancelDeliveryCommand constructor",
)

// CancelDeliveryCommand represents a request to cancel a pending delivery,
// issued by the booking user or an admin.
type CancelDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	actor      delivery.Actor

	guard guard.ConstructorGuard
}

// NewCancelDeliveryCommand creates a cancel command. Porters cannot cancel;
// ownership of the delivery is checked against the authoritative state in
// the handler.
func NewCancelDeliveryCommand(deliveryID kernel.UUID, actor delivery.Actor) (CancelDeliveryCommand, error) {
	cmd := CancelDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setActor(actor),
	); err != nil {
		return CancelDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCancelDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery being cancelled.
func (c CancelDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Actor returns who requested the cancellation.
func (c CancelDeliveryCommand) Actor() delivery.Actor {
	return c.actor
}

func (c *CancelDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}
	c.deliveryID = deliveryID
	return nil
}

func (c *CancelDeliveryCommand) setActor(actor delivery.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.Role() == delivery.RolePorter {
		return ErrActionNotPermitted
	}
	c.actor = actor
	return nil
}
