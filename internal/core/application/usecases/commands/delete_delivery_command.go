package commands

import (
	"errors"

	"porter/internal/core/domain/model/delivery"
	"porter/internal/core/domain/model/kernel"
	"porter/internal/pkg/guard"
)

var ErrDeleteDeliveryCommandIsNotConstructed = errors.New(
	"DeleteDeliveryCommand must be created via NewDeleteDeliveryCommand constructor",
)

// DeleteDeliveryCommand represents a request to remove a cancelled
// delivery, issued by the booking user or an admin. Anything not cancelled
// stays on record.
type DeleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	actor      delivery.Actor

	guard guard.ConstructorGuard
}

// NewDeleteDeliveryCommand creates a delete command.
func NewDeleteDeliveryCommand(deliveryID kernel.UUID, actor delivery.Actor) (DeleteDeliveryCommand, error) {
	cmd := DeleteDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setActor(actor),
	); err != nil {
		return DeleteDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrDeleteDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery being removed.
func (c DeleteDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Actor returns who requested the removal.
func (c DeleteDeliveryCommand) Actor() delivery.Actor {
	return c.actor
}

func (c *DeleteDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}
	c.deliveryID = deliveryID
	return nil
}

func (c *DeleteDeliveryCommand) setActor(actor delivery.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.Role() == delivery.RolePorter {
		return ErrActionNotPermitted
	}
	c.actor = actor
	return nil
}
