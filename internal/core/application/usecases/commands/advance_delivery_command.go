package commands

import (
	"errors"

	"porter/internal/core/domain/model/delivery"
	"porter/internal/core/domain/model/kernel"
	"porter/internal/pkg/guard"
)

var ErrAdvanceDeliveryCommandIsNotConstructed = errors.New(
	"AdvanceDeliveryCommand must be created via NewAdvanceDeliveryCommand constructor",
)

// AdvanceDeliveryCommand represents a porter's request to move an assigned
// delivery one step forward (PickedUp, InTransit, Delivered). Like accept,
// it carries the device's current position for the tracking trail.
type AdvanceDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	actor      delivery.Actor
	next       delivery.Status
	location   kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewAdvanceDeliveryCommand creates an advance command. The actor must
// carry the porter role; a missing location fails with ErrLocationRequired.
// Whether next is actually reachable is decided against the authoritative
// state inside the handler's transaction.
func NewAdvanceDeliveryCommand(
	deliveryID kernel.UUID,
	actor delivery.Actor,
	next delivery.Status,
	location *kernel.GeoPoint,
) (AdvanceDeliveryCommand, error) {
	cmd := AdvanceDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setActor(actor),
		cmd.setNext(next),
		cmd.setLocation(location),
	); err != nil {
		return AdvanceDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery being advanced.
func (c AdvanceDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Actor returns the porter requesting the advance.
func (c AdvanceDeliveryCommand) Actor() delivery.Actor {
	return c.actor
}

// Next returns the requested status.
func (c AdvanceDeliveryCommand) Next() delivery.Status {
	return c.next
}

// Location returns the porter's position at the time of the request.
func (c AdvanceDeliveryCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c *AdvanceDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}
	c.deliveryID = deliveryID
	return nil
}

func (c *AdvanceDeliveryCommand) setActor(actor delivery.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.Role() != delivery.RolePorter {
		return ErrActionNotPermitted
	}
	c.actor = actor
	return nil
}

func (c *AdvanceDeliveryCommand) setNext(next delivery.Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	c.next = next
	return nil
}

func (c *AdvanceDeliveryCommand) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return ErrLocationRequired
	}
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = *location
	return nil
}
