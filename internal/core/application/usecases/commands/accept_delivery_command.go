package commands

import (
	"errors"

	"porter/internal/core/domain/model/delivery"
	"porter/internal/core/domain/model/kernel"
	"porter/internal/pkg/guard"
)

var ErrAcceptDeliveryCommandIsNotConstructed = errors.New(
	"AcceptDeliveryCommand must be created via NewAcceptDeliveryCommand constructor",
)

// AcceptDeliveryCommand represents a porter's request to claim a pending
// delivery. The porter's current device position is mandatory: without it
// the trail would start blind, so the command refuses to exist.
type AcceptDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	actor      delivery.Actor
	location   kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewAcceptDeliveryCommand creates an accept command. The actor must carry
// the porter role and location must be non-nil; a missing location fails
// with ErrLocationRequired before anything else happens.
func NewAcceptDeliveryCommand(
	deliveryID kernel.UUID,
	actor delivery.Actor,
	location *kernel.GeoPoint,
) (AcceptDeliveryCommand, error) {
	cmd := AcceptDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setActor(actor, delivery.RolePorter),
		cmd.setLocation(location),
	); err != nil {
		return AcceptDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAcceptDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery being claimed.
func (c AcceptDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Actor returns the porter claiming the delivery.
func (c AcceptDeliveryCommand) Actor() delivery.Actor {
	return c.actor
}

// Location returns the porter's position at the time of the claim.
func (c AcceptDeliveryCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c *AcceptDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}
	c.deliveryID = deliveryID
	return nil
}

func (c *AcceptDeliveryCommand) setActor(actor delivery.Actor, want delivery.Role) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.Role() != want {
		return ErrActionNotPermitted
	}
	c.actor = actor
	return nil
}

func (c *AcceptDeliveryCommand) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return ErrLocationRequired
	}
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = *location
	return nil
}
