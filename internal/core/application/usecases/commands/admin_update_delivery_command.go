package commands

import (
	"errors"

	"porter/internal/core/domain/model/delivery"
	"porter/internal/core/domain/model/kernel"
	"porter/internal/pkg/guard"
)

var ErrAdminUpdateDeliveryCommandIsNotConstructed = errors.New(
	"AdminUpdateDeliveryCommand must be created via NewAdminUpdateDeliveryCommand constructor",
)

// AdminUpdateDeliveryCommand is the escape hatch: an admin sets a
// delivery's status directly, optionally reassigning or detaching the
// porter, bypassing the transition table. Every application of this
// command is written to the audit log.
type AdminUpdateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	actor      delivery.Actor
	status     delivery.Status
	porterID   *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAdminUpdateDeliveryCommand creates an override command. Only admins
// may construct it. porterID nil detaches the porter; the status/porter
// consistency rules still apply when the handler applies the override.
func NewAdminUpdateDeliveryCommand(
	deliveryID kernel.UUID,
	actor delivery.Actor,
	status delivery.Status,
	porterID *kernel.UUID,
) (AdminUpdateDeliveryCommand, error) {
	cmd := AdminUpdateDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setActor(actor),
		cmd.setStatus(status),
		cmd.setPorterID(porterID),
	); err != nil {
		return AdminUpdateDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdminUpdateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAdminUpdateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery being overridden.
func (c AdminUpdateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Actor returns the admin applying the override.
func (c AdminUpdateDeliveryCommand) Actor() delivery.Actor {
	return c.actor
}

// Status returns the status to force.
func (c AdminUpdateDeliveryCommand) Status() delivery.Status {
	return c.status
}

// PorterID returns the porter to attach, or nil to detach.
func (c AdminUpdateDeliveryCommand) PorterID() *kernel.UUID {
	return c.porterID
}

func (c *AdminUpdateDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}
	c.deliveryID = deliveryID
	return nil
}

func (c *AdminUpdateDeliveryCommand) setActor(actor delivery.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return ErrActionNotPermitted
	}
	c.actor = actor
	return nil
}

func (c *AdminUpdateDeliveryCommand) setStatus(status delivery.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}

func (c *AdminUpdateDeliveryCommand) setPorterID(porterID *kernel.UUID) error {
	if porterID != nil {
		if err := porterID.Validate(); err != nil {
			return err
		}
	}
	c.porterID = porterID
	return nil
}
