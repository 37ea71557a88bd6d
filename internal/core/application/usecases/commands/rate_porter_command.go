package commands

import (
	"errors"

	"porter/internal/core/domain/model/delivery"
	"porter/internal/core/domain/model/kernel"
	"porter/internal/pkg/guard"
)

var ErrRatePorterCommandIsNotConstructed = errors.New(
	"RatePorterCommand must be created via NewRatePorterCommand constructor",
)

// RatePorterCommand represents a user rating a porter after a delivery.
// The latest rating overwrites the previous one.
type RatePorterCommand struct { //nolint:recvcheck //using for validation
	porterID kernel.UUID
	actor    delivery.Actor
	rating   float64

	guard guard.ConstructorGuard
}

// NewRatePorterCommand creates a rating command. Porters cannot rate
// themselves or each other. The rating range is enforced by the aggregate.
func NewRatePorterCommand(porterID kernel.UUID, actor delivery.Actor, rating float64) (RatePorterCommand, error) {
	cmd := RatePorterCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPorterID(porterID),
		cmd.setActor(actor),
	); err != nil {
		return RatePorterCommand{}, err
	}

	cmd.rating = rating
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RatePorterCommand) Validate() error {
	return c.guard.Validate(ErrRatePorterCommandIsNotConstructed)
}

// PorterID returns the porter being rated.
func (c RatePorterCommand) PorterID() kernel.UUID {
	return c.porterID
}

// Actor returns who submitted the rating.
func (c RatePorterCommand) Actor() delivery.Actor {
	return c.actor
}

// Rating returns the submitted star rating.
func (c RatePorterCommand) Rating() float64 {
	return c.rating
}

func (c *RatePorterCommand) setPorterID(porterID kernel.UUID) error {
	if err := porterID.Validate(); err != nil {
		return err
	}
	c.porterID = porterID
	return nil
}

func (c *RatePorterCommand) setActor(actor delivery.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.Role() == delivery.RolePorter {
		return ErrActionNotPermitted
	}
	c.actor = actor
	return nil
}
