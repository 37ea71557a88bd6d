package queries

import (
	"errors"

	"porter/internal/core/domain/model/delivery"
	"porter/internal/pkg/guard"
)

var (
	ErrGetUnpaidDeliveriesQueryIsNotConstructed = errors.New(
		"GetUnpaidDeliveriesQuery must be created via NewGetUnpaidDeliveriesQuery constructor",
	)

	// ErrUnpaidListHasNoPorterView rejects porter actors. Payment is
	// between the user and the platform.
	ErrUnpaidListHasNoPorterView = errors.New("unpaid deliveries have no porter view")
)

// GetUnpaidDeliveriesQuery retrieves DELIVERED deliveries whose fee has
// not settled. Users get their own unpaid deliveries, admins get all.
type GetUnpaidDeliveriesQuery struct {
	actor delivery.Actor

	guard guard.ConstructorGuard
}

// NewGetUnpaidDeliveriesQuery creates a query scoped to the given actor.
func NewGetUnpaidDeliveriesQuery(actor delivery.Actor) (GetUnpaidDeliveriesQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetUnpaidDeliveriesQuery{}, err
	}
	if actor.Role() == delivery.RolePorter {
		return GetUnpaidDeliveriesQuery{}, ErrUnpaidListHasNoPorterView
	}

	return GetUnpaidDeliveriesQuery{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUnpaidDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetUnpaidDeliveriesQueryIsNotConstructed)
}

func (q GetUnpaidDeliveriesQuery) Actor() delivery.Actor {
	return q.actor
}
