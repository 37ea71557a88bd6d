package queries

import (
	"errors"

	"porter/internal/core/domain/model/delivery"
	"porter/internal/pkg/guard"
)

var (
	ErrGetAvailableDeliveriesQueryIsNotConstructed = errors.New(
		"GetAvailableDeliveriesQuery must be created via NewGetAvailableDeliveriesQuery constructor",
	)

	// ErrAvailableListIsPorterOnly rejects actors without a porter role.
	// The open pool is a work surface, not a customer view.
	ErrAvailableListIsPorterOnly = errors.New("available deliveries are visible to porters only")
)

// GetAvailableDeliveriesQuery retrieves the open pool of unassigned
// PENDING deliveries a porter may accept. Ownership does not matter here,
// any porter sees the whole pool.
type GetAvailableDeliveriesQuery struct {
	actor delivery.Actor

	guard guard.ConstructorGuard
}

// NewGetAvailableDeliveriesQuery creates a query for the given porter.
func NewGetAvailableDeliveriesQuery(actor delivery.Actor) (GetAvailableDeliveriesQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetAvailableDeliveriesQuery{}, err
	}
	if actor.Role() != delivery.RolePorter {
		return GetAvailableDeliveriesQuery{}, ErrAvailableListIsPorterOnly
	}

	return GetAvailableDeliveriesQuery{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableDeliveriesQueryIsNotConstructed)
}

func (q GetAvailableDeliveriesQuery) Actor() delivery.Actor {
	return q.actor
}
