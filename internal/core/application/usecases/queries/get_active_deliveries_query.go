package queries

import (
	"errors"

	"porter/internal/core/domain/model/delivery"
	"porter/internal/pkg/guard"
)

var (
	ErrGetActiveDeliveriesQueryIsNotConstructed = errors.New(
		"GetActiveDeliveriesQuery must be created via NewGetActiveDeliveriesQuery constructor",
	)
)

// GetActiveDeliveriesQuery retrieves in-flight deliveries visible to the
// actor. A delivery is in flight while its status is PENDING, ACCEPTED,
// PICKED_UP or IN_TRANSIT. Users see deliveries they booked, porters see
// deliveries assigned to them, admins see all.
//
// Example:
//
//	query, err := NewGetActiveDeliveriesQuery(actor)
//	if err != nil {
//	    return err
//	}
//
//	deliveries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get active deliveries: %w", err)
//	}
type GetActiveDeliveriesQuery struct {
	actor delivery.Actor

	guard guard.ConstructorGuard
}

// NewGetActiveDeliveriesQuery creates a query scoped to the given actor.
func NewGetActiveDeliveriesQuery(actor delivery.Actor) (GetActiveDeliveriesQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetActiveDeliveriesQuery{}, err
	}

	return GetActiveDeliveriesQuery{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveDeliveriesQueryIsNotConstructed)
}

func (q GetActiveDeliveriesQuery) Actor() delivery.Actor {
	return q.actor
}
