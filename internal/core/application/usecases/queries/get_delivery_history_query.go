package queries

import (
	"errors"

	"porter/internal/core/domain/model/delivery"
	"porter/internal/pkg/guard"
)

var (
	ErrGetDeliveryHistoryQueryIsNotConstructed = errors.New(
		"GetDeliveryHistoryQuery must be created via NewGetDeliveryHistoryQuery constructor",
	)
)

// GetDeliveryHistoryQuery retrieves settled deliveries, DELIVERED or
// CANCELLED, visible to the actor. Scoping follows the same rules as the
// active list.
type GetDeliveryHistoryQuery struct {
	actor delivery.Actor

	guard guard.ConstructorGuard
}

// NewGetDeliveryHistoryQuery creates a query scoped to the given actor.
func NewGetDeliveryHistoryQuery(actor delivery.Actor) (GetDeliveryHistoryQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetDeliveryHistoryQuery{}, err
	}

	return GetDeliveryHistoryQuery{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryHistoryQueryIsNotConstructed)
}

func (q GetDeliveryHistoryQuery) Actor() delivery.Actor {
	return q.actor
}
