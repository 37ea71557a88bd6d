package queries

import (
	"errors"

	"porter/internal/core/domain/model/delivery"
	"porter/internal/pkg/guard"
)

var (
	ErrGetDeliveryStatsQueryIsNotConstructed = errors.New(
		"GetDeliveryStatsQuery must be created via NewGetDeliveryStatsQuery constructor",
	)
)

// GetDeliveryStatsQuery retrieves per-status delivery counts and the
// outstanding unpaid total for the actor's scope. Admins get platform-wide
// numbers.
type GetDeliveryStatsQuery struct {
	actor delivery.Actor

	guard guard.ConstructorGuard
}

// NewGetDeliveryStatsQuery creates a stats query scoped to the given actor.
func NewGetDeliveryStatsQuery(actor delivery.Actor) (GetDeliveryStatsQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetDeliveryStatsQuery{}, err
	}

	return GetDeliveryStatsQuery{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryStatsQueryIsNotConstructed)
}

func (q GetDeliveryStatsQuery) Actor() delivery.Actor {
	return q.actor
}

// GetDeliveryStatsQueryResponse aggregates delivery counts by status.
// UnpaidAmount sums fees of delivered deliveries that have not settled.
type GetDeliveryStatsQueryResponse struct {
	Total        int64
	Pending      int64
	Accepted     int64
	PickedUp     int64
	InTransit    int64
	Delivered    int64
	Cancelled    int64
	UnpaidAmount float64
}
