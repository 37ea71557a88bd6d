package queries

import (
	"errors"
	"time"

	"porter/internal/core/domain/model/delivery"
	"porter/internal/core/domain/model/kernel"
	"porter/internal/pkg/guard"
)

var (
	ErrGetTrackingPointsQueryIsNotConstructed = errors.New(
		"GetTrackingPointsQuery must be created via NewGetTrackingPointsQuery constructor",
	)
)

// GetTrackingPointsQuery retrieves the location trail of a delivery,
// oldest point first. The actor's scope is enforced in the handler, so a
// user cannot replay somebody else's trail.
type GetTrackingPointsQuery struct {
	deliveryID kernel.UUID
	actor      delivery.Actor

	guard guard.ConstructorGuard
}

// NewGetTrackingPointsQuery creates a trail query for the given delivery.
func NewGetTrackingPointsQuery(
	deliveryID kernel.UUID,
	actor delivery.Actor,
) (GetTrackingPointsQuery, error) {
	err := errors.Join(
		deliveryID.Validate(),
		actor.Validate(),
	)
	if err != nil {
		return GetTrackingPointsQuery{}, err
	}

	return GetTrackingPointsQuery{
		deliveryID: deliveryID,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTrackingPointsQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingPointsQueryIsNotConstructed)
}

func (q GetTrackingPointsQuery) DeliveryID() kernel.UUID {
	return q.deliveryID
}

func (q GetTrackingPointsQuery) Actor() delivery.Actor {
	return q.actor
}

// TrackingPointQueryResponse is one recorded position in a delivery trail.
type TrackingPointQueryResponse struct {
	ID         kernel.UUID
	Position   DeliveryLocationResponse
	RecordedAt time.Time
}
