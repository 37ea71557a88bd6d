package tracking

import (
	"errors"
	"time"

	"porter/internal/core/domain/model/kernel"
	"porter/internal/pkg/errs"
	"porter/internal/pkg/guard"
)

// ErrTrackingPointIsNotConstructed is returned when using an improperly
// initialized TrackingPoint.
var ErrTrackingPointIsNotConstructed = errors.New(
	"TrackingPoint must be created via NewTrackingPoint constructor")

// TrackingPoint is one sample of the porter's position while fulfilling a
// delivery. Points are append-only: accept and every advance record one,
// and the live map reads them back ordered by time.
type TrackingPoint struct {
	id         kernel.UUID
	deliveryID kernel.UUID
	position   kernel.GeoPoint
	recordedAt time.Time

	guard guard.ConstructorGuard
}

// NewTrackingPoint creates a tracking sample for a delivery.
func NewTrackingPoint(
	id kernel.UUID,
	deliveryID kernel.UUID,
	position kernel.GeoPoint,
	recordedAt time.Time,
) (*TrackingPoint, error) {
	if err := errors.Join(
		id.Validate(),
		deliveryID.Validate(),
		position.Validate(),
	); err != nil {
		return nil, err
	}

	if recordedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("recordedAt")
	}

	return &TrackingPoint{
		id:         id,
		deliveryID: deliveryID,
		position:   position,
		recordedAt: recordedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the point was created through NewTrackingPoint.
func (t *TrackingPoint) Validate() error {
	if t == nil {
		return ErrTrackingPointIsNotConstructed
	}
	return t.guard.Validate(ErrTrackingPointIsNotConstructed)
}

// ID returns the point's unique identifier.
func (t *TrackingPoint) ID() kernel.UUID {
	return t.id
}

// DeliveryID returns the delivery the sample belongs to.
func (t *TrackingPoint) DeliveryID() kernel.UUID {
	return t.deliveryID
}

// Position returns the sampled coordinates.
func (t *TrackingPoint) Position() kernel.GeoPoint {
	return t.position
}

// RecordedAt returns when the sample was taken.
func (t *TrackingPoint) RecordedAt() time.Time {
	return t.recordedAt
}
