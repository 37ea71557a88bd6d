package ports

import (
	"context"

	"porter/internal/core/domain/model/kernel"
	"porter/internal/core/domain/model/tracking"
)

// TrackingRepository defines the persistence contract for the append-only
// position trail of a delivery.
type TrackingRepository interface {
	// Add appends a tracking point. Points are never updated or removed.
	Add(ctx context.Context, point *tracking.TrackingPoint) error

	// GetByDeliveryID retrieves a delivery's trail ordered by recording
	// time, oldest first.
	GetByDeliveryID(ctx context.Context, deliveryID kernel.UUID) ([]*tracking.TrackingPoint, error)
}
