// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, the payment gateway, and
// the event publisher. Adapters implement them; commands and queries depend
// only on the interfaces.
package ports

import (
	"context"

	"porter/internal/core/domain/model/delivery"
	"porter/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery
// aggregates. Reads inside a unit of work see the authoritative state the
// transaction will decide on.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate to storage.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Delete removes a delivery. Callers check CanDelete first; only
	// cancelled deliveries are ever removed.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves a delivery aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such delivery exists.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetForUpdate retrieves a delivery and locks its row for the rest of
	// the transaction. Commands use it so two racing writers serialize and
	// the loser sees the winner's state.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetAllStalePending retrieves Pending deliveries booked more than the
	// given number of hours ago that no porter has picked up, locking the
	// returned rows for the rest of the transaction. Rows locked by a
	// concurrent writer are skipped. Used by the stale-pending sweep.
	GetAllStalePending(ctx context.Context, olderThanHours int) ([]*delivery.Delivery, error)
}
