package ports

import (
	"context"

	"porter/internal/core/domain/model/kernel"
	"porter/internal/core/domain/model/porter"
)

// PorterRepository defines the persistence contract for porter profiles.
type PorterRepository interface {
	// Add persists a new porter profile to storage.
	Add(ctx context.Context, aggregate *porter.Porter) error

	// Update persists changes to an existing porter profile.
	Update(ctx context.Context, aggregate *porter.Porter) error

	// Get retrieves a porter profile by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such porter exists.
	Get(ctx context.Context, id kernel.UUID) (*porter.Porter, error)
}
