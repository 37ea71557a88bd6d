package porterrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"porter/internal/core/domain/model/kernel"
	"porter/internal/core/domain/model/porter"
	"porter/internal/pkg/errs"
)

// GormPorterRepository implements PorterRepository using GORM.
type GormPorterRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPorterRepository creates a new GORM porter repository.
func NewGormPorterRepository(db *gorm.DB, tracker aggregateTracker) *GormPorterRepository {
	return &GormPorterRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new porter profile to the database.
func (r *GormPorterRepository) Add(ctx context.Context, aggregate *porter.Porter) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing porter profile to the database.
func (r *GormPorterRepository) Update(ctx context.Context, aggregate *porter.Porter) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PorterDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a porter profile by ID.
func (r *GormPorterRepository) Get(ctx context.Context, id kernel.UUID) (*porter.Porter, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PorterDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("porter", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
