package trackingrepo

import (
	"context"

	"gorm.io/gorm"

	"porter/internal/core/domain/model/kernel"
	"porter/internal/core/domain/model/tracking"
)

// GormTrackingRepository implements TrackingRepository using GORM.
// Tracking points are append-only, so there is no update path.
type GormTrackingRepository struct {
	db *gorm.DB
}

// NewGormTrackingRepository creates a new GORM tracking repository.
func NewGormTrackingRepository(db *gorm.DB) *GormTrackingRepository {
	return &GormTrackingRepository{db: db}
}

// Add appends a tracking point to a delivery's trail.
func (r *GormTrackingRepository) Add(ctx context.Context, point *tracking.TrackingPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}

	dto := fromDomain(point)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByDeliveryID retrieves a delivery's trail, oldest point first.
func (r *GormTrackingRepository) GetByDeliveryID(ctx context.Context, deliveryID kernel.UUID) ([]*tracking.TrackingPoint, error) {
	if err := deliveryID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TrackingPointDTO
	err := r.db.WithContext(ctx).
		Order("recorded_at").
		Find(&dtos, "delivery_id = ?", deliveryID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	points := make([]*tracking.TrackingPoint, 0, len(dtos))
	for _, dto := range dtos {
		point, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		points = append(points, point)
	}

	return points, nil
}
