// Package trackingrepo persists the append-only location trail recorded
// while porters move deliveries.
package trackingrepo

import (
	"time"

	"github.com/google/uuid"

	"porter/internal/core/domain/model/kernel"
	"porter/internal/core/domain/model/tracking"
)

// TrackingPointDTO represents one recorded position in the database.
type TrackingPointDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID uuid.UUID `gorm:"type:uuid;not null;index"`
	Latitude   float64   `gorm:"type:double precision;not null"`
	Longitude  float64   `gorm:"type:double precision;not null"`
	Address    string    `gorm:"type:varchar(500);not null"`
	RecordedAt time.Time `gorm:"not null;index"`
}

// TableName specifies the database table name for tracking points.
func (TrackingPointDTO) TableName() string {
	return "tracking_points"
}

func fromDomain(point *tracking.TrackingPoint) TrackingPointDTO {
	return TrackingPointDTO{
		ID:         point.ID().Bytes(),
		DeliveryID: point.DeliveryID().Bytes(),
		Latitude:   point.Position().Latitude(),
		Longitude:  point.Position().Longitude(),
		Address:    point.Position().Address(),
		RecordedAt: point.RecordedAt(),
	}
}

func toDomain(dto TrackingPointDTO) (*tracking.TrackingPoint, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	deliveryID, err := kernel.UUIDFromBytes(dto.DeliveryID[:])
	if err != nil {
		return nil, err
	}

	position, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude, dto.Address)
	if err != nil {
		return nil, err
	}

	return tracking.NewTrackingPoint(id, deliveryID, position, dto.RecordedAt)
}
