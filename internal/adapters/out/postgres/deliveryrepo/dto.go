// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence. Implements the repository pattern for the
// delivery aggregate, converting between domain entities and database rows.
package deliveryrepo

import (
	"time"

	"github.com/google/uuid"

	"porter/internal/core/domain/model/delivery"
	"porter/internal/core/domain/model/kernel"
)

// DeliveryDTO represents the database structure for persisting delivery
// aggregates. Status and payment status are stored by their wire names so
// rows stay readable and the read-side queries can filter on them directly.
type DeliveryDTO struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID   `gorm:"type:uuid;not null;index"`
	PorterID      *uuid.UUID  `gorm:"type:uuid;index"`
	Pickup        GeoPointDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Dropoff       GeoPointDTO `gorm:"embedded;embeddedPrefix:dropoff_"`
	PackageType   string      `gorm:"type:varchar(16);not null"`
	WeightKg      float64     `gorm:"type:decimal(10,2);not null"`
	Description   string      `gorm:"type:text"`
	ScheduledTime time.Time   `gorm:"not null;index"`
	DistanceKm    float64     `gorm:"type:decimal(10,2);not null"`
	Amount        float64     `gorm:"type:decimal(10,2);not null"`
	Status        string      `gorm:"type:varchar(16);not null;index"`
	PaymentStatus string      `gorm:"type:varchar(16);not null"`
	CreatedAt     time.Time   `gorm:"not null"`
	UpdatedAt     time.Time   `gorm:"not null"`
}

// TableName specifies the database table name for delivery entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// GeoPointDTO represents an embedded coordinate pair with its street
// address. Used with column prefixes for pickup and dropoff points.
type GeoPointDTO struct {
	Latitude  float64 `gorm:"type:double precision;not null"`
	Longitude float64 `gorm:"type:double precision;not null"`
	Address   string  `gorm:"type:varchar(500);not null"`
}

// fromDomain converts a delivery aggregate to its database representation.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	var porterID *uuid.UUID
	if aggregate.PorterID() != nil {
		raw := aggregate.PorterID().Bytes()
		porterID = &raw
	}

	return DeliveryDTO{
		ID:       aggregate.ID().Bytes(),
		UserID:   aggregate.UserID().Bytes(),
		PorterID: porterID,
		Pickup: GeoPointDTO{
			Latitude:  aggregate.Pickup().Latitude(),
			Longitude: aggregate.Pickup().Longitude(),
			Address:   aggregate.Pickup().Address(),
		},
		Dropoff: GeoPointDTO{
			Latitude:  aggregate.Dropoff().Latitude(),
			Longitude: aggregate.Dropoff().Longitude(),
			Address:   aggregate.Dropoff().Address(),
		},
		PackageType:   aggregate.PackageType().String(),
		WeightKg:      aggregate.WeightKg(),
		Description:   aggregate.Description(),
		ScheduledTime: aggregate.ScheduledTime(),
		DistanceKm:    aggregate.DistanceKm(),
		Amount:        aggregate.Amount(),
		Status:        aggregate.Status().String(),
		PaymentStatus: aggregate.PaymentStatus().String(),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO back into a delivery aggregate using
// RestoreDelivery, which revalidates every invariant on the way in.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	var porterID *kernel.UUID
	if dto.PorterID != nil {
		pid, pidErr := kernel.UUIDFromBytes((*dto.PorterID)[:])
		if pidErr != nil {
			return nil, pidErr
		}
		porterID = &pid
	}

	pickup, err := kernel.NewGeoPoint(dto.Pickup.Latitude, dto.Pickup.Longitude, dto.Pickup.Address)
	if err != nil {
		return nil, err
	}

	dropoff, err := kernel.NewGeoPoint(dto.Dropoff.Latitude, dto.Dropoff.Longitude, dto.Dropoff.Address)
	if err != nil {
		return nil, err
	}

	packageType, err := delivery.PackageTypeFromString(dto.PackageType)
	if err != nil {
		return nil, err
	}

	status, err := delivery.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := delivery.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(
		id,
		userID,
		porterID,
		pickup,
		dropoff,
		packageType,
		dto.WeightKg,
		dto.Description,
		dto.ScheduledTime,
		dto.DistanceKm,
		dto.Amount,
		status,
		paymentStatus,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
