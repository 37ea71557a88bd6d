// Package porterrepo provides data transfer objects and mapping functions
// for porter profile persistence.
package porterrepo

import (
	"time"

	"github.com/google/uuid"

	"porter/internal/core/domain/model/kernel"
	"porter/internal/core/domain/model/porter"
)

// PorterDTO represents the database structure for persisting porter
// profiles. Location columns are null until the porter reports a fix.
type PorterDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name       string     `gorm:"type:varchar(255);not null"`
	Phone      string     `gorm:"type:varchar(32);not null"`
	Rating     float64    `gorm:"type:decimal(3,2);not null"`
	Latitude   *float64   `gorm:"type:double precision"`
	Longitude  *float64   `gorm:"type:double precision"`
	Address    *string    `gorm:"type:varchar(500)"`
	ReportedAt *time.Time `gorm:""`
}

// TableName specifies the database table name for porter entities.
func (PorterDTO) TableName() string {
	return "porters"
}

// fromDomain converts a porter profile to its database representation.
func fromDomain(aggregate *porter.Porter) PorterDTO {
	dto := PorterDTO{
		ID:     aggregate.ID().Bytes(),
		Name:   aggregate.Name(),
		Phone:  aggregate.Phone(),
		Rating: aggregate.Rating(),
	}

	if aggregate.Location() != nil {
		lat := aggregate.Location().Latitude()
		lng := aggregate.Location().Longitude()
		addr := aggregate.Location().Address()
		reportedAt := aggregate.ReportedAt()

		dto.Latitude = &lat
		dto.Longitude = &lng
		dto.Address = &addr
		dto.ReportedAt = &reportedAt
	}

	return dto
}

// toDomain converts a database DTO back into a porter profile.
func toDomain(dto PorterDTO) (*porter.Porter, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	var reportedAt time.Time
	if dto.Latitude != nil && dto.Longitude != nil && dto.Address != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude, *dto.Address)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
		if dto.ReportedAt != nil {
			reportedAt = *dto.ReportedAt
		}
	}

	return porter.RestorePorter(id, dto.Name, dto.Phone, dto.Rating, location, reportedAt)
}
