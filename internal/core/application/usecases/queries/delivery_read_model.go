// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS
// architecture. Handlers run raw SQL against the read side and return
// flat read models; the status sets they select mirror the domain
// ViewFilter semantics exactly.
package queries

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"porter/internal/core/domain/model/delivery"
	"porter/internal/core/domain/model/kernel"
)

// deliveryColumns is the shared projection for every delivery list query.
const deliveryColumns = `
		id,
		user_id,
		porter_id,
		pickup_latitude,
		pickup_longitude,
		pickup_address,
		dropoff_latitude,
		dropoff_longitude,
		dropoff_address,
		package_type,
		weight_kg,
		description,
		scheduled_time,
		distance_km,
		amount,
		status,
		payment_status,
		created_at,
		updated_at`

// scopeFor returns the WHERE fragment restricting rows to the actor's
// view. Users see deliveries they booked, porters see deliveries assigned
// to them, admins see everything.
func scopeFor(actor delivery.Actor) (string, []interface{}) {
	switch actor.Role() {
	case delivery.RoleUser:
		return " AND user_id = ?", []interface{}{actor.ID().Bytes()}
	case delivery.RolePorter:
		return " AND porter_id = ?", []interface{}{actor.ID().Bytes()}
	default:
		return "", nil
	}
}

// DeliveryLocationResponse is a coordinate pair with its street address in
// the read model.
type DeliveryLocationResponse struct {
	Latitude  float64
	Longitude float64
	Address   string
}

// DeliveryQueryResponse represents one delivery in the read model, flat
// and display-ready. PorterID is nil for deliveries still in the pool.
type DeliveryQueryResponse struct {
	ID            kernel.UUID
	UserID        kernel.UUID
	PorterID      *kernel.UUID
	Pickup        DeliveryLocationResponse
	Dropoff       DeliveryLocationResponse
	PackageType   string
	WeightKg      float64
	Description   string
	ScheduledTime time.Time
	DistanceKm    float64
	Amount        float64
	Status        string
	PaymentStatus string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// scanDeliveries drains rows produced by a deliveryColumns projection.
func scanDeliveries(rows *sql.Rows) ([]DeliveryQueryResponse, error) {
	deliveries := make([]DeliveryQueryResponse, 0)

	for rows.Next() {
		var response DeliveryQueryResponse
		var id, userID uuid.UUID
		var porterID uuid.NullUUID

		err := rows.Scan(
			&id,
			&userID,
			&porterID,
			&response.Pickup.Latitude,
			&response.Pickup.Longitude,
			&response.Pickup.Address,
			&response.Dropoff.Latitude,
			&response.Dropoff.Longitude,
			&response.Dropoff.Address,
			&response.PackageType,
			&response.WeightKg,
			&response.Description,
			&response.ScheduledTime,
			&response.DistanceKm,
			&response.Amount,
			&response.Status,
			&response.PaymentStatus,
			&response.CreatedAt,
			&response.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if response.UserID, err = kernel.UUIDFromBytes(userID[:]); err != nil {
			return nil, err
		}
		if porterID.Valid {
			pid, pidErr := kernel.UUIDFromBytes(porterID.UUID[:])
			if pidErr != nil {
				return nil, pidErr
			}
			response.PorterID = &pid
		}

		deliveries = append(deliveries, response)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
