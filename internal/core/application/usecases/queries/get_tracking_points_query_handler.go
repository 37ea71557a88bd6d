package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"porter/internal/core/domain/model/delivery"
	"porter/internal/core/domain/model/kernel"
)

// GetTrackingPointsQueryHandler reads a delivery's location trail from the
// database. Visibility follows the delivery itself, checked with a join so
// out-of-scope trails simply come back empty.
type GetTrackingPointsQueryHandler struct {
	db *gorm.DB
}

func NewGetTrackingPointsQueryHandler(db *gorm.DB) GetTrackingPointsQueryHandler {
	return GetTrackingPointsQueryHandler{db: db}
}

// Handle executes the query to retrieve tracking points, oldest first.
func (h GetTrackingPointsQueryHandler) Handle(
	ctx context.Context,
	query GetTrackingPointsQuery,
) ([]TrackingPointQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	args := []interface{}{query.DeliveryID().Bytes()}
	scope := ""
	switch query.Actor().Role() {
	case delivery.RoleUser:
		scope = " AND d.user_id = ?"
		args = append(args, query.Actor().ID().Bytes())
	case delivery.RolePorter:
		scope = " AND d.porter_id = ?"
		args = append(args, query.Actor().ID().Bytes())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			t.id,
			t.latitude,
			t.longitude,
			t.address,
			t.recorded_at
		FROM tracking_points t
		JOIN deliveries d ON d.id = t.delivery_id
		WHERE t.delivery_id = ?`+scope+`
		ORDER BY t.recorded_at
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := make([]TrackingPointQueryResponse, 0)

	for rows.Next() {
		var point TrackingPointQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&point.Position.Latitude,
			&point.Position.Longitude,
			&point.Position.Address,
			&point.RecordedAt,
		)
		if err != nil {
			return nil, err
		}

		if point.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}

		points = append(points, point)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}
