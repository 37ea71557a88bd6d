package queries

import (
	"context"

	"gorm.io/gorm"

	"porter/internal/core/domain/model/delivery"
)

// GetAvailableDeliveriesQueryHandler reads the open pool of unassigned
// pending deliveries. Soonest scheduled first, so porters pick up the
// most urgent work.
type GetAvailableDeliveriesQueryHandler struct {
	db *gorm.DB
}

func NewGetAvailableDeliveriesQueryHandler(db *gorm.DB) GetAvailableDeliveriesQueryHandler {
	return GetAvailableDeliveriesQueryHandler{db: db}
}

// Handle executes the query to retrieve unassigned pending deliveries.
func (h GetAvailableDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableDeliveriesQuery,
) ([]DeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+deliveryColumns+`
		FROM deliveries
		WHERE status = ? AND porter_id IS NULL
		ORDER BY scheduled_time
	`, delivery.Pending.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDeliveries(rows)
}
