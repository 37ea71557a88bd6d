package queries

import (
	"context"

	"gorm.io/gorm"

	"porter/internal/core/domain/model/delivery"
)

// GetActiveDeliveriesQueryHandler reads in-flight deliveries from the
// database, newest scheduled first.
type GetActiveDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveDeliveriesQueryHandler creates a handler for active delivery
// queries. Requires a GORM database connection for query execution.
func NewGetActiveDeliveriesQueryHandler(db *gorm.DB) GetActiveDeliveriesQueryHandler {
	return GetActiveDeliveriesQueryHandler{db: db}
}

// Handle executes the query to retrieve the actor's in-flight deliveries.
// Results are sorted by scheduled time, newest first.
func (h GetActiveDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetActiveDeliveriesQuery,
) ([]DeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	scope, scopeArgs := scopeFor(query.Actor())
	args := []interface{}{
		delivery.Pending.String(),
		delivery.Accepted.String(),
		delivery.PickedUp.String(),
		delivery.InTransit.String(),
	}
	args = append(args, scopeArgs...)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+deliveryColumns+`
		FROM deliveries
		WHERE status IN (?, ?, ?, ?)`+scope+`
		ORDER BY scheduled_time DESC
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDeliveries(rows)
}
