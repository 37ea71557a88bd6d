package queries

import (
	"context"

	"gorm.io/gorm"

	"porter/internal/core/domain/model/delivery"
)

// GetDeliveryHistoryQueryHandler reads terminal deliveries from the
// database, newest scheduled first.
type GetDeliveryHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetDeliveryHistoryQueryHandler(db *gorm.DB) GetDeliveryHistoryQueryHandler {
	return GetDeliveryHistoryQueryHandler{db: db}
}

// Handle executes the query to retrieve the actor's settled deliveries.
func (h GetDeliveryHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryHistoryQuery,
) ([]DeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	scope, scopeArgs := scopeFor(query.Actor())
	args := []interface{}{
		delivery.Delivered.String(),
		delivery.Cancelled.String(),
	}
	args = append(args, scopeArgs...)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+deliveryColumns+`
		FROM deliveries
		WHERE status IN (?, ?)`+scope+`
		ORDER BY scheduled_time DESC
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDeliveries(rows)
}
