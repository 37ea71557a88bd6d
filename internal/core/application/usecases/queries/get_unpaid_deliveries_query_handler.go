package queries

import (
	"context"

	"gorm.io/gorm"

	"porter/internal/core/domain/model/delivery"
)

// GetUnpaidDeliveriesQueryHandler reads delivered-but-unpaid deliveries,
// oldest first so the longest outstanding fees surface on top.
type GetUnpaidDeliveriesQueryHandler struct {
	db *gorm.DB
}

func NewGetUnpaidDeliveriesQueryHandler(db *gorm.DB) GetUnpaidDeliveriesQueryHandler {
	return GetUnpaidDeliveriesQueryHandler{db: db}
}

// Handle executes the query to retrieve unpaid delivered deliveries.
func (h GetUnpaidDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetUnpaidDeliveriesQuery,
) ([]DeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	args := []interface{}{
		delivery.Delivered.String(),
		delivery.PaymentPending.String(),
	}
	scope := ""
	if !query.Actor().IsAdmin() {
		scope = " AND user_id = ?"
		args = append(args, query.Actor().ID().Bytes())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+deliveryColumns+`
		FROM deliveries
		WHERE status = ? AND payment_status = ?`+scope+`
		ORDER BY updated_at
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDeliveries(rows)
}
