package queries

import (
	"context"

	"gorm.io/gorm"

	"porter/internal/core/domain/model/delivery"
)

// GetDeliveryStatsQueryHandler aggregates delivery counts by status.
type GetDeliveryStatsQueryHandler struct {
	db *gorm.DB
}

func NewGetDeliveryStatsQueryHandler(db *gorm.DB) GetDeliveryStatsQueryHandler {
	return GetDeliveryStatsQueryHandler{db: db}
}

// Handle executes the stats query. Unknown status values are counted in
// the total only.
func (h GetDeliveryStatsQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryStatsQuery,
) (GetDeliveryStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryStatsQueryResponse{}, err
	}

	scope, scopeArgs := scopeFor(query.Actor())

	var response GetDeliveryStatsQueryResponse

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*)
		FROM deliveries
		WHERE 1 = 1`+scope+`
		GROUP BY status
	`, scopeArgs...).Rows()
	if err != nil {
		return GetDeliveryStatsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int64
		if err = rows.Scan(&status, &count); err != nil {
			return GetDeliveryStatsQueryResponse{}, err
		}

		response.Total += count
		switch status {
		case delivery.Pending.String():
			response.Pending = count
		case delivery.Accepted.String():
			response.Accepted = count
		case delivery.PickedUp.String():
			response.PickedUp = count
		case delivery.InTransit.String():
			response.InTransit = count
		case delivery.Delivered.String():
			response.Delivered = count
		case delivery.Cancelled.String():
			response.Cancelled = count
		}
	}
	if err = rows.Err(); err != nil {
		return GetDeliveryStatsQueryResponse{}, err
	}

	unpaidArgs := []interface{}{
		delivery.Delivered.String(),
		delivery.PaymentPending.String(),
	}
	unpaidArgs = append(unpaidArgs, scopeArgs...)

	row := h.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(amount), 0)
		FROM deliveries
		WHERE status = ? AND payment_status = ?`+scope+`
	`, unpaidArgs...).Row()
	if err = row.Scan(&response.UnpaidAmount); err != nil {
		return GetDeliveryStatsQueryResponse{}, err
	}

	return response, nil
}
