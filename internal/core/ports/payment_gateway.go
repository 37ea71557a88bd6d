package ports

import (
	"context"

	"porter/internal/core/domain/model/delivery"
)

// PaymentReceipt is the gateway's confirmation of a successful charge.
type PaymentReceipt struct {
	// ChargeID is the gateway-side identifier of the charge.
	ChargeID string
}

// PaymentGateway charges the delivery fee through an external payment
// provider. Implementations charge the full quoted amount; a returned error
// means no money moved and the caller must not mark the delivery paid.
type PaymentGateway interface {
	Charge(ctx context.Context, aggregate *delivery.Delivery) (PaymentReceipt, error)
}
