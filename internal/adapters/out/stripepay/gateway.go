// Package stripepay implements the payment gateway port on Stripe.
package stripepay

import (
	"context"
	"fmt"
	"math"

	stripe "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"

	"porter/internal/core/domain/model/delivery"
	"porter/internal/core/ports"
)

// Gateway charges delivery fees through the Stripe API.
type Gateway struct {
	api *client.API
}

// NewGateway creates a gateway with its own Stripe client. The key decides
// the mode; test keys never move real money.
func NewGateway(apiKey string) *Gateway {
	api := &client.API{}
	api.Init(apiKey, nil)
	return &Gateway{api: api}
}

// Charge collects the delivery fee. The payment intent identifier comes
// back as the charge reference for reconciliation.
func (g *Gateway) Charge(ctx context.Context, aggregate *delivery.Delivery) (ports.PaymentReceipt, error) {
	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
		// Stripe wants minor units; amounts are rupees.
		Amount:      stripe.Int64(int64(math.Round(aggregate.Amount() * 100))),
		Currency:    stripe.String(string(stripe.CurrencyINR)),
		Description: stripe.String("delivery fee"),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("delivery_id", aggregate.ID().String())
	params.AddMetadata("user_id", aggregate.UserID().String())

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return ports.PaymentReceipt{}, fmt.Errorf("create payment intent: %w", err)
	}

	return ports.PaymentReceipt{ChargeID: intent.ID}, nil
}
