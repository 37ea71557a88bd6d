package ports

import (
	"context"

	"porter/internal/core/domain/model/kernel"
)

// DeliveryEventKind is the type of a refresh event on the push channel.
type DeliveryEventKind string

const (
	// EventNewDelivery signals a fresh booking entered the open pool.
	EventNewDelivery DeliveryEventKind = "NEW_DELIVERY"

	// EventDeliveryUpdated signals an existing delivery changed state.
	EventDeliveryUpdated DeliveryEventKind = "DELIVERY_UPDATED"
)

// DeliveryEvent is the payload published on the push channel. Events are
// refresh triggers only; clients re-query the API for the actual state.
type DeliveryEvent struct {
	Kind       DeliveryEventKind `json:"event"`
	DeliveryID string            `json:"deliveryId"`
}

// EventPublisher pushes refresh events to connected clients. Publishing is
// best effort and happens after commit; a publish failure never fails the
// command that produced it.
type EventPublisher interface {
	Publish(ctx context.Context, kind DeliveryEventKind, deliveryID kernel.UUID) error
}

// EventSubscription is a live subscription to the push channel. Close stops
// delivery and releases the underlying connection.
type EventSubscription interface {
	// Events returns the channel refresh events arrive on. The channel is
	// closed after Close is called.
	Events() <-chan DeliveryEvent

	// Close cancels the subscription.
	Close() error
}

// EventSubscriber opens subscriptions to the push channel, used by the
// transport layer to stream refresh events to clients.
type EventSubscriber interface {
	Subscribe(ctx context.Context) (EventSubscription, error)
}
