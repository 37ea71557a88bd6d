// Package redisbus implements the delivery event push channel on Redis
// pub/sub. Events are refresh triggers, not state; a dropped message only
// delays a client refresh until the next poll.
package redisbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"porter/internal/core/domain/model/kernel"
	"porter/internal/core/ports"
)

// eventsChannel is the Redis pub/sub channel all delivery events go through.
const eventsChannel = "delivery:events"

// Publisher implements ports.EventPublisher on a shared Redis client.
type Publisher struct {
	client *redis.Client
}

// NewPublisher creates a publisher on the given Redis client.
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// Publish pushes a refresh event onto the channel.
func (p *Publisher) Publish(ctx context.Context, kind ports.DeliveryEventKind, deliveryID kernel.UUID) error {
	payload, err := json.Marshal(ports.DeliveryEvent{
		Kind:       kind,
		DeliveryID: deliveryID.String(),
	})
	if err != nil {
		return fmt.Errorf("marshal delivery event: %w", err)
	}

	if err := p.client.Publish(ctx, eventsChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish delivery event: %w", err)
	}

	return nil
}
