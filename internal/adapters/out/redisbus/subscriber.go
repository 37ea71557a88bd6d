package redisbus

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/go-redis/redis/v8"

	"porter/internal/core/ports"
)

// Subscriber implements ports.EventSubscriber on a shared Redis client.
type Subscriber struct {
	client *redis.Client
	logger *slog.Logger
}

// NewSubscriber creates a subscriber on the given Redis client.
func NewSubscriber(client *redis.Client, logger *slog.Logger) *Subscriber {
	return &Subscriber{client: client, logger: logger}
}

// Subscribe opens a subscription to the push channel. The returned
// subscription delivers events until Close is called or ctx is cancelled.
func (s *Subscriber) Subscribe(ctx context.Context) (ports.EventSubscription, error) {
	pubsub := s.client.Subscribe(ctx, eventsChannel)

	// Force the SUBSCRIBE round trip so a dead Redis surfaces here, not
	// on the first missed event.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	sub := &subscription{
		pubsub: pubsub,
		events: make(chan ports.DeliveryEvent),
		logger: s.logger,
	}
	go sub.forward(ctx)

	return sub, nil
}

type subscription struct {
	pubsub *redis.PubSub
	events chan ports.DeliveryEvent
	logger *slog.Logger
}

func (s *subscription) Events() <-chan ports.DeliveryEvent {
	return s.events
}

func (s *subscription) Close() error {
	return s.pubsub.Close()
}

// forward decodes raw messages into delivery events. Malformed payloads
// are logged and skipped; the subscription stays alive.
func (s *subscription) forward(ctx context.Context) {
	defer close(s.events)

	for msg := range s.pubsub.Channel() {
		var event ports.DeliveryEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			s.logger.Warn("dropping malformed delivery event",
				slog.String("payload", msg.Payload),
				slog.Any("error", err))
			continue
		}

		select {
		case s.events <- event:
		case <-ctx.Done():
			return
		}
	}
}
