package invalidation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const eventsBuffer = 16

// Subscriber подписывает потребителей на события инвалидации заведения
type Subscriber struct {
	client *redis.Client
	logger Logger
}

// NewSubscriber создает нового подписчика
func NewSubscriber(client *redis.Client, logger Logger) *Subscriber {
	return &Subscriber{
		client: client,
		logger: logger,
	}
}

// Subscription активная подписка на канал заведения
type Subscription struct {
	pubsub *redis.PubSub
	events chan Event
}

// Events возвращает канал событий. Канал закрывается при отмене контекста или Close.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Close отписывается от канала
func (s *Subscription) Close() error {
	return s.pubsub.Close()
}

// Subscribe подписывается на события заведения
// Возвращается только после подтверждения подписки Redis, события до этого момента не доставляются
func (s *Subscriber) Subscribe(ctx context.Context, establishmentID uuid.UUID) (*Subscription, error) {
	pubsub := s.client.Subscribe(ctx, Channel(establishmentID))

	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("%w: Subscribe - confirm subscription: %v", ErrSubscribe, err)
	}

	sub := &Subscription{
		pubsub: pubsub,
		events: make(chan Event, eventsBuffer),
	}

	go s.forward(ctx, sub)

	return sub, nil
}

func (s *Subscriber) forward(ctx context.Context, sub *Subscription) {
	defer close(sub.events)

	messages := sub.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}

			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				s.logger.Warn("Subscribe: skip malformed event on %s: %v", msg.Channel, err)
				continue
			}

			select {
			case sub.events <- event:
			case <-ctx.Done():
				return
			}
		}
	}
}
