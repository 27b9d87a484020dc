package invalidation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Publisher публикует события инвалидации доступности в Redis
type Publisher struct {
	client  *redis.Client
	metrics MetricsRecorder
}

// NewPublisher создает новый издатель событий
func NewPublisher(client *redis.Client, metrics MetricsRecorder) *Publisher {
	return &Publisher{
		client:  client,
		metrics: metrics,
	}
}

// Publish отправляет событие в канал заведения
func (p *Publisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		p.metrics.IncInvalidation("error")
		return fmt.Errorf("%w: Publish - marshal event: %v", ErrPublish, err)
	}

	if err := p.client.Publish(ctx, Channel(event.EstablishmentID), payload).Err(); err != nil {
		p.metrics.IncInvalidation("error")
		return fmt.Errorf("%w: Publish - redis publish: %v", ErrPublish, err)
	}

	p.metrics.IncInvalidation("ok")
	return nil
}
