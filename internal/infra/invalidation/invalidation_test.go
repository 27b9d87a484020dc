package invalidation

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type countingMetrics struct {
	results map[string]int
}

func (c *countingMetrics) IncInvalidation(result string) {
	c.results[result]++
}

func newClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return client, mr
}

func TestPublishSubscribe(t *testing.T) {
	client, _ := newClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	establishmentID := uuid.New()
	metrics := &countingMetrics{results: map[string]int{}}

	sub, err := NewSubscriber(client, logger.NewNop()).Subscribe(ctx, establishmentID)
	require.NoError(t, err)
	defer sub.Close()

	event := Event{
		EstablishmentID: establishmentID,
		AppointmentID:   uuid.New(),
		Date:            "2026-05-04",
		Reason:          ReasonCreated,
	}
	require.NoError(t, NewPublisher(client, metrics).Publish(ctx, event))

	select {
	case got := <-sub.Events():
		assert.Equal(t, event, got)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}

	assert.Equal(t, 1, metrics.results["ok"])
}

func TestSubscribe_OtherEstablishmentIsolated(t *testing.T) {
	client, _ := newClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, err := NewSubscriber(client, logger.NewNop()).Subscribe(ctx, uuid.New())
	require.NoError(t, err)
	defer sub.Close()

	publisher := NewPublisher(client, &countingMetrics{results: map[string]int{}})
	require.NoError(t, publisher.Publish(ctx, Event{EstablishmentID: uuid.New(), Reason: ReasonCancelled}))

	select {
	case got := <-sub.Events():
		t.Fatalf("unexpected event %+v", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSubscription_ClosesOnCancel(t *testing.T) {
	client, _ := newClient(t)
	ctx, cancel := context.WithCancel(context.Background())

	sub, err := NewSubscriber(client, logger.NewNop()).Subscribe(ctx, uuid.New())
	require.NoError(t, err)
	defer sub.Close()

	cancel()

	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("events channel was not closed")
	}
}

func TestPublish_RedisDown(t *testing.T) {
	client, mr := newClient(t)
	mr.Close()

	metrics := &countingMetrics{results: map[string]int{}}
	err := NewPublisher(client, metrics).Publish(context.Background(), Event{EstablishmentID: uuid.New()})

	assert.ErrorIs(t, err, ErrPublish)
	assert.Equal(t, 1, metrics.results["error"])
}
