package establishments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const keyPrefix = "establishments:list:"

// Cache явный кэш списка заведений в Redis
// Свежесть записи определяется по внедрённым часам, TTL в Redis только подчищает старые ключи
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	clock  TimeProvider
}

// NewCache создает кэш списка заведений
func NewCache(client *redis.Client, ttl time.Duration, clock TimeProvider) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		clock:  clock,
	}
}

type entry struct {
	CachedAt time.Time `json:"cachedAt"`
	Items    []item    `json:"items"`
}

type item struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Address   string    `json:"address"`
	Rating    float64   `json:"rating"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// Get возвращает закэшированный список
// Второе значение false означает промах: ключа нет или запись устарела
func (c *Cache) Get(ctx context.Context, filter domain.EstablishmentsFilter) ([]*domain.Establishment, bool, error) {
	data, err := c.client.Get(ctx, key(filter)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: Get - redis get: %v", ErrCacheRead, err)
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false, fmt.Errorf("%w: Get - unmarshal: %v", ErrDecode, err)
	}

	if c.clock.Now().Sub(e.CachedAt) >= c.ttl {
		return nil, false, nil
	}

	result := make([]*domain.Establishment, 0, len(e.Items))
	for _, it := range e.Items {
		result = append(result, &domain.Establishment{
			ID:        it.ID,
			OwnerID:   it.OwnerID,
			Name:      it.Name,
			Category:  it.Category,
			Address:   it.Address,
			Rating:    it.Rating,
			IsActive:  it.IsActive,
			CreatedAt: it.CreatedAt,
		})
	}

	return result, true, nil
}

// Set сохраняет список с отметкой времени
func (c *Cache) Set(ctx context.Context, filter domain.EstablishmentsFilter, list []*domain.Establishment) error {
	e := entry{
		CachedAt: c.clock.Now(),
		Items:    make([]item, 0, len(list)),
	}
	for _, est := range list {
		e.Items = append(e.Items, item{
			ID:        est.ID,
			OwnerID:   est.OwnerID,
			Name:      est.Name,
			Category:  est.Category,
			Address:   est.Address,
			Rating:    est.Rating,
			IsActive:  est.IsActive,
			CreatedAt: est.CreatedAt,
		})
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("%w: Set - marshal: %v", ErrCacheWrite, err)
	}

	if err := c.client.Set(ctx, key(filter), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set - redis set: %v", ErrCacheWrite, err)
	}

	return nil
}

func key(filter domain.EstablishmentsFilter) string {
	if filter.Category == nil || *filter.Category == "" {
		return keyPrefix + "all"
	}
	return keyPrefix + *filter.Category
}
