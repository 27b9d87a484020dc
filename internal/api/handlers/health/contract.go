package health

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// DBPinger проверка соединения с PostgreSQL
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// RedisPinger проверка соединения с Redis
type RedisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

type Logger interface {
	Warn(format string, v ...interface{})
}
