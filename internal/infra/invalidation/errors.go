package invalidation

import "errors"

var (
	// ErrPublish возвращается при ошибке публикации события
	ErrPublish = errors.New("invalidation: failed to publish event")

	// ErrSubscribe возвращается при ошибке подписки на канал
	ErrSubscribe = errors.New("invalidation: failed to subscribe")
)
