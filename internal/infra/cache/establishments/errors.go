package establishments

import "errors"

var (
	// ErrCacheRead возвращается при ошибке чтения из Redis
	ErrCacheRead = errors.New("establishments.cache: failed to read")

	// ErrCacheWrite возвращается при ошибке записи в Redis
	ErrCacheWrite = errors.New("establishments.cache: failed to write")

	// ErrDecode возвращается, когда запись в кэше не удалось разобрать
	ErrDecode = errors.New("establishments.cache: failed to decode entry")
)
