package middleware

import "time"

// Logger интерфейс для логирования запросов
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// HTTPMetrics интерфейс для учёта HTTP запросов
type HTTPMetrics interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}
