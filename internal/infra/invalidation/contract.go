package invalidation

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// MetricsRecorder интерфейс для учёта опубликованных событий
type MetricsRecorder interface {
	IncInvalidation(result string)
}
