package method

import "context"

// Dispatcher интерфейс диспетчера запросов API
type Dispatcher interface {
	Dispatch(ctx context.Context, body map[string]any, requestID string) (any, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
