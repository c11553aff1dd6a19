package scoring

import (
	"context"
	"time"
)

// Store интерфейс key-value хранилища, используемого как кеш скоринга.
// Отсутствие ключа хранилище сообщает ошибкой kvstore.ErrKeyNotFound
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}
