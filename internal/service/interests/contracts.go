package interests

import (
	"context"
	"time"
)

// Store интерфейс key-value хранилища с интересами клиентов.
// Интересы лежат под ключами i:<client_id> как JSON-массив строк
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}
