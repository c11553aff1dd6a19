package worker

import "context"

// ExpiredPurger интерфейс хранилища, умеющего удалять истекшие записи
type ExpiredPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
