package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScoringService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScoringService/pkg/psqlbuilder"
)

// Repository key-value хранилище поверх PostgreSQL (таблица kv_entries).
// Каждое обращение ограничено собственным таймаутом: хранилище для сервиса
// best-effort, и медленная БД не должна задерживать запрос дольше таймаута.
type Repository struct {
	db      DBExecutor
	timeout time.Duration
}

// NewRepository создает новый экземпляр хранилища
func NewRepository(db DBExecutor, timeout time.Duration) *Repository {
	return &Repository{db: db, timeout: timeout}
}

// Get возвращает значение по ключу. Отсутствующий или истекший ключ
// возвращает ErrKeyNotFound
func (r *Repository) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("value").
		From("kv_entries").
		Where(squirrel.Eq{"key": key}).
		Where(squirrel.Or{
			squirrel.Eq{"expires_at": nil},
			squirrel.Gt{"expires_at": time.Now()},
		}).
		ToSql()

	if err != nil {
		return "", fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var value string
	err = executor.QueryRowContext(ctx, query, args...).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: Get - execute select: %v", ErrExecQuery, err)
	}

	return value, nil
}

// Set сохраняет значение по ключу с временем жизни.
// ttl <= 0 означает запись без срока истечения
func (r *Repository) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	executor := dbmetrics.GetExecutor(ctx, r.db)

	var expiresAt *time.Time
	if ttl > 0 {
		t := time.Now().Add(ttl)
		expiresAt = &t
	}

	query, args, err := psqlbuilder.Insert("kv_entries").
		Columns("key", "value", "expires_at").
		Values(key, value, expiresAt).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Set - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Set - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}
