package kvstore

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScoringService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScoringService/pkg/psqlbuilder"
)

// PurgeExpired удаляет истекшие записи. Вызывается фоновым воркером;
// чтение и так отфильтровывает истекшие ключи, очистка лишь сдерживает
// рост таблицы. Возвращает количество удаленных строк
func (r *Repository) PurgeExpired(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("kv_entries").
		Where(squirrel.LtOrEq{"expires_at": time.Now()}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}
