package interests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScoringService/internal/infra/storage/memstore"
)

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, error) {
	return "", errors.New("kvstore: failed to execute SQL query: connection refused")
}

func (brokenStore) Set(context.Context, string, string, time.Duration) error {
	return errors.New("kvstore: failed to execute SQL query: connection refused")
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	require.NoError(t, store.Set(ctx, "i:1", `["cinema", "geek"]`, 0))

	svc := NewService(store, nopLogger{})
	result := svc.Get(ctx, []int64{1, 2})

	// Каждый запрошенный ID присутствует в результате
	require.Len(t, result, 2)
	assert.Equal(t, []string{"cinema", "geek"}, result[1])
	assert.Equal(t, []string{}, result[2])
}

func TestService_Get_MalformedEntry(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	require.NoError(t, store.Set(ctx, "i:123", "invalid_json", 0))

	svc := NewService(store, nopLogger{})
	result := svc.Get(ctx, []int64{123})

	// Битая запись дает пустой список, а не ошибку
	assert.Equal(t, []string{}, result[123])
}

func TestService_Get_StoreUnavailable(t *testing.T) {
	svc := NewService(brokenStore{}, nopLogger{})
	result := svc.Get(context.Background(), []int64{1, 2, 3})

	require.Len(t, result, 3)
	for _, interests := range result {
		assert.Equal(t, []string{}, interests)
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "i:42", Key(42))
}
