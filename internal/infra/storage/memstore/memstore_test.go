package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScoringService/internal/infra/storage/kvstore"
)

func TestStore_GetSet(t *testing.T) {
	ctx := context.Background()
	store := New()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "i:1", `["books"]`, 0))

	value, err := store.Get(ctx, "i:1")
	require.NoError(t, err)
	assert.Equal(t, `["books"]`, value)

	// Перезапись того же ключа
	require.NoError(t, store.Set(ctx, "i:1", `["travel"]`, 0))
	value, err = store.Get(ctx, "i:1")
	require.NoError(t, err)
	assert.Equal(t, `["travel"]`, value)
}

func TestStore_TTL(t *testing.T) {
	ctx := context.Background()
	store := New()

	require.NoError(t, store.Set(ctx, "uid:abc", "5", 10*time.Millisecond))

	value, err := store.Get(ctx, "uid:abc")
	require.NoError(t, err)
	assert.Equal(t, "5", value)

	time.Sleep(20 * time.Millisecond)

	// Истекший ключ неотличим от отсутствующего
	_, err = store.Get(ctx, "uid:abc")
	assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)
}

func TestStore_PurgeExpired(t *testing.T) {
	ctx := context.Background()
	store := New()

	require.NoError(t, store.Set(ctx, "expired", "1", 5*time.Millisecond))
	require.NoError(t, store.Set(ctx, "forever", "2", 0))
	require.NoError(t, store.Set(ctx, "alive", "3", time.Hour))

	time.Sleep(10 * time.Millisecond)

	deleted, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.Equal(t, 2, store.Len())

	_, err = store.Get(ctx, "expired")
	assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)
}
