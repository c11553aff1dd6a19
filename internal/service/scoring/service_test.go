package scoring

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

func (nopLogger) Info(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{}) {}

// brokenStore имитирует недоступное хранилище
type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, error) {
	return "", errors.New("kvstore: failed to execute SQL query: connection refused")
}

func (brokenStore) Set(context.Context, string, string, time.Duration) error {
	return errors.New("kvstore: failed to execute SQL query: connection refused")
}

func defaultWeights() Weights {
	return Weights{Phone: 1.5, Email: 1.5, Birthday: 1.5, Name: 0.5}
}

func newTestService(store Store) *Service {
	return NewService(store, nopLogger{}, defaultWeights(), time.Hour, nil)
}

func fullInput() Input {
	birthday := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	return Input{
		Phone:     "79175002040",
		Email:     "stupnikov@otus.ru",
		FirstName: "a",
		LastName:  "b",
		Birthday:  &birthday,
		Gender:    1,
	}
}

func TestService_Score_Weights(t *testing.T) {
	birthday := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input Input
		want  float64
	}{
		{name: "all fields", input: fullInput(), want: 5.0},
		{
			name:  "phone and email only",
			input: Input{Phone: "79175002040", Email: "stupnikov@otus.ru"},
			want:  3.0,
		},
		{name: "phone only", input: Input{Phone: "79175002040"}, want: 1.5},
		{
			name:  "names only",
			input: Input{FirstName: "a", LastName: "b"},
			want:  0.5,
		},
		{
			name:  "birthday and gender",
			input: Input{Birthday: &birthday, Gender: 2},
			want:  1.5,
		},
		{
			name:  "birthday with unknown gender gives no bonus",
			input: Input{Birthday: &birthday, Gender: 0},
			want:  0,
		},
		{name: "nothing", input: Input{}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(memstore.New())
			assert.InDelta(t, tt.want, svc.Score(context.Background(), tt.input), 0.0001)
		})
	}
}

func TestService_Score_CacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := newTestService(store)

	first := svc.Score(ctx, fullInput())
	second := svc.Score(ctx, fullInput())

	// Повторное вычисление отдает закешированное значение
	assert.Equal(t, first, second)

	// И совпадает с вычислением без кеша
	uncached := newTestService(brokenStore{}).Score(ctx, fullInput())
	assert.Equal(t, uncached, first)
}

func TestService_Score_ReturnsCachedValue(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := newTestService(store)

	// Кладем в кеш значение, отличное от вычисляемого
	key := svc.fingerprint(fullInput())
	require.NoError(t, store.Set(ctx, key, "7.5", time.Hour))

	assert.Equal(t, 7.5, svc.Score(ctx, fullInput()))
}

func TestService_Score_StoreUnavailable(t *testing.T) {
	// Недоступное хранилище не ломает запрос: скоринг вычисляется напрямую
	svc := newTestService(brokenStore{})
	score := svc.Score(context.Background(), Input{Phone: "79175002040"})
	assert.InDelta(t, 1.5, score, 0.0001)
}

func TestService_Score_MalformedCacheEntry(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := newTestService(store)

	key := svc.fingerprint(fullInput())
	require.NoError(t, store.Set(ctx, key, "not-a-number", time.Hour))

	// Битая запись кеша игнорируется и перезаписывается свежим значением
	assert.InDelta(t, 5.0, svc.Score(ctx, fullInput()), 0.0001)

	value, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "5", value)
}

func TestService_Fingerprint_Deterministic(t *testing.T) {
	svc := newTestService(memstore.New())

	assert.Equal(t, svc.fingerprint(fullInput()), svc.fingerprint(fullInput()))
	assert.NotEqual(t, svc.fingerprint(fullInput()), svc.fingerprint(Input{Phone: "79175002041"}))
	assert.Contains(t, svc.fingerprint(Input{}), "uid:")
}
