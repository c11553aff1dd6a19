package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-ScoringService/internal/infra/storage/kvstore"
)

type entry struct {
	value     string
	expiresAt time.Time // нулевое время = без срока истечения
}

// Store потокобезопасное key-value хранилище в памяти.
// Используется при store.type = "memory" и как подмена БД в тестах.
// Семантика повторяет kvstore: истекший ключ неотличим от отсутствующего
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// New создает пустое хранилище
func New() *Store {
	return &Store{entries: make(map[string]entry)}
}

// Get возвращает значение по ключу
func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok {
		return "", kvstore.ErrKeyNotFound
	}
	if !e.expiresAt.IsZero() && !e.expiresAt.After(time.Now()) {
		return "", kvstore.ErrKeyNotFound
	}

	return e.value, nil
}

// Set сохраняет значение по ключу с временем жизни.
// ttl <= 0 означает запись без срока истечения
func (s *Store) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	s.entries[key] = e

	return nil
}

// PurgeExpired удаляет истекшие записи, возвращает количество удаленных
func (s *Store) PurgeExpired(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var deleted int64
	for key, e := range s.entries {
		if !e.expiresAt.IsZero() && !e.expiresAt.After(now) {
			delete(s.entries, key)
			deleted++
		}
	}

	return deleted, nil
}

// Len возвращает количество записей (включая истекшие, но не удаленные)
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
