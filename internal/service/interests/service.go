package interests

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/m04kA/SMC-ScoringService/internal/domain"
	"github.com/m04kA/SMC-ScoringService/internal/infra/storage/kvstore"
)

// KeyPrefix префикс ключей с интересами клиентов в хранилище
const KeyPrefix = "i:"

// Service отдает интересы клиентов из внешнего хранилища
type Service struct {
	store  Store
	logger Logger
}

// NewService создает новый экземпляр сервиса интересов
func NewService(store Store, logger Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Get возвращает интересы для каждого запрошенного ID клиента.
// Каждый запрошенный ID присутствует в результате: отсутствующий ключ,
// недоступное хранилище и битый JSON дают пустой список, а не ошибку
func (s *Service) Get(ctx context.Context, clientIDs []int64) domain.ClientInterests {
	result := make(domain.ClientInterests, len(clientIDs))

	for _, clientID := range clientIDs {
		result[clientID] = s.fetch(ctx, clientID)
	}

	return result
}

// Key возвращает ключ хранилища для ID клиента
func Key(clientID int64) string {
	return KeyPrefix + strconv.FormatInt(clientID, 10)
}

func (s *Service) fetch(ctx context.Context, clientID int64) []string {
	raw, err := s.store.Get(ctx, Key(clientID))
	if err != nil {
		if !errors.Is(err, kvstore.ErrKeyNotFound) {
			s.logger.Warn("Interests store unavailable for client %d: %v", clientID, err)
		}
		return []string{}
	}

	var interests []string
	if err := json.Unmarshal([]byte(raw), &interests); err != nil {
		s.logger.Warn("Malformed interests entry for client %d: %v", clientID, err)
		return []string{}
	}

	return interests
}
