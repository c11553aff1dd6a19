package scoring

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ScoringService/internal/infra/storage/kvstore"
	"github.com/m04kA/SMC-ScoringService/pkg/metrics"
)

// Weights веса слагаемых скоринга
type Weights struct {
	Phone    float64
	Email    float64
	Birthday float64
	Name     float64
}

// Input валидированные поля запроса online_score.
// Пустая строка / nil / нулевой пол означают отсутствие значения
type Input struct {
	Phone     string
	Email     string
	FirstName string
	LastName  string
	Birthday  *time.Time
	Gender    int64
}

// Service вычисляет скоринг по валидированным полям запроса.
// Кеш в хранилище best-effort: недоступность хранилища никогда не
// приводит к ошибке запроса, скоринг просто вычисляется заново
type Service struct {
	store     Store
	logger    Logger
	weights   Weights
	cacheTTL  time.Duration
	collector *metrics.Metrics
}

// NewService создает новый экземпляр сервиса скоринга.
// collector может быть nil, если метрики выключены
func NewService(store Store, logger Logger, weights Weights, cacheTTL time.Duration, collector *metrics.Metrics) *Service {
	return &Service{
		store:     store,
		logger:    logger,
		weights:   weights,
		cacheTTL:  cacheTTL,
		collector: collector,
	}
}

// Score вычисляет скоринг. Детерминированная функция от того, какие
// поля непусты: телефон и email дают по полному весу, пара
// день рождения + пол и пара имя + фамилия - по весу за пару.
// Результат кешируется по отпечатку идентифицирующих полей
func (s *Service) Score(ctx context.Context, input Input) float64 {
	key := s.fingerprint(input)

	if score, ok := s.cacheGet(ctx, key); ok {
		return score
	}

	var score float64
	if input.Phone != "" {
		score += s.weights.Phone
	}
	if input.Email != "" {
		score += s.weights.Email
	}
	if input.Birthday != nil && input.Gender != 0 {
		score += s.weights.Birthday
	}
	if input.FirstName != "" && input.LastName != "" {
		score += s.weights.Name
	}

	s.cacheSet(ctx, key, score)

	return score
}

// fingerprint детерминированный ключ кеша из идентифицирующих полей.
// MD5 здесь не криптография, а стабильный компактный отпечаток
func (s *Service) fingerprint(input Input) string {
	birthday := ""
	if input.Birthday != nil {
		birthday = input.Birthday.Format("20060102")
	}

	sum := md5.Sum([]byte(input.FirstName + input.LastName + input.Phone + birthday))
	return "uid:" + hex.EncodeToString(sum[:])
}

// cacheGet читает скоринг из кеша. Любая ошибка хранилища считается промахом
func (s *Service) cacheGet(ctx context.Context, key string) (float64, bool) {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kvstore.ErrKeyNotFound) {
			s.logger.Warn("Score cache unavailable, recomputing: %v", err)
			s.observeCache("error")
			return 0, false
		}
		s.observeCache("miss")
		return 0, false
	}

	score, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		s.logger.Warn("Malformed cached score %q for key %s: %v", raw, key, err)
		s.observeCache("error")
		return 0, false
	}

	s.observeCache("hit")
	return score, true
}

// cacheSet пишет скоринг в кеш. Ошибка записи не влияет на результат
func (s *Service) cacheSet(ctx context.Context, key string, score float64) {
	value := strconv.FormatFloat(score, 'f', -1, 64)
	if err := s.store.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Warn("Failed to store score in cache: %v", err)
	}
}

func (s *Service) observeCache(outcome string) {
	if s.collector == nil {
		return
	}
	s.collector.CacheOperationsTotal.WithLabelValues(outcome).Inc()
}
