package dispatch

import (
	"context"

	"github.com/m04kA/SMC-ScoringService/internal/domain"
	"github.com/m04kA/SMC-ScoringService/internal/schema"
	"github.com/m04kA/SMC-ScoringService/internal/service/scoring"
)

// ScoreService интерфейс движка скоринга
type ScoreService interface {
	Score(ctx context.Context, input scoring.Input) float64
}

// InterestsService интерфейс движка интересов
type InterestsService interface {
	Get(ctx context.Context, clientIDs []int64) domain.ClientInterests
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MethodHandler обработчик одного метода API: схема его аргументов
// плюс бизнес-логика над валидированными значениями
type MethodHandler interface {
	Schema() *schema.Def
	Handle(ctx context.Context, req *Request) (any, error)
}

// Request валидированный запрос метода. Живет в пределах одного вызова
type Request struct {
	// Args валидированные аргументы метода
	Args *schema.Values
	// Account и Login из конверта запроса (account может быть пустым)
	Account string
	Login   string
	// IsAdmin признак административного логина
	IsAdmin bool
	// RequestID идентификатор запроса для логирования
	RequestID string
}
