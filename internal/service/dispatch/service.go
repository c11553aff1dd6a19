package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScoringService/internal/config"
)

// Service диспетчер запросов API. Однопроходный конвейер: валидация
// конверта, аутентификация, выбор обработчика метода, валидация его
// аргументов его собственной схемой, выполнение бизнес-логики.
// Не хранит состояния между запросами и безопасен для конкурентного
// использования
type Service struct {
	salt       string
	adminSalt  string
	adminLogin string
	methods    map[string]MethodHandler
	logger     Logger

	// now переопределяется в тестах для проверки административного токена
	now func() time.Time
}

// NewService создает диспетчер с обоими методами API
func NewService(authCfg config.AuthConfig, adminScore float64, scoreSvc ScoreService, interestsSvc InterestsService, logger Logger) *Service {
	return &Service{
		salt:       authCfg.Salt,
		adminSalt:  authCfg.AdminSalt,
		adminLogin: authCfg.AdminLogin,
		logger:     logger,
		now:        time.Now,
		methods: map[string]MethodHandler{
			MethodOnlineScore:      newOnlineScoreHandler(scoreSvc, adminScore, logger),
			MethodClientsInterests: newClientsInterestsHandler(interestsSvc, logger),
		},
	}
}

// Dispatch обрабатывает один конверт запроса и возвращает полезную
// нагрузку ответа. Все отказы выражены sentinel-ошибками пакета;
// транспортный слой переводит их в коды ответа
func (s *Service) Dispatch(ctx context.Context, body map[string]any, requestID string) (any, error) {
	envelope, errs := envelopeSchema.Validate(body)
	if errs != nil {
		return nil, failure(ErrInvalidRequest, errs.Error())
	}

	account := envelope.String(fieldAccount)
	login := envelope.String(fieldLogin)
	isAdmin := login == s.adminLogin

	if !s.authenticate(account, login, envelope.String(fieldToken), isAdmin, s.now()) {
		s.logger.Warn("Authentication failed for login %q (request_id=%s)", login, requestID)
		return nil, failure(ErrForbidden, "неверный токен")
	}

	method := envelope.String(fieldMethod)
	handler, ok := s.methods[method]
	if !ok {
		return nil, failure(ErrMethodNotFound, fmt.Sprintf("неизвестный метод: %s", method))
	}

	args, errs := handler.Schema().Validate(envelope.Dict(fieldArguments))
	if errs != nil {
		return nil, failure(ErrInvalidArguments, errs.Error())
	}

	payload, err := handler.Handle(ctx, &Request{
		Args:      args,
		Account:   account,
		Login:     login,
		IsAdmin:   isAdmin,
		RequestID: requestID,
	})
	if err != nil {
		return nil, failure(ErrInternal, fmt.Sprintf("%s: %v", method, err))
	}

	return payload, nil
}
