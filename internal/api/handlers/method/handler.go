package method

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ScoringService/internal/api/handlers"
	"github.com/m04kA/SMC-ScoringService/internal/api/handlers/method/models"
	"github.com/m04kA/SMC-ScoringService/internal/api/middleware"
	"github.com/m04kA/SMC-ScoringService/internal/domain"
	"github.com/m04kA/SMC-ScoringService/internal/service/dispatch"
	"github.com/m04kA/SMC-ScoringService/pkg/metrics"
)

// Handler транспортный слой метода POST /method: разбор тела,
// вызов диспетчера, перевод отказов в конверт ответа
type Handler struct {
	dispatcher Dispatcher
	logger     Logger
	collector  *metrics.Metrics
}

// NewHandler создает обработчик. collector может быть nil,
// если метрики выключены
func NewHandler(dispatcher Dispatcher, logger Logger, collector *metrics.Metrics) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		logger:     logger,
		collector:  collector,
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.RequestID(r.Context())

	// Паника обработчика не должна ронять сервис и раскрывать детали
	defer func() {
		if p := recover(); p != nil {
			h.logger.Error("Panic while handling request %s: %v", requestID, p)
			h.respondError(w, "", domain.CodeInternalError, domain.ErrorText(domain.CodeInternalError))
		}
	}()

	body, err := handlers.DecodeJSONMap(r)
	if err != nil {
		h.logger.Warn("Failed to decode request body (request_id=%s): %v", requestID, err)
		h.respondError(w, "", domain.CodeBadRequest, domain.ErrorText(domain.CodeBadRequest))
		return
	}

	payload, err := h.dispatcher.Dispatch(r.Context(), body, requestID)
	if err != nil {
		h.respondDispatchError(w, requestID, body, err)
		return
	}

	method, _ := body["method"].(string)
	h.logger.Info("Request completed: method=%s code=%d request_id=%s", method, domain.CodeOK, requestID)
	h.observe(method, domain.CodeOK)

	handlers.RespondJSON(w, domain.CodeOK, models.Success(domain.CodeOK, payload))
}

// respondDispatchError переводит отказ диспетчера в конверт ответа.
// Наружу уходит только клиентское сообщение RequestError; внутренние
// ошибки подменяются стандартным текстом
func (h *Handler) respondDispatchError(w http.ResponseWriter, requestID string, body map[string]any, err error) {
	method, _ := body["method"].(string)

	var code int
	var message string

	var reqErr *dispatch.RequestError
	clientMessage := ""
	if errors.As(err, &reqErr) {
		clientMessage = reqErr.Message
	}

	switch {
	case errors.Is(err, dispatch.ErrInvalidRequest), errors.Is(err, dispatch.ErrInvalidArguments):
		code = domain.CodeInvalidRequest
		message = clientMessage
	case errors.Is(err, dispatch.ErrForbidden):
		code = domain.CodeForbidden
		message = domain.ErrorText(code)
	case errors.Is(err, dispatch.ErrMethodNotFound):
		code = domain.CodeNotFound
		message = clientMessage
	default:
		code = domain.CodeInternalError
		message = domain.ErrorText(code)
		h.logger.Error("Unexpected error (request_id=%s): %v", requestID, err)
	}

	if message == "" {
		message = domain.ErrorText(code)
	}

	h.logger.Info("Request failed: method=%s code=%d request_id=%s error=%v", method, code, requestID, err)
	h.respondError(w, method, code, message)
}

func (h *Handler) respondError(w http.ResponseWriter, method string, code int, message string) {
	h.observe(method, code)
	handlers.RespondJSON(w, code, models.Failure(code, message))
}

func (h *Handler) observe(method string, code int) {
	if h.collector == nil {
		return
	}
	if method == "" {
		method = "unknown"
	}
	h.collector.APIResponsesTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
}
