package dispatch

import "errors"

var (
	// ErrInvalidRequest возвращается при невалидном конверте запроса
	ErrInvalidRequest = errors.New("service.dispatch: invalid request envelope")

	// ErrForbidden возвращается при неверной подписи запроса
	ErrForbidden = errors.New("service.dispatch: forbidden")

	// ErrMethodNotFound возвращается при неизвестном имени метода
	ErrMethodNotFound = errors.New("service.dispatch: method not found")

	// ErrInvalidArguments возвращается, когда аргументы метода не прошли
	// валидацию по схеме; сообщение перечисляет все проблемные поля
	ErrInvalidArguments = errors.New("service.dispatch: invalid method arguments")

	// ErrInternal возвращается при внутренних ошибках обработчиков
	ErrInternal = errors.New("service.dispatch: internal error")
)

// RequestError отказ обработки запроса: sentinel-ошибка для выбора кода
// ответа плюс сообщение, безопасное для показа клиенту. Внутренние
// подробности наружу не выходят - для ErrInternal сообщение не
// используется транспортным слоем
type RequestError struct {
	Kind    error
	Message string
}

// Error реализует интерфейс error
func (e *RequestError) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Message
}

// Unwrap поддерживает errors.Is по sentinel-ошибке
func (e *RequestError) Unwrap() error {
	return e.Kind
}

func failure(kind error, message string) *RequestError {
	return &RequestError{Kind: kind, Message: message}
}
