package schema

import "strings"

// ErrorKind вид ошибки валидации поля
type ErrorKind int

const (
	// ErrKindMissingField обязательное поле отсутствует в запросе
	ErrKindMissingField ErrorKind = iota

	// ErrKindEmptyNotAllowed поле передано пустым, но пустые значения запрещены
	ErrKindEmptyNotAllowed

	// ErrKindInvalidFormat значение поля не соответствует формату своего типа
	ErrKindInvalidFormat

	// ErrKindCrossField нарушено правило, охватывающее несколько полей
	ErrKindCrossField
)

// FieldError ошибка валидации одного поля (или межполевого правила)
type FieldError struct {
	Field   string
	Kind    ErrorKind
	Message string
}

// Error реализует интерфейс error
func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// FieldErrors накопленный список ошибок валидации.
// Валидация не останавливается на первой ошибке: клиент получает
// полный перечень проблемных полей за один проход.
type FieldErrors []FieldError

// Error объединяет все ошибки в одно сообщение
func (e FieldErrors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return strings.Join(parts, "; ")
}

// Has проверяет наличие ошибки указанного вида по указанному полю
func (e FieldErrors) Has(field string, kind ErrorKind) bool {
	for _, fe := range e {
		if fe.Field == field && fe.Kind == kind {
			return true
		}
	}
	return false
}
