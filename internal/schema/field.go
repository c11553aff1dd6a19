package schema

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Kind тип поля запроса. Определяет формат значения и его "пустое" значение
type Kind int

const (
	KindChar      Kind = iota // произвольная строка
	KindArguments             // произвольный JSON-объект
	KindEmail                 // строка, содержащая @
	KindPhone                 // строка или число: 11 цифр, первая 7
	KindDate                  // строка в формате DD.MM.YYYY
	KindBirthday              // дата рождения: не в будущем, возраст не старше 70 лет
	KindGender                // целое число 0, 1 или 2
	KindClientIDs             // непустой список целых чисел
)

// MaxAgeYears максимальный допустимый возраст для поля KindBirthday
const MaxAgeYears = 70

// DateLayout формат дат в запросах (DD.MM.YYYY)
const DateLayout = "02.01.2006"

// FieldSpec декларативное описание одного поля запроса.
// Required разрешает или запрещает отсутствие поля, Nullable - явно
// переданное пустое значение (null, "", пустой список, 0 для пола).
// Оси независимы: поле может быть обязательным, но допускать пустоту.
type FieldSpec struct {
	Name     string
	Required bool
	Nullable bool
	Kind     Kind
}

// Value типизированное значение поля после успешной валидации
type Value struct {
	kind  Kind
	empty bool

	str  string
	dict map[string]any
	date time.Time
	num  int64
	ids  []int64
}

// Empty сообщает, является ли значение "пустым" для своего типа
func (v Value) Empty() bool {
	return v.empty
}

// Validate проверяет одно значение по правилам поля.
// present=false означает, что ключ отсутствовал в запросе; явный null
// считается присутствующим пустым значением. Возвращает типизированное
// значение (ok=true, если значение сохранено) либо ошибку валидации.
func (f FieldSpec) Validate(raw any, present bool) (Value, bool, *FieldError) {
	if !present {
		if f.Required {
			return Value{}, false, &FieldError{Field: f.Name, Kind: ErrKindMissingField, Message: "обязательное поле отсутствует"}
		}
		return Value{}, false, nil
	}

	// Явный null: допустим только для nullable-полей, значение не сохраняем,
	// чтобы null был неотличим от отсутствия для межполевых правил
	if raw == nil {
		if !f.Nullable {
			return Value{}, false, &FieldError{Field: f.Name, Kind: ErrKindEmptyNotAllowed, Message: "поле не может быть пустым"}
		}
		return Value{}, false, nil
	}

	value, ferr := f.parse(raw)
	if ferr != nil {
		return Value{}, false, ferr
	}

	if value.empty && !f.Nullable {
		return Value{}, false, &FieldError{Field: f.Name, Kind: ErrKindEmptyNotAllowed, Message: "поле не может быть пустым"}
	}

	return value, true, nil
}

// parse разбирает сырое JSON-значение в типизированное по виду поля
func (f FieldSpec) parse(raw any) (Value, *FieldError) {
	switch f.Kind {
	case KindChar:
		return f.parseChar(raw)
	case KindArguments:
		return f.parseArguments(raw)
	case KindEmail:
		return f.parseEmail(raw)
	case KindPhone:
		return f.parsePhone(raw)
	case KindDate:
		return f.parseDate(raw, false)
	case KindBirthday:
		return f.parseDate(raw, true)
	case KindGender:
		return f.parseGender(raw)
	case KindClientIDs:
		return f.parseClientIDs(raw)
	default:
		return Value{}, &FieldError{Field: f.Name, Kind: ErrKindInvalidFormat, Message: "неизвестный тип поля"}
	}
}

func (f FieldSpec) parseChar(raw any) (Value, *FieldError) {
	s, ok := raw.(string)
	if !ok {
		return Value{}, &FieldError{Field: f.Name, Kind: ErrKindInvalidFormat, Message: "поле должно быть строкой"}
	}
	return Value{kind: f.Kind, str: s, empty: s == ""}, nil
}

func (f FieldSpec) parseArguments(raw any) (Value, *FieldError) {
	d, ok := raw.(map[string]any)
	if !ok {
		return Value{}, &FieldError{Field: f.Name, Kind: ErrKindInvalidFormat, Message: "поле должно быть объектом"}
	}
	return Value{kind: f.Kind, dict: d, empty: len(d) == 0}, nil
}

func (f FieldSpec) parseEmail(raw any) (Value, *FieldError) {
	s, ok := raw.(string)
	if !ok {
		return Value{}, &FieldError{Field: f.Name, Kind: ErrKindInvalidFormat, Message: "email должен быть строкой"}
	}
	if s == "" {
		return Value{kind: f.Kind, empty: true}, nil
	}
	if !strings.Contains(s, "@") {
		return Value{}, &FieldError{Field: f.Name, Kind: ErrKindInvalidFormat, Message: "email должен содержать символ @"}
	}
	return Value{kind: f.Kind, str: s}, nil
}

func (f FieldSpec) parsePhone(raw any) (Value, *FieldError) {
	var s string
	switch v := raw.(type) {
	case string:
		s = v
	default:
		n, ok := toInt64(raw)
		if !ok {
			return Value{}, &FieldError{Field: f.Name, Kind: ErrKindInvalidFormat, Message: "номер телефона должен быть строкой или числом"}
		}
		s = strconv.FormatInt(n, 10)
	}

	if s == "" {
		return Value{kind: f.Kind, empty: true}, nil
	}
	if len(s) != 11 || !allDigits(s) {
		return Value{}, &FieldError{Field: f.Name, Kind: ErrKindInvalidFormat, Message: "номер телефона должен содержать ровно 11 цифр"}
	}
	if s[0] != '7' {
		return Value{}, &FieldError{Field: f.Name, Kind: ErrKindInvalidFormat, Message: "номер телефона должен начинаться с 7"}
	}
	return Value{kind: f.Kind, str: s}, nil
}

func (f FieldSpec) parseDate(raw any, birthday bool) (Value, *FieldError) {
	s, ok := raw.(string)
	if !ok {
		return Value{}, &FieldError{Field: f.Name, Kind: ErrKindInvalidFormat, Message: "дата должна быть строкой в формате DD.MM.YYYY"}
	}
	if s == "" {
		return Value{kind: f.Kind, empty: true}, nil
	}

	date, err := time.Parse(DateLayout, s)
	if err != nil {
		return Value{}, &FieldError{Field: f.Name, Kind: ErrKindInvalidFormat, Message: "дата должна быть в формате DD.MM.YYYY"}
	}

	if birthday {
		now := time.Now()
		if date.After(now) {
			return Value{}, &FieldError{Field: f.Name, Kind: ErrKindInvalidFormat, Message: "дата рождения не может быть в будущем"}
		}
		if date.AddDate(MaxAgeYears, 0, 0).Before(now) {
			return Value{}, &FieldError{Field: f.Name, Kind: ErrKindInvalidFormat, Message: "возраст не должен превышать 70 лет"}
		}
	}

	return Value{kind: f.Kind, str: s, date: date}, nil
}

func (f FieldSpec) parseGender(raw any) (Value, *FieldError) {
	n, ok := toInt64(raw)
	if !ok {
		return Value{}, &FieldError{Field: f.Name, Kind: ErrKindInvalidFormat, Message: "пол должен быть числом 0, 1 или 2"}
	}
	if n < 0 || n > 2 {
		return Value{}, &FieldError{Field: f.Name, Kind: ErrKindInvalidFormat, Message: "пол должен быть числом 0, 1 или 2"}
	}
	// 0 ("unknown") - валидное, но пустое значение своего типа
	return Value{kind: f.Kind, num: n, empty: n == 0}, nil
}

func (f FieldSpec) parseClientIDs(raw any) (Value, *FieldError) {
	list, ok := raw.([]any)
	if !ok {
		return Value{}, &FieldError{Field: f.Name, Kind: ErrKindInvalidFormat, Message: "список ID клиентов должен быть массивом"}
	}
	if len(list) == 0 {
		return Value{kind: f.Kind, ids: []int64{}, empty: true}, nil
	}

	ids := make([]int64, 0, len(list))
	for _, item := range list {
		id, ok := toInt64(item)
		if !ok {
			return Value{}, &FieldError{Field: f.Name, Kind: ErrKindInvalidFormat, Message: "список ID клиентов должен содержать только целые числа"}
		}
		ids = append(ids, id)
	}
	return Value{kind: f.Kind, ids: ids}, nil
}

// toInt64 приводит JSON-число к int64. Декодер запросов использует
// json.Number, но тесты и встроенные схемы могут передавать обычные числа
func toInt64(raw any) (int64, bool) {
	switch v := raw.(type) {
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	default:
		return 0, false
	}
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
