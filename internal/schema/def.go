package schema

import (
	"fmt"
	"time"
)

// CrossRule межполевое правило схемы. Проверяется после успешной валидации
// всех полей; при нарушении в список ошибок попадает одна ошибка с именем
// правила.
type CrossRule struct {
	Name  string
	Check func(v *Values) bool
}

// Def схема запроса: упорядоченный набор описаний полей с уникальными
// именами плюс межполевые правила. Схемы создаются один раз при старте
// процесса, неизменяемы и безопасно разделяются между запросами.
type Def struct {
	fields []FieldSpec
	rules  []CrossRule
}

// NewDef создает схему запроса. Дубликат имени поля - ошибка программиста,
// схема объявляется статически, поэтому здесь паника, а не error.
func NewDef(fields []FieldSpec, rules ...CrossRule) *Def {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, ok := seen[f.Name]; ok {
			panic(fmt.Sprintf("schema: duplicate field name %q", f.Name))
		}
		seen[f.Name] = struct{}{}
	}

	return &Def{fields: fields, rules: rules}
}

// Fields возвращает копию описаний полей схемы
func (d *Def) Fields() []FieldSpec {
	out := make([]FieldSpec, len(d.fields))
	copy(out, d.fields)
	return out
}

// Validate проверяет сырые данные запроса по схеме.
// Ошибки всех полей накапливаются, а не прерывают проход на первой:
// результат не зависит от порядка объявления полей. Межполевые правила
// проверяются только когда пополевая валидация прошла целиком.
func (d *Def) Validate(raw map[string]any) (*Values, FieldErrors) {
	values := &Values{values: make(map[string]Value, len(d.fields))}

	var errs FieldErrors
	for _, field := range d.fields {
		rawValue, present := raw[field.Name]

		value, ok, ferr := field.Validate(rawValue, present)
		if ferr != nil {
			errs = append(errs, *ferr)
			continue
		}
		if ok {
			values.values[field.Name] = value
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	for _, rule := range d.rules {
		if !rule.Check(values) {
			errs = append(errs, FieldError{
				Kind:    ErrKindCrossField,
				Message: rule.Name,
			})
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return values, nil
}

// Values типизированные значения запроса после успешной валидации.
// Создаются на время обработки одного запроса и не переживают его.
type Values struct {
	values map[string]Value
}

// Has сообщает, было ли поле передано со значением, отличным от null.
// Явный null и отсутствие поля неотличимы (как и в JSON-словаре запроса)
func (v *Values) Has(name string) bool {
	_, ok := v.values[name]
	return ok
}

// NonEmpty сообщает, что поле передано и не является пустым для своего типа
func (v *Values) NonEmpty(name string) bool {
	value, ok := v.values[name]
	return ok && !value.empty
}

// String возвращает строковое значение поля (CHAR, EMAIL, PHONE, DATE)
func (v *Values) String(name string) string {
	return v.values[name].str
}

// Dict возвращает значение поля-объекта (ARGUMENTS)
func (v *Values) Dict(name string) map[string]any {
	return v.values[name].dict
}

// Date возвращает разобранную дату поля (DATE, BIRTHDAY)
func (v *Values) Date(name string) (time.Time, bool) {
	value, ok := v.values[name]
	if !ok || value.empty {
		return time.Time{}, false
	}
	return value.date, true
}

// Int возвращает целочисленное значение поля (GENDER)
func (v *Values) Int(name string) int64 {
	return v.values[name].num
}

// ClientIDs возвращает список ID клиентов (CLIENT_IDS)
func (v *Values) ClientIDs(name string) []int64 {
	return v.values[name].ids
}

// PairPresent межполевое правило "оба поля переданы не-null".
// Используется схемой online_score: хотя бы одна из пар
// phone+email, first_name+last_name, gender+birthday
func PairPresent(a, b string) func(v *Values) bool {
	return func(v *Values) bool {
		return v.Has(a) && v.Has(b)
	}
}

// AnyOf объединяет проверки по ИЛИ
func AnyOf(checks ...func(v *Values) bool) func(v *Values) bool {
	return func(v *Values) bool {
		for _, check := range checks {
			if check(v) {
				return true
			}
		}
		return false
	}
}
