package domain

// Коды ответов API. Совпадают с HTTP статусами, но живут в конверте ответа:
// клиент читает code из тела, транспорт дублирует его в статусной строке.
const (
	CodeOK             = 200
	CodeBadRequest     = 400
	CodeForbidden      = 403
	CodeNotFound       = 404
	CodeInvalidRequest = 422
	CodeInternalError  = 500
)

// ErrorTexts тексты ошибок по умолчанию для кодов ответа
var ErrorTexts = map[int]string{
	CodeBadRequest:     "Bad Request",
	CodeForbidden:      "Forbidden",
	CodeNotFound:       "Not Found",
	CodeInvalidRequest: "Invalid Request",
	CodeInternalError:  "Internal Server Error",
}

// ErrorText возвращает текст ошибки для кода ответа
func ErrorText(code int) string {
	if text, ok := ErrorTexts[code]; ok {
		return text
	}
	return "Unknown Error"
}
