package models

// APIResponse конверт ответа API. Успех несет response, отказ - error;
// code дублирует HTTP статус в теле ответа
type APIResponse struct {
	Response any    `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
	Code     int    `json:"code"`
}

// Success конверт успешного ответа
func Success(code int, payload any) *APIResponse {
	return &APIResponse{Response: payload, Code: code}
}

// Failure конверт ответа с ошибкой
func Failure(code int, message string) *APIResponse {
	return &APIResponse{Error: message, Code: code}
}
