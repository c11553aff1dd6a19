package handlers

import (
	"encoding/json"
	"net/http"
)

// RespondJSON пишет JSON-ответ с указанным HTTP статусом
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// DecodeJSONMap разбирает тело запроса в словарь. Числа сохраняются как
// json.Number: 11-значные телефоны и int64 ID клиентов не должны терять
// точность при прохождении через float64
func DecodeJSONMap(r *http.Request) (map[string]any, error) {
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()

	var body map[string]any
	if err := decoder.Decode(&body); err != nil {
		return nil, err
	}

	return body, nil
}
