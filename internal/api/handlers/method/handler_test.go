package method_test

import (
	"bytes"
	"context"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScoringService/internal/api/handlers/method"
	"github.com/m04kA/SMC-ScoringService/internal/config"
	"github.com/m04kA/SMC-ScoringService/internal/infra/storage/memstore"
	"github.com/m04kA/SMC-ScoringService/internal/service/dispatch"
	"github.com/m04kA/SMC-ScoringService/internal/service/interests"
	"github.com/m04kA/SMC-ScoringService/internal/service/scoring"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type response struct {
	Response json.RawMessage `json:"response"`
	Error    string          `json:"error"`
	Code     int             `json:"code"`
}

func newTestHandler(t *testing.T) (*method.Handler, *memstore.Store) {
	t.Helper()

	store := memstore.New()
	weights := scoring.Weights{Phone: 1.5, Email: 1.5, Birthday: 1.5, Name: 0.5}
	scoringSvc := scoring.NewService(store, nopLogger{}, weights, time.Hour, nil)
	interestsSvc := interests.NewService(store, nopLogger{})

	authCfg := config.AuthConfig{Salt: "Otus", AdminSalt: "42", AdminLogin: "admin"}
	dispatcher := dispatch.NewService(authCfg, 42, scoringSvc, interestsSvc, nopLogger{})

	return method.NewHandler(dispatcher, nopLogger{}, nil), store
}

func userToken(account, login string) string {
	sum := sha512.Sum512([]byte(account + login + "Otus"))
	return hex.EncodeToString(sum[:])
}

func doRequest(t *testing.T, h *method.Handler, body []byte) (*httptest.ResponseRecorder, response) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/method", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	var resp response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func marshalEnvelope(t *testing.T, methodName string, args map[string]any) []byte {
	t.Helper()

	body, err := json.Marshal(map[string]any{
		"account":   "horns&hoofs",
		"login":     "h&f",
		"method":    methodName,
		"token":     userToken("horns&hoofs", "h&f"),
		"arguments": args,
	})
	require.NoError(t, err)
	return body
}

func TestHandler_Handle_OnlineScore(t *testing.T) {
	h, _ := newTestHandler(t)

	rec, resp := doRequest(t, h, marshalEnvelope(t, "online_score", map[string]any{
		"phone":      "79175002040",
		"email":      "stupnikov@otus.ru",
		"first_name": "Станислав",
		"last_name":  "Ступников",
		"birthday":   "01.01.1990",
		"gender":     1,
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 200, resp.Code)
	assert.Empty(t, resp.Error)
	assert.JSONEq(t, `{"score": 5}`, string(resp.Response))
}

func TestHandler_Handle_ClientsInterests(t *testing.T) {
	h, store := newTestHandler(t)
	require.NoError(t, store.Set(context.Background(), "i:1", `["books", "travel"]`, 0))

	rec, resp := doRequest(t, h, marshalEnvelope(t, "clients_interests", map[string]any{
		"client_ids": []int64{1, 2},
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 200, resp.Code)
	assert.JSONEq(t, `{"1": ["books", "travel"], "2": []}`, string(resp.Response))
}

func TestHandler_Handle_MalformedJSON(t *testing.T) {
	h, _ := newTestHandler(t)

	rec, resp := doRequest(t, h, []byte(`{"account": "horns&hoofs",`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 400, resp.Code)
	assert.Equal(t, "Bad Request", resp.Error)
	assert.Nil(t, resp.Response)
}

func TestHandler_Handle_Forbidden(t *testing.T) {
	h, _ := newTestHandler(t)

	body, err := json.Marshal(map[string]any{
		"account":   "horns&hoofs",
		"login":     "h&f",
		"method":    "online_score",
		"token":     "sdd",
		"arguments": map[string]any{"phone": "79175002040", "email": "stupnikov@otus.ru"},
	})
	require.NoError(t, err)

	rec, resp := doRequest(t, h, body)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 403, resp.Code)
	assert.Equal(t, "Forbidden", resp.Error)
}

func TestHandler_Handle_InvalidArguments(t *testing.T) {
	h, _ := newTestHandler(t)

	rec, resp := doRequest(t, h, marshalEnvelope(t, "online_score", map[string]any{
		"phone": "89175002040",
		"email": "stupnikovotus.ru",
	}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, 422, resp.Code)
	// Текст ошибки перечисляет все невалидные поля
	assert.Contains(t, resp.Error, "phone")
	assert.Contains(t, resp.Error, "email")
}

func TestHandler_Handle_MethodNotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	rec, resp := doRequest(t, h, marshalEnvelope(t, "online_scoring", map[string]any{
		"phone": "79175002040",
		"email": "stupnikov@otus.ru",
	}))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 404, resp.Code)
	assert.NotEmpty(t, resp.Error)
}

func TestHandler_Handle_InvalidEnvelope(t *testing.T) {
	h, _ := newTestHandler(t)

	body, err := json.Marshal(map[string]any{"account": "horns&hoofs"})
	require.NoError(t, err)

	rec, resp := doRequest(t, h, body)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, 422, resp.Code)
	assert.NotEmpty(t, resp.Error)
}

func TestHandler_Handle_LargePhoneSurvivesDecoding(t *testing.T) {
	h, _ := newTestHandler(t)

	// Телефон числом: декодер не должен терять точность int64
	rec, resp := doRequest(t, h, marshalEnvelope(t, "online_score", map[string]any{
		"phone": 79175002040,
		"email": "stupnikov@otus.ru",
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"score": 3}`, string(resp.Response))
}
