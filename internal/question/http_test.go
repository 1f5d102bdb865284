package question_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/db/memory"
	"github.com/gokatarajesh/trivia-api/internal/question"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

func newTestMux(store question.Store) *http.ServeMux {
	h := question.NewHTTPHandlers(newService(store), zerolog.Nop())
	mux := http.NewServeMux()
	mux.HandleFunc("GET /categories", h.ListCategories)
	mux.HandleFunc("GET /categories/{id}/questions", h.ListCategoryQuestions)
	mux.HandleFunc("GET /questions", h.ListQuestions)
	mux.HandleFunc("POST /questions", h.CreateQuestion)
	mux.HandleFunc("POST /questions/search", h.SearchQuestions)
	mux.HandleFunc("DELETE /questions/{id}", h.DeleteQuestion)
	return mux
}

func serve(mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func assertCannedError(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, rec.Code)
	var body httperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, status, body.Error)
	assert.Equal(t, httperrors.Message(status), body.Message)
}

func TestHTTPListCategories(t *testing.T) {
	rec := serve(newTestMux(seededStore(t, 0)), http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	categories := body["categories"].(map[string]interface{})
	assert.Equal(t, "Science", categories["1"])
	assert.Len(t, categories, 6)
}

func TestHTTPListCategoriesEmpty(t *testing.T) {
	rec := serve(newTestMux(memory.NewStore(nil)), http.MethodGet, "/categories", "")
	assertCannedError(t, rec, http.StatusNotFound)
}

func TestHTTPListQuestions(t *testing.T) {
	mux := newTestMux(seededStore(t, 12))

	rec := serve(mux, http.MethodGet, "/questions?page=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Len(t, body["questions"], 2)
	assert.Equal(t, float64(12), body["total_questions"])
	assert.Nil(t, body["current_category"])
	assert.Contains(t, body, "current_category")
	assert.Len(t, body["categories"], 6)

	assertCannedError(t, serve(mux, http.MethodGet, "/questions?page=1000", ""), http.StatusNotFound)
}

func TestHTTPCreateQuestion(t *testing.T) {
	store := seededStore(t, 1)
	mux := newTestMux(store)

	rec := serve(mux, http.MethodPost, "/questions",
		`{"question":"Heaviest organ?","answer":"Liver","category":"1","difficulty":4}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["created"])
	assert.Equal(t, float64(2), body["total_questions"])
	assert.Len(t, body["questions"], 2)
}

func TestHTTPCreateQuestionRejectsInvalidInput(t *testing.T) {
	mux := newTestMux(seededStore(t, 0))

	assertCannedError(t, serve(mux, http.MethodPost, "/questions", `{"question":"Q?"}`), http.StatusUnprocessableEntity)
	assertCannedError(t, serve(mux, http.MethodPost, "/questions",
		`{"question":"Q?","answer":"A","category":1,"difficulty":9}`), http.StatusUnprocessableEntity)
	assertCannedError(t, serve(mux, http.MethodPost, "/questions",
		`{"question":"Q?","answer":"A","category":"x","difficulty":1}`), http.StatusUnprocessableEntity)
	assertCannedError(t, serve(mux, http.MethodPost, "/questions", `{"question":`), http.StatusBadRequest)
	assertCannedError(t, serve(mux, http.MethodPost, "/questions", ``), http.StatusBadRequest)
}

func TestHTTPDeleteQuestion(t *testing.T) {
	mux := newTestMux(seededStore(t, 2))

	rec := serve(mux, http.MethodDelete, "/questions/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(2), body["deleted"])

	assertCannedError(t, serve(mux, http.MethodDelete, "/questions/2", ""), http.StatusNotFound)
	assertCannedError(t, serve(mux, http.MethodDelete, "/questions/abc", ""), http.StatusBadRequest)
}

func TestHTTPDeleteQuestionStoreFailure(t *testing.T) {
	mux := newTestMux(&failingStore{Store: seededStore(t, 1), deleteErr: errStoreDown})
	assertCannedError(t, serve(mux, http.MethodDelete, "/questions/1", ""), http.StatusUnprocessableEntity)
}

func TestHTTPSearchQuestions(t *testing.T) {
	store := memory.NewStore(question.DefaultCategories)
	store.Seed(
		question.NewQuestion{Question: "What is the title of the film?", Answer: "A", Category: 5, Difficulty: 2},
		question.NewQuestion{Question: "Who painted it?", Answer: "B", Category: 2, Difficulty: 3},
	)
	mux := newTestMux(store)

	rec := serve(mux, http.MethodPost, "/questions/search", `{"searchTerm":"TITLE"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["total_questions"])
	assert.Nil(t, body["current_category"])

	assertCannedError(t, serve(mux, http.MethodPost, "/questions/search", `{"searchTerm":"zzz"}`), http.StatusNotFound)
	assertCannedError(t, serve(mux, http.MethodPost, "/questions/search", `{"searchTerm":""}`), http.StatusUnprocessableEntity)
	assertCannedError(t, serve(mux, http.MethodPost, "/questions/search", `not json`), http.StatusBadRequest)
}

func TestHTTPListCategoryQuestions(t *testing.T) {
	store := memory.NewStore(question.DefaultCategories)
	store.Seed(
		question.NewQuestion{Question: "Q1", Answer: "A", Category: 4, Difficulty: 2},
		question.NewQuestion{Question: "Q2", Answer: "A", Category: 1, Difficulty: 2},
	)
	mux := newTestMux(store)

	rec := serve(mux, http.MethodGet, "/categories/4/questions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "History", body["current_category"])
	assert.Equal(t, float64(1), body["total_questions"])

	assertCannedError(t, serve(mux, http.MethodGet, "/categories/42/questions", ""), http.StatusNotFound)
	assertCannedError(t, serve(mux, http.MethodGet, "/categories/x/questions", ""), http.StatusBadRequest)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, question.StatusFor(question.ErrNotFound))
	assert.Equal(t, http.StatusUnprocessableEntity, question.StatusFor(&question.ValidationError{Message: "bad"}))
	assert.Equal(t, http.StatusBadRequest, question.StatusFor(question.ErrBadRequest))
	assert.Equal(t, http.StatusInternalServerError, question.StatusFor(errStoreDown))
}

func TestHTTPListQuestionsHugePageIsNotFound(t *testing.T) {
	mux := newTestMux(seededStore(t, 12))
	assertCannedError(t, serve(mux, http.MethodGet, "/questions?page=1844674407370955162", ""), http.StatusNotFound)
}
