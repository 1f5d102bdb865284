package question

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// HTTPHandlers exposes REST endpoints for questions and categories.
type HTTPHandlers struct {
	service *Service
	logger  zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for question endpoints.
func NewHTTPHandlers(service *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		logger:  logger.With().Str("component", "question_http").Logger(),
	}
}

type createQuestionRequest struct {
	Question   *string     `json:"question"`
	Answer     *string     `json:"answer"`
	Category   *FlexibleID `json:"category"`
	Difficulty *FlexibleID `json:"difficulty"`
}

type searchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

// ListCategories handles GET /categories
func (h *HTTPHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"categories": CategoryMap(categories),
	})
}

// ListQuestions handles GET /questions?page=N
func (h *HTTPHandlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListPage(r.Context(), pageParam(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        result.Questions,
		"total_questions":  result.Total,
		"categories":       CategoryMap(result.Categories),
		"current_category": nil,
	})
}

// CreateQuestion handles POST /questions
func (h *HTTPHandlers) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req createQuestionRequest
	if err := DecodeJSON(r.Body, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if req.Question == nil || req.Answer == nil || req.Category == nil || req.Difficulty == nil {
		h.fail(w, r, &ValidationError{Message: "question, answer, category and difficulty are required"})
		return
	}

	result, err := h.service.Create(r.Context(), NewQuestion{
		Question:   *req.Question,
		Answer:     *req.Answer,
		Category:   int64(*req.Category),
		Difficulty: int(*req.Difficulty),
	}, pageParam(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"created":         result.ID,
		"questions":       result.Questions,
		"total_questions": result.Total,
	})
}

// DeleteQuestion handles DELETE /questions/{id}
func (h *HTTPHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"deleted": id,
	})
}

// SearchQuestions handles POST /questions/search
func (h *HTTPHandlers) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := DecodeJSON(r.Body, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	result, err := h.service.Search(r.Context(), req.SearchTerm, pageParam(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        result.Questions,
		"total_questions":  result.Total,
		"current_category": nil,
	})
}

// ListCategoryQuestions handles GET /categories/{id}/questions
func (h *HTTPHandlers) ListCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	result, err := h.service.ByCategory(r.Context(), id, pageParam(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        result.Questions,
		"total_questions":  result.Total,
		"current_category": result.Category.Type,
	})
}

// StatusFor maps an error kind onto its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnprocessable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON reads a JSON body into dst. Malformed JSON is ErrBadRequest,
// well-formed JSON with wrongly typed fields is ErrUnprocessable.
func DecodeJSON(body io.Reader, dst interface{}) error {
	if body == nil {
		return fmt.Errorf("empty body: %w", ErrBadRequest)
	}
	err := json.NewDecoder(body).Decode(dst)
	if err == nil {
		return nil
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("decode body: %w: %w", ErrBadRequest, err)
	}
	return fmt.Errorf("decode body: %w: %w", ErrUnprocessable, err)
}

func (h *HTTPHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	logger := logging.FromContextOr(r.Context(), h.logger)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
	} else if status == http.StatusUnprocessableEntity {
		logger.Warn().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request rejected")
	}
	httperrors.RespondError(w, status)
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn().Err(err).Msg("failed to encode response")
	}
}

func pageParam(r *http.Request) int {
	return ParsePage(r.URL.Query().Get("page"))
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, ErrBadRequest)
	}
	return id, nil
}
