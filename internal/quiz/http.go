package quiz

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/question"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

const gameOverMessage = "game over"

// HTTPHandlers provides the REST endpoint for quiz play.
type HTTPHandlers struct {
	service *Service
	logger  zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for quiz endpoints.
func NewHTTPHandlers(service *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		logger:  logger.With().Str("component", "quiz_http").Logger(),
	}
}

type quizCategory struct {
	ID   question.FlexibleID `json:"id"`
	Type string              `json:"type"`
}

type playRequest struct {
	QuizCategory      *quizCategory         `json:"quiz_category"`
	PreviousQuestions []question.FlexibleID `json:"previous_questions"`
}

// Play handles POST /quizzes
func (h *HTTPHandlers) Play(w http.ResponseWriter, r *http.Request) {
	var req playRequest
	if err := question.DecodeJSON(r.Body, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	turn := TurnRequest{CategoryID: AllCategories}
	if req.QuizCategory != nil {
		turn.CategoryID = int64(req.QuizCategory.ID)
	}
	turn.Previous = make([]int64, 0, len(req.PreviousQuestions))
	for _, id := range req.PreviousQuestions {
		turn.Previous = append(turn.Previous, int64(id))
	}

	result, err := h.service.NextQuestion(r.Context(), turn)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if result.Exhausted {
		h.respondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": gameOverMessage,
		})
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"question": result.Question,
	})
}

func (h *HTTPHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := question.StatusFor(err)
	if status >= http.StatusInternalServerError {
		logger := logging.FromContextOr(r.Context(), h.logger)
		logger.Error().Err(err).Msg("quiz turn failed")
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
