package quiz

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

// AllCategories selects candidates from every category.
const AllCategories int64 = 0

// QuestionSource provides candidate questions (implemented by question.Store).
type QuestionSource interface {
	ListQuestions(ctx context.Context, filter question.Filter) ([]question.Question, error)
}

// TurnRequest is one quiz turn. The caller resubmits the growing list of
// served ids every turn; nothing is kept between calls.
type TurnRequest struct {
	CategoryID int64
	Previous   []int64
}

// TurnResult holds either the next question or Exhausted.
type TurnResult struct {
	Question  *question.Question
	Exhausted bool
}

// Service runs stateless quiz turns.
type Service struct {
	source   QuestionSource
	selector *Selector
	logger   zerolog.Logger
}

func NewService(source QuestionSource, selector *Selector, logger zerolog.Logger) *Service {
	if selector == nil {
		selector = NewSelector()
	}
	return &Service{
		source:   source,
		selector: selector,
		logger:   logger.With().Str("component", "quiz_service").Logger(),
	}
}

// NextQuestion returns a random question of the requested category that is
// not in req.Previous, or an exhausted result once none are left. Unknown
// categories have no candidates and are exhausted immediately.
func (s *Service) NextQuestion(ctx context.Context, req TurnRequest) (TurnResult, error) {
	filter := question.Filter{}
	if req.CategoryID != AllCategories {
		filter = question.InCategory(req.CategoryID)
	}

	candidates, err := s.source.ListQuestions(ctx, filter)
	if err != nil {
		return TurnResult{}, fmt.Errorf("list quiz candidates: %w", err)
	}

	next, ok := s.selector.Select(candidates, req.Previous)
	if !ok {
		turnsTotal.WithLabelValues(outcomeGameOver).Inc()
		s.logger.Debug().
			Int64("category", req.CategoryID).
			Int("candidates", len(candidates)).
			Int("previous", len(req.Previous)).
			Msg("quiz exhausted")
		return TurnResult{Exhausted: true}, nil
	}

	turnsTotal.WithLabelValues(outcomeQuestion).Inc()
	return TurnResult{Question: &next}, nil
}
