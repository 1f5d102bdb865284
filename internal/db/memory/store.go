package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

// Store is an in-memory question.Store used for tests/dev.
type Store struct {
	mu     sync.RWMutex
	nextID int64

	categories map[int64]question.Category
	questions  map[int64]question.Question
}

var _ question.Store = (*Store)(nil)

// NewStore constructs a store holding categories and no questions.
func NewStore(categories []question.Category) *Store {
	s := &Store{
		nextID:     1,
		categories: make(map[int64]question.Category, len(categories)),
		questions:  make(map[int64]question.Question),
	}
	for _, c := range categories {
		s.categories[c.ID] = c
	}
	return s
}

// Seed inserts questions, returning their ids in order.
func (s *Store) Seed(questions ...question.NewQuestion) []int64 {
	ids := make([]int64, 0, len(questions))
	for _, q := range questions {
		id, _ := s.InsertQuestion(context.Background(), q)
		ids = append(ids, id)
	}
	return ids
}

// ListCategories implements question.Store.
func (s *Store) ListCategories(_ context.Context) ([]question.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]question.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetCategory implements question.Store.
func (s *Store) GetCategory(_ context.Context, id int64) (question.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok {
		return question.Category{}, question.ErrNotFound
	}
	return c, nil
}

// ListQuestions implements question.Store.
func (s *Store) ListQuestions(_ context.Context, filter question.Filter) ([]question.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]question.Question, 0, len(s.questions))
	for _, q := range s.questions {
		if filter.Match(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// InsertQuestion implements question.Store. Ids are never reused.
func (s *Store) InsertQuestion(_ context.Context, q question.NewQuestion) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.questions[id] = question.Question{
		ID:         id,
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
	return id, nil
}

// DeleteQuestion implements question.Store.
func (s *Store) DeleteQuestion(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[id]; !ok {
		return question.ErrNotFound
	}
	delete(s.questions, id)
	return nil
}

// Ping implements question.Store.
func (s *Store) Ping(_ context.Context) error {
	return nil
}
