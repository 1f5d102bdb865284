package question

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Store is the record store holding questions and categories. Scans return
// questions in creation (id) order.
type Store interface {
	ListCategories(ctx context.Context) ([]Category, error)
	// GetCategory returns ErrNotFound for unknown ids.
	GetCategory(ctx context.Context, id int64) (Category, error)
	ListQuestions(ctx context.Context, filter Filter) ([]Question, error)
	InsertQuestion(ctx context.Context, q NewQuestion) (int64, error)
	// DeleteQuestion returns ErrNotFound for unknown ids.
	DeleteQuestion(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

// CategoryCache keeps the category list close to the API (implemented by
// the Redis-backed Cache).
type CategoryCache interface {
	GetCategories(ctx context.Context) ([]Category, error)
	SetCategories(ctx context.Context, categories []Category) error
}

// Page is one window of a question listing plus the size of the full set.
type Page struct {
	Questions []Question
	Total     int
}

// ListResult is a page of all questions with the category index.
type ListResult struct {
	Page
	Categories []Category
}

// CategoryPage is a page of the questions in one category.
type CategoryPage struct {
	Page
	Category Category
}

// CreateResult reports the new id and the requested page after insertion.
type CreateResult struct {
	Page
	ID int64
}

type ServiceOptions struct {
	PageSize int
}

// Service implements listing, search, category scoping and question
// creation/deletion on top of a Store.
type Service struct {
	store    Store
	cache    CategoryCache
	pageSize int
	logger   zerolog.Logger
}

// NewService builds a question service. cache may be nil.
func NewService(store Store, cache CategoryCache, logger zerolog.Logger, opts ServiceOptions) *Service {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{
		store:    store,
		cache:    cache,
		pageSize: pageSize,
		logger:   logger.With().Str("component", "question_service").Logger(),
	}
}

// PageSize returns the configured number of questions per page.
func (s *Service) PageSize() int {
	return s.pageSize
}

// Categories returns every category, or ErrNotFound when none exist.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	categories, err := s.loadCategories(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, ErrNotFound
	}
	return categories, nil
}

// ListPage returns a page over all questions. An empty page is ErrNotFound.
func (s *Service) ListPage(ctx context.Context, page int) (ListResult, error) {
	all, err := s.store.ListQuestions(ctx, Filter{})
	if err != nil {
		return ListResult{}, fmt.Errorf("list questions: %w", err)
	}
	window := Paginate(page, s.pageSize, all)
	if len(window) == 0 {
		return ListResult{}, ErrNotFound
	}
	categories, err := s.loadCategories(ctx)
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{
		Page:       Page{Questions: window, Total: len(all)},
		Categories: categories,
	}, nil
}

// Search returns a page of questions containing term. A blank term is a
// validation error; no matches at all is ErrNotFound.
func (s *Service) Search(ctx context.Context, term string, page int) (Page, error) {
	if strings.TrimSpace(term) == "" {
		return Page{}, &ValidationError{Field: "searchTerm", Message: "searchTerm is required"}
	}
	matches, err := s.store.ListQuestions(ctx, Matching(term))
	if err != nil {
		return Page{}, fmt.Errorf("search questions: %w", err)
	}
	if len(matches) == 0 {
		return Page{}, ErrNotFound
	}
	return Page{Questions: Paginate(page, s.pageSize, matches), Total: len(matches)}, nil
}

// ByCategory returns a page of the questions in category id. Unknown
// categories are ErrNotFound.
func (s *Service) ByCategory(ctx context.Context, id int64, page int) (CategoryPage, error) {
	category, err := s.store.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return CategoryPage{}, ErrNotFound
		}
		return CategoryPage{}, fmt.Errorf("get category %d: %w", id, err)
	}
	questions, err := s.store.ListQuestions(ctx, InCategory(id))
	if err != nil {
		return CategoryPage{}, fmt.Errorf("list category %d: %w", id, err)
	}
	return CategoryPage{
		Page:     Page{Questions: Paginate(page, s.pageSize, questions), Total: len(questions)},
		Category: category,
	}, nil
}

// Create validates and stores a question, then returns the requested page
// of all questions.
func (s *Service) Create(ctx context.Context, q NewQuestion, page int) (CreateResult, error) {
	if err := q.Validate(); err != nil {
		return CreateResult{}, err
	}
	id, err := s.store.InsertQuestion(ctx, q)
	if err != nil {
		if errors.Is(err, ErrUnprocessable) {
			return CreateResult{}, err
		}
		return CreateResult{}, fmt.Errorf("insert question: %w: %w", ErrUnprocessable, err)
	}
	s.logger.Info().Int64("question_id", id).Int64("category", q.Category).Msg("question created")

	all, err := s.store.ListQuestions(ctx, Filter{})
	if err != nil {
		return CreateResult{}, fmt.Errorf("list questions: %w", err)
	}
	return CreateResult{
		Page: Page{Questions: Paginate(page, s.pageSize, all), Total: len(all)},
		ID:   id,
	}, nil
}

// Delete removes question id. Unknown ids are ErrNotFound; any other store
// failure is ErrUnprocessable.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteQuestion(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete question %d: %w: %w", id, ErrUnprocessable, err)
	}
	s.logger.Info().Int64("question_id", id).Msg("question deleted")
	return nil
}

// RefreshCategories reloads categories from the store into the cache.
func (s *Service) RefreshCategories(ctx context.Context) (int, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return 0, fmt.Errorf("list categories: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.SetCategories(ctx, categories); err != nil {
			return 0, fmt.Errorf("cache categories: %w", err)
		}
	}
	return len(categories), nil
}

func (s *Service) loadCategories(ctx context.Context) ([]Category, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetCategories(ctx); err == nil && len(cached) > 0 {
			return cached, nil
		} else if err != nil {
			s.logger.Warn().Err(err).Msg("category cache read failed")
		}
	}

	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	if s.cache != nil && len(categories) > 0 {
		if err := s.cache.SetCategories(ctx, categories); err != nil {
			s.logger.Warn().Err(err).Msg("category cache write failed")
		}
	}
	return categories, nil
}
