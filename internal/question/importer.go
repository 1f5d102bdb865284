package question

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/question/external"
)

type opentdbProvider interface {
	Fetch(ctx context.Context, q external.Query) ([]external.OpenTDBQuestion, error)
}

// ImportReport summarizes one import run.
type ImportReport struct {
	Fetched  int
	Imported int
	Skipped  int
}

// Importer copies Open Trivia DB questions into the store, mapping them onto
// the local categories by label.
type Importer struct {
	store  Store
	source opentdbProvider
	logger zerolog.Logger
}

func NewImporter(store Store, source opentdbProvider, logger zerolog.Logger) *Importer {
	return &Importer{
		store:  store,
		source: source,
		logger: logger.With().Str("component", "opentdb_importer").Logger(),
	}
}

// Import fetches amount questions of the given difficulty ("" for any) and
// inserts the ones that map to a local category and are not stored yet.
func (i *Importer) Import(ctx context.Context, amount int, difficulty string) (ImportReport, error) {
	var report ImportReport

	categories, err := i.store.ListCategories(ctx)
	if err != nil {
		return report, fmt.Errorf("list categories: %w", err)
	}
	if len(categories) == 0 {
		return report, fmt.Errorf("no local categories to import into: %w", ErrNotFound)
	}

	existing, err := i.store.ListQuestions(ctx, Filter{})
	if err != nil {
		return report, fmt.Errorf("list questions: %w", err)
	}
	seen := make(map[string]struct{}, len(existing))
	for _, q := range existing {
		seen[normalizeText(q.Question)] = struct{}{}
	}

	fetched, err := i.source.Fetch(ctx, external.Query{Amount: amount, Difficulty: difficulty})
	switch {
	case errors.Is(err, external.ErrNoResults):
		return report, fmt.Errorf("fetch opentdb: %w: %w", ErrNotFound, err)
	case errors.Is(err, external.ErrInvalidQuery):
		return report, fmt.Errorf("fetch opentdb: %w: %w", ErrBadRequest, err)
	case err != nil:
		return report, fmt.Errorf("fetch opentdb: %w", err)
	}
	report.Fetched = len(fetched)

	for _, raw := range fetched {
		candidate, ok := fromOpenTDB(raw, categories)
		if !ok {
			i.logger.Debug().Str("category", raw.Category).Msg("no local category, skipping")
			report.Skipped++
			continue
		}
		key := normalizeText(candidate.Question)
		if _, dup := seen[key]; dup {
			report.Skipped++
			continue
		}
		if err := candidate.Validate(); err != nil {
			report.Skipped++
			continue
		}
		if _, err := i.store.InsertQuestion(ctx, candidate); err != nil {
			return report, fmt.Errorf("insert question: %w", err)
		}
		seen[key] = struct{}{}
		report.Imported++
	}

	i.logger.Info().
		Int("fetched", report.Fetched).
		Int("imported", report.Imported).
		Int("skipped", report.Skipped).
		Msg("opentdb import finished")
	return report, nil
}

func fromOpenTDB(q external.OpenTDBQuestion, categories []Category) (NewQuestion, bool) {
	category, ok := matchCategory(q.Category, categories)
	if !ok {
		return NewQuestion{}, false
	}
	return NewQuestion{
		Question:   strings.TrimSpace(html.UnescapeString(q.Question)),
		Answer:     strings.TrimSpace(html.UnescapeString(q.CorrectAnswer)),
		Category:   category.ID,
		Difficulty: difficultyScore(q.Difficulty),
	}, true
}

// matchCategory picks the first local category whose label is one of the
// words of the remote category name ("Science: Computers" -> Science).
func matchCategory(remote string, categories []Category) (Category, bool) {
	words := strings.FieldsFunc(strings.ToLower(remote), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, c := range categories {
		label := strings.ToLower(strings.TrimSpace(c.Type))
		for _, w := range words {
			if w == label {
				return c, true
			}
		}
	}
	return Category{}, false
}

func difficultyScore(level string) int {
	switch strings.ToLower(level) {
	case "easy":
		return 1
	case "hard":
		return 5
	default:
		return 3
	}
}

func normalizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
