package question

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleQuestions() []Question {
	return []Question{
		{ID: 1, Question: "What is the title of the 1990 fantasy film?", Answer: "Edward Scissorhands", Category: 5, Difficulty: 3},
		{ID: 2, Question: "Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", Answer: "Maya Angelou", Category: 4, Difficulty: 2},
		{ID: 3, Question: "Which country won the first ever soccer World Cup in 1930?", Answer: "Uruguay", Category: 6, Difficulty: 4},
		{ID: 4, Question: "What is the heaviest organ in the human body?", Answer: "The Liver", Category: 1, Difficulty: 4},
	}
}

func TestFilterMatchSearchIsCaseInsensitive(t *testing.T) {
	f := Matching("TITLE")
	var hits []int64
	for _, q := range sampleQuestions() {
		if f.Match(q) {
			hits = append(hits, q.ID)
		}
	}
	assert.Equal(t, []int64{1}, hits)
}

func TestFilterMatchSoundAndComplete(t *testing.T) {
	filters := []Filter{
		{},
		Matching("the"),
		InCategory(4),
		{Search: "is", CategoryID: ptr(int64(1))},
		InCategory(99),
	}
	for _, f := range filters {
		for _, q := range sampleQuestions() {
			want := true
			if f.CategoryID != nil && q.Category != *f.CategoryID {
				want = false
			}
			if f.Search != "" && !strings.Contains(strings.ToLower(q.Question), strings.ToLower(f.Search)) {
				want = false
			}
			assert.Equal(t, want, f.Match(q), "filter %+v question %d", f, q.ID)
		}
	}
}

func TestFilterLikePatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, "%title%", Matching("Title").LikePattern())
	assert.Equal(t, `%100\%%`, Matching("100%").LikePattern())
	assert.Equal(t, `%snake\_case%`, Matching("snake_case").LikePattern())
	assert.Equal(t, `%a\\b%`, Matching(`a\b`).LikePattern())
}

func ptr[T any](v T) *T { return &v }
