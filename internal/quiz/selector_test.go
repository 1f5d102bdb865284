package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

func pool(ids ...int64) []question.Question {
	out := make([]question.Question, 0, len(ids))
	for _, id := range ids {
		out = append(out, question.Question{ID: id, Question: "q", Answer: "a", Category: 1, Difficulty: 1})
	}
	return out
}

func TestSelectorPicksTheOnlyUnseenQuestion(t *testing.T) {
	s := NewSelector()
	q, ok := s.Select(pool(2, 3, 6), []int64{2, 6})
	require.True(t, ok)
	assert.Equal(t, int64(3), q.ID)
}

func TestSelectorExhausted(t *testing.T) {
	s := NewSelector()

	_, ok := s.Select(pool(1, 2, 3), []int64{1, 2, 3})
	assert.False(t, ok)

	_, ok = s.Select(nil, nil)
	assert.False(t, ok)

	_, ok = s.Select(pool(), []int64{4})
	assert.False(t, ok)
}

func TestSelectorIgnoresForeignAndDuplicateIDs(t *testing.T) {
	s := NewSelector()
	q, ok := s.Select(pool(1, 2), []int64{1, 1, 99, 100})
	require.True(t, ok)
	assert.Equal(t, int64(2), q.ID)
}

func TestSelectorUsesSource(t *testing.T) {
	var seen []int
	s := NewSelectorWithSource(func(n int) int {
		seen = append(seen, n)
		return n - 1
	})
	q, ok := s.Select(pool(1, 2, 3, 4), []int64{2})
	require.True(t, ok)
	assert.Equal(t, int64(4), q.ID)
	assert.Equal(t, []int{3}, seen)
}

// A full game never repeats a question and ends after exactly len(pool) turns.
func TestSelectorPlaysFullGameWithoutRepeats(t *testing.T) {
	candidates := pool(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	s := NewSelector()

	var previous []int64
	served := make(map[int64]bool)
	for turn := 0; turn < len(candidates); turn++ {
		q, ok := s.Select(candidates, previous)
		require.True(t, ok, "turn %d", turn)
		assert.False(t, served[q.ID], "question %d repeated", q.ID)
		served[q.ID] = true
		previous = append(previous, q.ID)
	}

	_, ok := s.Select(candidates, previous)
	assert.False(t, ok)
	assert.Len(t, served, len(candidates))
}

// Every non-exhausted answer comes from the candidate set and is unseen.
func TestSelectorTotality(t *testing.T) {
	candidates := pool(3, 5, 7, 9)
	s := NewSelector()
	previousSets := [][]int64{nil, {3}, {3, 5}, {5, 9, 11}, {3, 5, 7}, {3, 5, 7, 9}, {1, 2}}
	for _, previous := range previousSets {
		for i := 0; i < 20; i++ {
			q, ok := s.Select(candidates, previous)
			if !ok {
				assert.ElementsMatch(t, []int64{3, 5, 7, 9}, intersect(previous, []int64{3, 5, 7, 9}))
				continue
			}
			assert.Contains(t, []int64{3, 5, 7, 9}, q.ID)
			assert.NotContains(t, previous, q.ID)
		}
	}
}

func intersect(a, b []int64) []int64 {
	set := make(map[int64]bool, len(b))
	for _, v := range b {
		set[v] = true
	}
	var out []int64
	for _, v := range a {
		if set[v] {
			out = append(out, v)
			delete(set, v)
		}
	}
	return out
}
