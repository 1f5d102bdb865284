package quiz

import (
	"math/rand/v2"
	"sync"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

// Selector picks the next quiz question uniformly among the candidates the
// player has not been served yet.
type Selector struct {
	mu   sync.Mutex
	intn func(n int) int
}

// NewSelector returns a Selector backed by math/rand/v2.
func NewSelector() *Selector {
	return &Selector{intn: rand.IntN}
}

// NewSelectorWithSource uses intn (returning a value in [0, n)) as the
// random source.
func NewSelectorWithSource(intn func(n int) int) *Selector {
	if intn == nil {
		intn = rand.IntN
	}
	return &Selector{intn: intn}
}

// Select filters candidates down to the unseen ones and samples one of them.
// ok is false when every candidate has already been served, including when
// there are no candidates at all. Ids in previous that are not candidates
// do not count toward exhaustion.
func (s *Selector) Select(candidates []question.Question, previous []int64) (q question.Question, ok bool) {
	served := make(map[int64]struct{}, len(previous))
	for _, id := range previous {
		served[id] = struct{}{}
	}

	unseen := make([]question.Question, 0, len(candidates))
	for _, c := range candidates {
		if _, done := served[c.ID]; !done {
			unseen = append(unseen, c)
		}
	}
	if len(unseen) == 0 {
		return question.Question{}, false
	}
	if len(unseen) == 1 {
		return unseen[0], true
	}

	s.mu.Lock()
	idx := s.intn(len(unseen))
	s.mu.Unlock()
	return unseen[idx], true
}
