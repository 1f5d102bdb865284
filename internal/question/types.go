package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Difficulty bounds for stored questions.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// DefaultCategories seeds empty stores.
var DefaultCategories = []Category{
	{ID: 1, Type: "Science"},
	{ID: 2, Type: "Art"},
	{ID: 3, Type: "Geography"},
	{ID: 4, Type: "History"},
	{ID: 5, Type: "Entertainment"},
	{ID: 6, Type: "Sports"},
}

// Question is a stored trivia question as delivered to clients.
type Question struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int64  `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Category groups questions under a display label.
type Category struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// NewQuestion carries the fields required to create a question.
type NewQuestion struct {
	Question   string
	Answer     string
	Category   int64
	Difficulty int
}

// Validate checks the fields a store would refuse.
func (n NewQuestion) Validate() error {
	if strings.TrimSpace(n.Question) == "" {
		return &ValidationError{Field: "question", Message: "question is required"}
	}
	if strings.TrimSpace(n.Answer) == "" {
		return &ValidationError{Field: "answer", Message: "answer is required"}
	}
	if n.Category <= 0 {
		return &ValidationError{Field: "category", Message: "category must be a positive id"}
	}
	if n.Difficulty < MinDifficulty || n.Difficulty > MaxDifficulty {
		return &ValidationError{
			Field:   "difficulty",
			Message: fmt.Sprintf("difficulty must be between %d and %d", MinDifficulty, MaxDifficulty),
		}
	}
	return nil
}

// CategoryMap renders categories as the id -> label object clients expect.
func CategoryMap(categories []Category) map[int64]string {
	out := make(map[int64]string, len(categories))
	for _, c := range categories {
		out[c.ID] = c.Type
	}
	return out
}

// FlexibleID decodes an identifier sent either as a JSON number or as a
// numeric string. Older clients post category ids as strings.
type FlexibleID int64

func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		data = []byte(s)
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", string(data))
	}
	*f = FlexibleID(v)
	return nil
}
