package question

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexibleIDAcceptsNumbersAndStrings(t *testing.T) {
	var body struct {
		A FlexibleID   `json:"a"`
		B FlexibleID   `json:"b"`
		C FlexibleID   `json:"c"`
		D []FlexibleID `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 3, "b": "5", "c": null, "d": [1, "2", 20]}`), &body))
	assert.Equal(t, FlexibleID(3), body.A)
	assert.Equal(t, FlexibleID(5), body.B)
	assert.Equal(t, FlexibleID(0), body.C)
	assert.Equal(t, []FlexibleID{1, 2, 20}, body.D)
}

func TestFlexibleIDRejectsNonNumeric(t *testing.T) {
	var id FlexibleID
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &id))
	assert.Error(t, json.Unmarshal([]byte(`true`), &id))
	assert.Error(t, json.Unmarshal([]byte(`1.5`), &id))
}

func TestNewQuestionValidate(t *testing.T) {
	valid := NewQuestion{Question: "Q?", Answer: "A", Category: 1, Difficulty: 1}
	require.NoError(t, valid.Validate())

	cases := map[string]NewQuestion{
		"question":   {Question: "  ", Answer: "A", Category: 1, Difficulty: 1},
		"answer":     {Question: "Q?", Answer: "", Category: 1, Difficulty: 1},
		"category":   {Question: "Q?", Answer: "A", Category: 0, Difficulty: 1},
		"difficulty": {Question: "Q?", Answer: "A", Category: 1, Difficulty: 6},
	}
	for field, q := range cases {
		err := q.Validate()
		require.Error(t, err, field)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr), field)
		assert.Equal(t, field, verr.Field)
		assert.ErrorIs(t, err, ErrUnprocessable)
	}
}

func TestCategoryMap(t *testing.T) {
	got := CategoryMap(DefaultCategories)
	assert.Len(t, got, 6)
	assert.Equal(t, "Science", got[1])
	assert.Equal(t, "Sports", got[6])

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"3":"Geography"`)
}
