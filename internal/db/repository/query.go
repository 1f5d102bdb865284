package repository

import (
	"fmt"
	"strings"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

const questionColumns = "id, question, answer, category, difficulty"

// placeholder renders the n-th (1-based) bind parameter for a SQL dialect.
type placeholder func(n int) string

func dollarPlaceholder(n int) string { return fmt.Sprintf("$%d", n) }

func questionMarkPlaceholder(int) string { return "?" }

// buildListQuery translates a question.Filter into a scan ordered by id.
func buildListQuery(filter question.Filter, ph placeholder) (string, []interface{}) {
	var (
		where []string
		args  []interface{}
	)
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where = append(where, "category = "+ph(len(args)))
	}
	if filter.Search != "" {
		args = append(args, filter.LikePattern())
		where = append(where, "LOWER(question) LIKE "+ph(len(args))+` ESCAPE '\'`)
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(questionColumns)
	sb.WriteString(" FROM questions")
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	sb.WriteString(" ORDER BY id")
	return sb.String(), args
}
