package question

import "strings"

// Filter selects questions from a store scan. The zero value matches every
// question.
type Filter struct {
	// Search keeps questions whose text contains the term, ignoring case.
	Search string
	// CategoryID keeps questions of a single category when set.
	CategoryID *int64
}

// InCategory scopes a scan to one category.
func InCategory(id int64) Filter {
	return Filter{CategoryID: &id}
}

// Matching scopes a scan to questions containing term.
func Matching(term string) Filter {
	return Filter{Search: term}
}

// Match reports whether q passes the filter.
func (f Filter) Match(q Question) bool {
	if f.CategoryID != nil && q.Category != *f.CategoryID {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(q.Question), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// LikePattern renders Search as a lower-cased LIKE pattern with the LIKE
// wildcards escaped by a backslash, so SQL stores match plain substrings.
func (f Filter) LikePattern() string {
	escaped := likeEscaper.Replace(strings.ToLower(f.Search))
	return "%" + escaped + "%"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
