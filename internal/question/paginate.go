package question

import "strconv"

// DefaultPageSize is the number of questions per page.
const DefaultPageSize = 10

// Paginate returns the page-th window of size items. Bounds are clamped to
// the slice, so pages outside the data (including page < 1) are empty.
func Paginate[T any](page, size int, items []T) []T {
	if size <= 0 || page < 1 || len(items) == 0 {
		return []T{}
	}
	// Compare page numbers before multiplying so huge pages cannot overflow.
	if page-1 > (len(items)-1)/size {
		return []T{}
	}
	offset := (page - 1) * size
	start := clamp(offset, 0, len(items))
	end := clamp(offset+size, 0, len(items))
	if end <= start {
		return []T{}
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

// ParsePage reads a page query value, defaulting to 1 when absent or
// non-numeric.
func ParsePage(raw string) int {
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return page
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
