package question

import "errors"

var (
	// ErrNotFound is returned when a page, question, category or search
	// result set is empty.
	ErrNotFound = errors.New("resource not found")

	// ErrUnprocessable marks requests that were understood but could not be
	// applied (invalid fields, failed deletes).
	ErrUnprocessable = errors.New("unprocessable request")

	// ErrBadRequest marks structurally malformed input.
	ErrBadRequest = errors.New("bad request")
)

// ValidationError reports the first invalid field of a request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrUnprocessable
}
