package errors

import "net/http"

// Canned messages returned for each error status. Responses never carry more
// detail than these strings.
const (
	MsgBadRequest       = "Sorry, bad request"
	MsgNotFound         = "Sorry, Resource not found"
	MsgMethodNotAllowed = "Sorry, method not allowed"
	MsgUnprocessable    = "Sorry, failed to process request. Check your syntax."
	MsgInternalError    = "Sorry, the server is down. Please try again later."
	MsgUpstreamError    = "Sorry, a dependency is unavailable."
)

// Message returns the canned message for status.
func Message(status int) string {
	switch status {
	case http.StatusBadRequest:
		return MsgBadRequest
	case http.StatusNotFound:
		return MsgNotFound
	case http.StatusMethodNotAllowed:
		return MsgMethodNotAllowed
	case http.StatusUnprocessableEntity:
		return MsgUnprocessable
	case http.StatusBadGateway:
		return MsgUpstreamError
	default:
		return MsgInternalError
	}
}
