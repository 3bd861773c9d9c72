package apperrors

import (
	"fmt"
	"net/http"
)

// Error is an HTTP-mappable application error. Every failure raised below the
// HTTP layer is one of these; the server's central error handler renders it
// as a {statusCode, message} JSON body.
type Error struct {
	// StatusCode is the HTTP status the error maps to.
	StatusCode int `json:"statusCode"`
	// Message is the user-visible error description.
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Validation reports malformed or missing input (400).
func Validation(format string, args ...any) *Error {
	return &Error{StatusCode: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing entity (404).
func NotFound(format string, args ...any) *Error {
	return &Error{StatusCode: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

// InvalidState reports an entity that is not in the state an operation
// requires (400).
func InvalidState(format string, args ...any) *Error {
	return &Error{StatusCode: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// Conflict reports a write-time condition failure caused by a concurrent
// update (400). Retrying is the caller's responsibility.
func Conflict(format string, args ...any) *Error {
	return &Error{StatusCode: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// ServiceUnavailable reports an unreachable or failing external service (502).
func ServiceUnavailable(format string, args ...any) *Error {
	return &Error{StatusCode: http.StatusBadGateway, Message: fmt.Sprintf(format, args...)}
}

// Configuration reports a missing required credential or setting (500).
func Configuration(format string, args ...any) *Error {
	return &Error{StatusCode: http.StatusInternalServerError, Message: fmt.Sprintf(format, args...)}
}
