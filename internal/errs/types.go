package errs

import (
	"net/http"
)

// statusCode builds the default machine code for an HTTP status,
// e.g. 502 -> "BAD_GATEWAY".
func statusCode(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string) *HTTPError {
	return &HTTPError{
		Code:    statusCode(http.StatusNotFound),
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewUpstreamError builds the bodyless error returned when a dependency
// call fails. status is the code the client sees; message only reaches
// the logs.
func NewUpstreamError(status int, message string) *HTTPError {
	return &HTTPError{
		Code:    statusCode(status),
		Message: message,
		Status:  status,
		NoBody:  true,
	}
}
