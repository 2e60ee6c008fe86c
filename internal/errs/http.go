package errs

import "strings"

// HTTPError is the error type every handler returns.
//
// It satisfies the error interface and doubles as the JSON error document.
// Fields:
//   - Code: machine-friendly code (e.g. "BAD_GATEWAY").
//   - Message: human-friendly message.
//   - Status: HTTP status code written to the client.
//   - NoBody: the response carries the status only, with an empty body.
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`

	// NoBody is never serialized; the error handler reads it to decide
	// whether to write a JSON document at all.
	NoBody bool `json:"-"`

	// cause keeps the underlying error for logs and errors.Unwrap.
	cause error
}

// Error returns the message so logs show something readable.
func (e *HTTPError) Error() string {
	return e.Message
}

// Unwrap exposes the cause, if one was attached with WithCause.
func (e *HTTPError) Unwrap() error {
	return e.cause
}

// WithCause returns a copy of e that wraps cause.
//
// The cause is only visible to logs (through errors.Unwrap); clients never
// see it.
func (e *HTTPError) WithCause(cause error) *HTTPError {
	c := *e
	c.cause = cause
	return &c
}

// MakeUpperCaseWithUnderscores turns "Bad Gateway" into "BAD_GATEWAY".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
