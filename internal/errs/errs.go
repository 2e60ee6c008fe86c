// Package errs defines the error shapes the services return over HTTP.
//
// Handlers never write error bodies themselves. They return an *HTTPError
// and the global error handler in the middleware package turns it into the
// final response, either a JSON error document or a bare status line.
package errs
