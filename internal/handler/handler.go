// Package handler is the HTTP layer of the chain services.
//
// Handlers bind the request into a typed value, call the matching service
// and translate service errors into *errs.HTTPError for the global error
// handler.
package handler
