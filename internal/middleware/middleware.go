// Package middleware holds the echo middleware shared by the chain
// services: request ids, request-scoped logging, New Relic tracing,
// Prometheus metrics, panic recovery, secure headers, CORS and the global
// error handler.
package middleware
