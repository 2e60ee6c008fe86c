// Package service contains the business logic of the three chain services.
//
// Handlers parse the request and hand plain values to a service; services
// know nothing about echo or HTTP status codes.
package service
