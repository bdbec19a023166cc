// Package pkgrouter wraps HTTP routing and common middleware used by the API.
//
// It provides a small router abstraction over httprouter plus shared concerns:
// JSON encoding, error mapping, request logging, panic recovery, and
// correlation ID propagation.
package pkgrouter
