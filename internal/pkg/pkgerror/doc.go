// Package pkgerror defines shared error types and sentinel errors used across
// the application.
//
// It keeps error handling consistent by:
//   - Providing sentinel errors that can be checked with errors.Is.
//   - Providing a structured Error type carrying a message, type, and code,
//     which the HTTP edge maps to status codes.
package pkgerror
