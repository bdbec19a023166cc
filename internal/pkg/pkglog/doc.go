// Package pkglog configures structured logging for the service.
//
// It is built around slog and keeps logs consistent by:
//   - Initializing a JSON handler with stable keys.
//   - Attaching the request correlation ID (when present) to each record.
package pkglog
