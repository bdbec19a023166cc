package pkglog

import "context"

type correlationIDContextKey struct{}

// GetCorrelationID returns the correlation ID stored in the context, or an
// empty string when none was set.
//
// Middleware sets this value early in the request lifecycle so it can be
// attached to logs and propagated to downstream work.
func GetCorrelationID(ctx context.Context) string {
	cid, ok := ctx.Value(correlationIDContextKey{}).(string)
	if !ok {
		return ""
	}
	return cid
}

// SetCorrelationID stores a correlation ID into the context.
func SetCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, correlationIDContextKey{}, cid)
}
