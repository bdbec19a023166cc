package pkgrouter

import "net/http"

// Middleware decorates an http.Handler with cross-cutting behavior: panic
// recovery, correlation IDs, request logging.
type Middleware func(http.Handler) http.Handler

// Chain wraps h so that mws[0] becomes the outermost middleware and the last
// entry runs closest to the handler.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
