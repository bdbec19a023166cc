package pkgrouter

import (
	"context"

	"github.com/julienschmidt/httprouter"
)

// GetParam reads a named path segment (":id" in the route pattern) from the
// request context. httprouter stores matched params there, which lets raw
// handlers like the workbook download resolve them the same way codec-style
// handlers do.
func GetParam(ctx context.Context, key string) string {
	return httprouter.ParamsFromContext(ctx).ByName(key)
}
