package inbound

import (
	"context"
	"net/http"

	"github.com/Rehnamol/boqmerge/internal/compare/entity"
	"github.com/Rehnamol/boqmerge/internal/compare/usecase"
	"github.com/Rehnamol/boqmerge/internal/pkg/pkgrouter"
)

type uc interface {
	Compare(ctx context.Context, files []entity.UploadedFile, mode entity.MatchMode) (usecase.CompareResult, error)
	Status(ctx context.Context, runID string) (usecase.StatusResult, error)
	TableRows(ctx context.Context, runID string, page, pageSize int) (usecase.TableResult, error)
	Download(ctx context.Context, runID string) (usecase.DownloadResult, error)
	Discard(ctx context.Context, runID string) error
}

// Limits bounds what a single comparison request may upload.
type Limits struct {
	MaxFiles      int
	MaxTotalBytes int64
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc, limits Limits) {
	end := &HTTPEndpoint{uc: uc, limits: limits}

	r.POST("/comparisons", end.CreateComparison)

	r.GET("/comparisons/:id", end.ComparisonStatus)
	r.GET("/comparisons/:id/table", end.ComparisonTable) // ?page=&page_size=
	r.DELETE("/comparisons/:id", end.DiscardComparison)

	// The download owns its response encoding, so it bypasses the JSON codec.
	r.Handle(http.MethodGet, "/comparisons/:id/download", end.downloadHandler())
}
