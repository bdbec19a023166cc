package usecase

import (
	"github.com/Rehnamol/boqmerge/internal/compare/entity"
)

type CompareResult struct {
	ComparisonID string
}

type StatusResult struct {
	ComparisonID string
	Meta         entity.RunMeta
	Warnings     []string
}

type TableResult struct {
	ComparisonID string
	Status       entity.RunStatus
	Columns      []string
	Rows         [][]entity.Value
	Page         int
	PageSize     int
	TotalRows    int
}

type DownloadResult struct {
	Filename    string
	ContentType string
	Data        []byte
}
