package inbound

import (
	"net/http"

	"github.com/Rehnamol/boqmerge/internal/compare/entity"
	"github.com/Rehnamol/boqmerge/internal/compare/usecase"
)

type ComparisonCreatedResponse struct {
	ComparisonID string `json:"comparison_id"`
}

func (ComparisonCreatedResponse) StatusCode() int {
	return http.StatusAccepted
}

func (ComparisonCreatedResponse) Message() string {
	return "comparison accepted"
}

type StatusResponse struct {
	ComparisonID  string           `json:"comparison_id"`
	Status        entity.RunStatus `json:"status"`
	MatchMode     entity.MatchMode `json:"match_mode"`
	Error         string           `json:"error,omitempty"`
	Warnings      []string         `json:"warnings"`
	StartedAt     int64            `json:"started_at,omitempty"`
	EndedAt       int64            `json:"ended_at,omitempty"`
	FileCount     int              `json:"file_count"`
	LoadedFiles   int              `json:"loaded_files"`
	RejectedFiles int              `json:"rejected_files"`
	ResultRows    int              `json:"result_rows"`
	ResultCols    int              `json:"result_cols"`
}

func toStatusResponse(result usecase.StatusResult) StatusResponse {
	warnings := result.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	return StatusResponse{
		ComparisonID:  result.ComparisonID,
		Status:        result.Meta.Status,
		MatchMode:     result.Meta.Mode,
		Error:         result.Meta.Err,
		Warnings:      warnings,
		StartedAt:     result.Meta.StartedAt,
		EndedAt:       result.Meta.EndedAt,
		FileCount:     result.Meta.FileCount,
		LoadedFiles:   result.Meta.LoadedFiles,
		RejectedFiles: result.Meta.RejectedFiles,
		ResultRows:    result.Meta.ResultRows,
		ResultCols:    result.Meta.ResultCols,
	}
}

// TableResponse carries one page of the merged table. Missing cells are null;
// numbers are rendered as strings so decimal rates keep their exact form.
type TableResponse struct {
	ComparisonID string           `json:"comparison_id"`
	Status       entity.RunStatus `json:"status"`
	Columns      []string         `json:"columns"`
	Rows         [][]*string      `json:"rows"`
	page         int
	pageSize     int
	total        int
}

func (r TableResponse) Meta() map[string]any {
	return map[string]any{
		"page":       r.page,
		"page_size":  r.pageSize,
		"total_rows": r.total,
	}
}
