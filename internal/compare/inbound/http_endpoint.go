package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/Rehnamol/boqmerge/internal/compare/entity"
	"github.com/Rehnamol/boqmerge/internal/pkg/pkgerror"
	"github.com/Rehnamol/boqmerge/internal/pkg/pkgrouter"
)

type HTTPEndpoint struct {
	uc     uc
	limits Limits
}

func (h *HTTPEndpoint) CreateComparison(ctx context.Context, r *http.Request) (any, error) {
	files, mode, err := extractComparisonRequest(r, h.limits)
	if err != nil {
		return nil, err
	}

	result, err := h.uc.Compare(ctx, files, mode)
	if err != nil {
		return nil, err
	}

	return ComparisonCreatedResponse{ComparisonID: result.ComparisonID}, nil
}

func (h *HTTPEndpoint) ComparisonStatus(ctx context.Context, r *http.Request) (any, error) {
	runID := strings.TrimSpace(pkgrouter.GetParam(ctx, "id"))

	result, err := h.uc.Status(ctx, runID)
	if err != nil {
		return nil, err
	}

	return toStatusResponse(result), nil
}

func (h *HTTPEndpoint) ComparisonTable(ctx context.Context, r *http.Request) (any, error) {
	runID := strings.TrimSpace(pkgrouter.GetParam(ctx, "id"))

	query := r.URL.Query()
	page, pageSize, err := parsePagination(query.Get("page"), query.Get("page_size"))
	if err != nil {
		return nil, err
	}

	result, err := h.uc.TableRows(ctx, runID, page, pageSize)
	if err != nil {
		return nil, err
	}

	rows := make([][]*string, 0, len(result.Rows))
	for _, row := range result.Rows {
		rows = append(rows, toHTTPRow(row))
	}

	return TableResponse{
		ComparisonID: result.ComparisonID,
		Status:       result.Status,
		Columns:      result.Columns,
		Rows:         rows,
		page:         result.Page,
		pageSize:     result.PageSize,
		total:        result.TotalRows,
	}, nil
}

func (h *HTTPEndpoint) DiscardComparison(ctx context.Context, r *http.Request) (any, error) {
	runID := strings.TrimSpace(pkgrouter.GetParam(ctx, "id"))

	if err := h.uc.Discard(ctx, runID); err != nil {
		return nil, err
	}

	return nil, nil
}

func (h *HTTPEndpoint) downloadHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		runID := strings.TrimSpace(pkgrouter.GetParam(r.Context(), "id"))

		result, err := h.uc.Download(r.Context(), runID)
		if err != nil {
			writeErrorJSON(w, err)
			return
		}

		w.Header().Set("Content-Type", result.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
		w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
		if _, err := w.Write(result.Data); err != nil {
			slog.ErrorContext(r.Context(), "failed to stream workbook", "comparison_id", runID, "error", err)
		}
	})
}

func writeErrorJSON(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	var perr *pkgerror.Error
	if errors.As(err, &perr) {
		status = perr.StatusCode()
		message = perr.Msg()
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	//nolint:errcheck // nothing left to do if the error reply fails
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

func parsePagination(pageRaw, sizeRaw string) (int, int, error) {
	page := 1
	pageSize := 50

	if pageRaw != "" {
		value, err := strconv.Atoi(pageRaw)
		if err != nil || value < 1 {
			return 0, 0, pkgerror.NewInvalidInput(errors.New("invalid page"))
		}
		page = value
	}

	if sizeRaw != "" {
		value, err := strconv.Atoi(sizeRaw)
		if err != nil || value < 1 {
			return 0, 0, pkgerror.NewInvalidInput(errors.New("invalid page_size"))
		}
		if value > 500 {
			value = 500
		}
		pageSize = value
	}

	return page, pageSize, nil
}

// parseMatchMode accepts both the API tokens and the labels the original
// selector showed. An empty value defaults to matching on both keys.
func parseMatchMode(value string) (entity.MatchMode, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "", "ITEM_DESCRIPTION", "ITEM + DESCRIPTION":
		return entity.MatchModeItemDescription, nil
	case "DESCRIPTION", "DESCRIPTION ONLY":
		return entity.MatchModeDescription, nil
	case "ITEM", "ITEM ONLY":
		return entity.MatchModeItem, nil
	default:
		return "", pkgerror.NewInvalidInput(errors.New("invalid match_mode"))
	}
}

func extractComparisonRequest(r *http.Request, limits Limits) ([]entity.UploadedFile, entity.MatchMode, error) {
	contentType := r.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.EqualFold(mediaType, "multipart/form-data") {
		return nil, "", pkgerror.NewInvalidFormat()
	}

	reader, err := r.MultipartReader()
	if err != nil {
		return nil, "", pkgerror.NewInvalidFormat()
	}

	var files []entity.UploadedFile
	var modeRaw string
	var totalBytes int64

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, "", pkgerror.NewInvalidFormat()
		}

		switch part.FormName() {
		case "match_mode":
			value, err := io.ReadAll(io.LimitReader(part, 256))
			_ = part.Close()
			if err != nil {
				return nil, "", pkgerror.NewInvalidFormat()
			}
			modeRaw = string(value)

		case "files":
			if limits.MaxFiles > 0 && len(files) >= limits.MaxFiles {
				_ = part.Close()
				return nil, "", pkgerror.NewInvalidInput(fmt.Errorf("at most %d files are allowed", limits.MaxFiles))
			}

			remaining := int64(1) << 62 // effectively unlimited
			if limits.MaxTotalBytes > 0 {
				remaining = limits.MaxTotalBytes - totalBytes
			}

			data, err := readPart(part, remaining)
			_ = part.Close()
			if err != nil {
				return nil, "", err
			}
			totalBytes += int64(len(data))

			files = append(files, entity.UploadedFile{
				Name: part.FileName(),
				Data: data,
			})

		default:
			_ = part.Close()
		}
	}

	mode, err := parseMatchMode(modeRaw)
	if err != nil {
		return nil, "", err
	}

	return files, mode, nil
}

func readPart(part io.Reader, remaining int64) ([]byte, error) {
	if remaining <= 0 {
		return nil, pkgerror.NewInvalidInput(errors.New("upload size limit exceeded"))
	}

	data, err := io.ReadAll(io.LimitReader(part, remaining+1))
	if err != nil {
		return nil, pkgerror.NewServer(err)
	}
	if int64(len(data)) > remaining {
		return nil, pkgerror.NewInvalidInput(errors.New("upload size limit exceeded"))
	}

	return data, nil
}

func toHTTPRow(row []entity.Value) []*string {
	cells := make([]*string, len(row))
	for i, value := range row {
		if value.IsMissing() {
			continue
		}
		rendered := value.String()
		cells[i] = &rendered
	}
	return cells
}
