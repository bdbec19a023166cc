package inbound

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/Rehnamol/boqmerge/internal/compare/entity"
	"github.com/Rehnamol/boqmerge/internal/compare/event"
	"github.com/Rehnamol/boqmerge/internal/compare/store"
	"github.com/Rehnamol/boqmerge/internal/compare/usecase"
	"github.com/Rehnamol/boqmerge/internal/pkg/pkgrouter"
	"github.com/Rehnamol/boqmerge/internal/pkg/pkgroutine"
	"github.com/Rehnamol/boqmerge/internal/pkg/pkguid"
)

type envelope[T any] struct {
	Data T              `json:"data"`
	Meta map[string]any `json:"meta,omitempty"`
}

func newTestRouter(t *testing.T) (http.Handler, *pkgroutine.Manager) {
	t.Helper()

	runner := pkgroutine.NewManager(10)
	storage := store.NewInMemoryStore()
	bus := event.NewBus(10)

	uc := usecase.New(usecase.Dependency{
		Store:   storage,
		Events:  bus,
		Runner:  runner,
		ID:      pkguid.NewUUID(),
		RootCtx: context.Background(),
	})

	router := pkgrouter.NewRouter(pkguid.NewUUID())
	RegisterHTTPEndpoint(router, uc, Limits{MaxFiles: 20, MaxTotalBytes: 1 << 20})

	return router, runner
}

func TestCompareProcessQueryDownload(t *testing.T) {
	router, runner := newTestRouter(t)

	files := map[string]string{
		"a.csv": "ITEM,DESCRIPTION,RATE,AMOUNT\n1,Excavation,10,100\n2,Concrete,20,200\n",
		"b.csv": "ITEM,DESCRIPTION,RATE,AMOUNT\n1,Excavation,12,120\n3,Steel,30,300\n",
	}

	comparisonID := createComparison(t, router, "ITEM_DESCRIPTION", files)

	status := waitForFinish(t, router, comparisonID)
	if status.Status != entity.RunStatusDone {
		t.Fatalf("comparison not done, status=%s error=%s", status.Status, status.Error)
	}
	if status.LoadedFiles != 2 || status.RejectedFiles != 0 {
		t.Fatalf("unexpected stats: %+v", status)
	}
	if status.ResultRows != 3 || status.ResultCols != 6 {
		t.Fatalf("unexpected result shape: %+v", status)
	}

	table := getTable(t, router, comparisonID)
	if len(table.Columns) != 6 || len(table.Rows) != 3 {
		t.Fatalf("table shape: cols=%d rows=%d", len(table.Columns), len(table.Rows))
	}
	if table.Columns[2] != "Contractor_1_RATE" {
		t.Fatalf("columns = %v", table.Columns)
	}
	// Steel only appears in the second file, so the first contractor's
	// priced cells must be null on that row.
	if table.Rows[2][2] != nil {
		t.Fatalf("expected null cell, got %v", *table.Rows[2][2])
	}

	downloadWorkbook(t, router, comparisonID)
	discardComparison(t, router, comparisonID)

	if err := runner.Wait(); err != nil {
		t.Fatalf("runner wait: %v", err)
	}
}

func TestCompareRejectsSingleFile(t *testing.T) {
	router, _ := newTestRouter(t)

	files := map[string]string{
		"a.csv": "ITEM,RATE\n1,10\n",
	}

	body, contentType := multipartBody(t, "ITEM_DESCRIPTION", files)
	req := httptest.NewRequest(http.MethodPost, "/comparisons", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestCompareRejectsInvalidMatchMode(t *testing.T) {
	router, _ := newTestRouter(t)

	files := map[string]string{
		"a.csv": "ITEM,RATE\n1,10\n",
		"b.csv": "ITEM,RATE\n1,20\n",
	}

	body, contentType := multipartBody(t, "FUZZY", files)
	req := httptest.NewRequest(http.MethodPost, "/comparisons", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestStatusUnknownComparison(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/comparisons/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func multipartBody(t *testing.T, mode string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("match_mode", mode); err != nil {
		t.Fatalf("write match_mode: %v", err)
	}

	// Deterministic part order keeps contractor numbering stable.
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		part, err := writer.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte(files[name])); err != nil {
			t.Fatalf("write file %s: %v", name, err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	return body, writer.FormDataContentType()
}

func createComparison(t *testing.T, router http.Handler, mode string, files map[string]string) string {
	t.Helper()

	body, contentType := multipartBody(t, mode, files)
	req := httptest.NewRequest(http.MethodPost, "/comparisons", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	var env envelope[ComparisonCreatedResponse]
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if env.Data.ComparisonID == "" {
		t.Fatal("comparison id is empty")
	}

	return env.Data.ComparisonID
}

func getStatus(t *testing.T, router http.Handler, comparisonID string) StatusResponse {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/comparisons/"+comparisonID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status code: %d", rec.Code)
	}

	var env envelope[StatusResponse]
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode status: %v", err)
	}

	return env.Data
}

func waitForFinish(t *testing.T, router http.Handler, comparisonID string) StatusResponse {
	t.Helper()

	var status StatusResponse
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		status = getStatus(t, router, comparisonID)
		if status.Status.Finished() {
			return status
		}
		time.Sleep(20 * time.Millisecond)
	}

	t.Fatalf("comparison did not finish, status=%s", status.Status)
	return status
}

func getTable(t *testing.T, router http.Handler, comparisonID string) TableResponse {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/comparisons/"+comparisonID+"/table?page=1&page_size=50", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected table status: %d", rec.Code)
	}

	var env envelope[TableResponse]
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode table: %v", err)
	}
	if env.Meta["total_rows"] == nil {
		t.Fatal("missing pagination meta")
	}

	return env.Data
}

func downloadWorkbook(t *testing.T, router http.Handler, comparisonID string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/comparisons/"+comparisonID+"/download", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected download status: %d body=%s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Fatalf("content type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Merged_BOQ.xlsx") {
		t.Fatalf("content disposition = %q", cd)
	}
	if rec.Body.Len() == 0 {
		t.Fatal("empty workbook body")
	}
}

func discardComparison(t *testing.T, router http.Handler, comparisonID string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodDelete, "/comparisons/"+comparisonID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("unexpected discard status: %d", rec.Code)
	}

	after := httptest.NewRequest(http.MethodGet, "/comparisons/"+comparisonID, nil)
	afterRec := httptest.NewRecorder()
	router.ServeHTTP(afterRec, after)
	if afterRec.Code != http.StatusNotFound {
		t.Fatalf("status after discard = %d, want 404", afterRec.Code)
	}
}
