package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Rehnamol/boqmerge/internal/compare/entity"
	"github.com/Rehnamol/boqmerge/internal/pkg/pkgerror"
	"github.com/Rehnamol/boqmerge/internal/pkg/pkguid"
)

type Store interface {
	CreateRun(ctx context.Context, meta entity.RunMeta) error
	UpdateMeta(ctx context.Context, runID string, fn func(meta *entity.RunMeta)) error
	SaveResult(ctx context.Context, runID string, table *entity.Table, warnings []string) error
	GetRun(ctx context.Context, runID string) (entity.RunMeta, []string, error)
	GetTable(ctx context.Context, runID string) (*entity.Table, entity.RunMeta, error)
	ListRows(ctx context.Context, runID string, page, pageSize int) ([]string, [][]entity.Value, int, entity.RunMeta, error)
	DeleteRun(ctx context.Context, runID string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event entity.FileRejectedEvent) error
}

type Runner interface {
	Go(ctx context.Context, f func(ctx context.Context) error)
}

type Clock interface {
	Now() time.Time
}

type Dependency struct {
	Store    Store
	Events   EventPublisher
	Runner   Runner
	Clock    Clock
	ID       pkguid.StringID
	EventIDs pkguid.NumberID
	RootCtx  context.Context
}

type Usecase struct {
	store    Store
	events   EventPublisher
	runner   Runner
	clock    Clock
	id       pkguid.StringID
	eventIDs pkguid.NumberID
	rootCtx  context.Context
}

func New(dep Dependency) *Usecase {
	root := dep.RootCtx
	if root == nil {
		root = context.Background()
	}

	clock := dep.Clock
	if clock == nil {
		clock = realClock{}
	}

	return &Usecase{
		store:    dep.Store,
		events:   dep.Events,
		runner:   dep.Runner,
		clock:    clock,
		id:       dep.ID,
		eventIDs: dep.EventIDs,
		rootCtx:  root,
	}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// Compare accepts an explicit request (files plus match mode), registers a
// run, and schedules the merge. The merge itself runs in the background; the
// caller polls Status with the returned ID.
func (u *Usecase) Compare(ctx context.Context, files []entity.UploadedFile, mode entity.MatchMode) (CompareResult, error) {
	if u.store == nil || u.id == nil || u.runner == nil {
		return CompareResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	if len(files) < 2 {
		return CompareResult{}, pkgerror.NewInvalidInput(errors.New("at least 2 files are required"))
	}

	runID := u.id.Generate()
	if err := u.store.CreateRun(ctx, entity.RunMeta{
		ID:        runID,
		Mode:      mode,
		Status:    entity.RunStatusQueued,
		FileCount: len(files),
	}); err != nil {
		return CompareResult{}, normalizeErr(err)
	}

	u.runner.Go(u.rootCtx, func(ctx context.Context) error {
		if err := u.processRun(ctx, runID, files, mode); err != nil {
			slog.ErrorContext(ctx, "comparison run failed", "comparison_id", runID, "error", err)
			u.failRun(ctx, runID, err)
			return err
		}
		return nil
	})

	return CompareResult{ComparisonID: runID}, nil
}

// Status reports run lifecycle, stats, and accumulated warnings.
func (u *Usecase) Status(ctx context.Context, runID string) (StatusResult, error) {
	if runID == "" {
		return StatusResult{}, pkgerror.NewInvalidInput(errors.New("comparison_id is required"))
	}

	meta, warnings, err := u.store.GetRun(ctx, runID)
	if err != nil {
		return StatusResult{}, mapStoreErr(err)
	}

	return StatusResult{
		ComparisonID: runID,
		Meta:         meta,
		Warnings:     warnings,
	}, nil
}

// TableRows returns one page of the merged table. While the run is still in
// flight the page is empty; callers read the status to tell the difference.
func (u *Usecase) TableRows(ctx context.Context, runID string, page, pageSize int) (TableResult, error) {
	if runID == "" {
		return TableResult{}, pkgerror.NewInvalidInput(errors.New("comparison_id is required"))
	}

	if page < 1 || pageSize < 1 {
		return TableResult{}, pkgerror.NewInvalidInput(errors.New("invalid pagination"))
	}

	columns, rows, total, meta, err := u.store.ListRows(ctx, runID, page, pageSize)
	if err != nil {
		return TableResult{}, mapStoreErr(err)
	}

	return TableResult{
		ComparisonID: runID,
		Status:       meta.Status,
		Columns:      columns,
		Rows:         rows,
		Page:         page,
		PageSize:     pageSize,
		TotalRows:    total,
	}, nil
}

// Download serializes the merged table as the fixed-name workbook artifact.
func (u *Usecase) Download(ctx context.Context, runID string) (DownloadResult, error) {
	if runID == "" {
		return DownloadResult{}, pkgerror.NewInvalidInput(errors.New("comparison_id is required"))
	}

	table, meta, err := u.store.GetTable(ctx, runID)
	if err != nil {
		return DownloadResult{}, mapStoreErr(err)
	}

	if !meta.Status.Finished() {
		return DownloadResult{}, pkgerror.NewBusiness("comparison is still running", pkgerror.CodeConflict)
	}
	if meta.Status != entity.RunStatusDone || table == nil || table.IsEmpty() {
		return DownloadResult{}, pkgerror.NewBusiness("no data to display", pkgerror.CodeNotFound)
	}

	data, err := exportWorkbook(table)
	if err != nil {
		return DownloadResult{}, pkgerror.NewServer(err)
	}

	return DownloadResult{
		Filename:    exportFilename,
		ContentType: exportContentType,
		Data:        data,
	}, nil
}

// Discard drops a finished or in-flight run from the store.
func (u *Usecase) Discard(ctx context.Context, runID string) error {
	if runID == "" {
		return pkgerror.NewInvalidInput(errors.New("comparison_id is required"))
	}

	if err := u.store.DeleteRun(ctx, runID); err != nil {
		return mapStoreErr(err)
	}

	return nil
}

func (u *Usecase) processRun(ctx context.Context, runID string, files []entity.UploadedFile, mode entity.MatchMode) error {
	startedAt := u.clock.Now().Unix()
	if err := u.store.UpdateMeta(ctx, runID, func(meta *entity.RunMeta) {
		meta.Status = entity.RunStatusProcessing
		meta.StartedAt = startedAt
	}); err != nil {
		return err
	}

	outcome := mergeFiles(files, mode)
	makeColumnsUnique(outcome.Table)

	for _, rejected := range outcome.Rejected {
		u.publishRejected(ctx, runID, rejected)
	}

	status := entity.RunStatusDone
	if outcome.Table.IsEmpty() {
		status = entity.RunStatusEmpty
		outcome.Warnings = append(outcome.Warnings, "No data to display.")
	}

	if err := u.store.SaveResult(ctx, runID, outcome.Table, outcome.Warnings); err != nil {
		return err
	}

	endedAt := u.clock.Now().Unix()
	return u.store.UpdateMeta(ctx, runID, func(meta *entity.RunMeta) {
		meta.Status = status
		meta.EndedAt = endedAt
		meta.LoadedFiles = outcome.Loaded
		meta.RejectedFiles = len(outcome.Rejected)
		meta.ResultRows = outcome.Table.NumRows()
		meta.ResultCols = outcome.Table.NumCols()
	})
}

// failRun moves a broken run to its terminal status. Best effort: the store
// already failed once, but a run left in PROCESSING would poll forever.
func (u *Usecase) failRun(ctx context.Context, runID string, cause error) {
	endedAt := u.clock.Now().Unix()
	err := u.store.UpdateMeta(ctx, runID, func(meta *entity.RunMeta) {
		meta.Status = entity.RunStatusFailed
		meta.Err = cause.Error()
		meta.EndedAt = endedAt
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to mark comparison as failed", "comparison_id", runID, "error", err)
	}
}

func (u *Usecase) publishRejected(ctx context.Context, runID string, rejected rejectedFile) {
	if u.events == nil {
		return
	}

	var eventID int64
	if u.eventIDs != nil {
		eventID = u.eventIDs.Generate()
	}

	event := entity.FileRejectedEvent{
		EventID:  eventID,
		RunID:    runID,
		Filename: rejected.Name,
		Reason:   rejected.Reason,
	}
	if err := u.events.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish event", "comparison_id", runID, "event_id", eventID, "error", err)
	}
}

func mapStoreErr(err error) error {
	if errors.Is(err, pkgerror.ErrNotFound) {
		return pkgerror.NewBusiness("comparison not found", pkgerror.CodeNotFound)
	}
	return normalizeErr(err)
}

func normalizeErr(err error) error {
	var perr *pkgerror.Error
	if errors.As(err, &perr) {
		return perr
	}
	return pkgerror.NewServer(err)
}
