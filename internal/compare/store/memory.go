package store

import (
	"context"
	"sync"

	"github.com/Rehnamol/boqmerge/internal/compare/entity"
	"github.com/Rehnamol/boqmerge/internal/pkg/pkgerror"
)

// InMemoryStore keeps comparison runs in process memory. Nothing survives a
// restart; persistence across sessions is out of scope for this service.
type InMemoryStore struct {
	mu   sync.RWMutex
	runs map[string]*runRecord
}

// runRecord carries one comparison's meta, warnings, and merged table. Each
// record has its own lock, so polling one comparison never blocks another
// comparison's merge from landing its result.
type runRecord struct {
	mu       sync.RWMutex
	meta     entity.RunMeta
	warnings []string
	table    *entity.Table
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		runs: make(map[string]*runRecord),
	}
}

func (s *InMemoryStore) CreateRun(ctx context.Context, meta entity.RunMeta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[meta.ID]; exists {
		return pkgerror.NewBusiness("comparison already exists", pkgerror.CodeConflict)
	}

	s.runs[meta.ID] = &runRecord{
		meta: meta,
	}

	return nil
}

func (s *InMemoryStore) UpdateMeta(ctx context.Context, runID string, fn func(meta *entity.RunMeta)) error {
	rec, err := s.get(runID)
	if err != nil {
		return err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	fn(&rec.meta)

	return nil
}

func (s *InMemoryStore) SaveResult(ctx context.Context, runID string, table *entity.Table, warnings []string) error {
	rec, err := s.get(runID)
	if err != nil {
		return err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	rec.table = table
	rec.warnings = warnings

	return nil
}

func (s *InMemoryStore) GetRun(ctx context.Context, runID string) (entity.RunMeta, []string, error) {
	rec, err := s.get(runID)
	if err != nil {
		return entity.RunMeta{}, nil, err
	}

	rec.mu.RLock()
	defer rec.mu.RUnlock()

	return rec.meta, rec.warnings, nil
}

func (s *InMemoryStore) GetTable(ctx context.Context, runID string) (*entity.Table, entity.RunMeta, error) {
	rec, err := s.get(runID)
	if err != nil {
		return nil, entity.RunMeta{}, err
	}

	rec.mu.RLock()
	defer rec.mu.RUnlock()

	return rec.table, rec.meta, nil
}

func (s *InMemoryStore) ListRows(ctx context.Context, runID string, page, pageSize int) ([]string, [][]entity.Value, int, entity.RunMeta, error) {
	rec, err := s.get(runID)
	if err != nil {
		return nil, nil, 0, entity.RunMeta{}, err
	}

	rec.mu.RLock()
	defer rec.mu.RUnlock()

	if rec.table == nil {
		return nil, nil, 0, rec.meta, nil
	}

	total := rec.table.NumRows()
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	rows := make([][]entity.Value, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, rec.table.Row(i))
	}

	return rec.table.ColumnNames(), rows, total, rec.meta, nil
}

func (s *InMemoryStore) DeleteRun(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[runID]; !ok {
		return pkgerror.ErrNotFound
	}

	delete(s.runs, runID)

	return nil
}

func (s *InMemoryStore) get(runID string) (*runRecord, error) {
	s.mu.RLock()
	rec, ok := s.runs[runID]
	s.mu.RUnlock()
	if !ok {
		return nil, pkgerror.ErrNotFound
	}

	return rec, nil
}
