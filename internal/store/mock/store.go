// Package mock provides an in-memory Store for tests.
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kiranshivaraju/healthassist/internal/store"
	"github.com/kiranshivaraju/healthassist/pkg/models"
)

// MockStore keeps prediction tables in memory. Error fields, when set,
// are returned by the matching operation.
type MockStore struct {
	mu     sync.Mutex
	tables map[string][]*models.PredictionRecord
	nextID int64
	now    func() time.Time

	PingErr   error
	EnsureErr error
	InsertErr error
	ListErr   error
}

// NewMockStore returns an empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		tables: map[string][]*models.PredictionRecord{},
		now:    time.Now,
	}
}

func (s *MockStore) Ping(_ context.Context) error { return s.PingErr }

func (s *MockStore) EnsureTable(_ context.Context, d *models.Disease) error {
	if s.EnsureErr != nil {
		return s.EnsureErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tables[d.Table]; !ok {
		s.tables[d.Table] = nil
	}
	return nil
}

func (s *MockStore) InsertPrediction(_ context.Context, d *models.Disease, rec *models.PredictionRecord) error {
	if s.InsertErr != nil {
		return s.InsertErr
	}
	if len(rec.Features) != len(d.Fields) {
		return fmt.Errorf("%w: %d features for %d fields", store.ErrInvalidRecord, len(rec.Features), len(d.Fields))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	rec.ID = s.nextID
	rec.CreatedAt = s.now().UTC()

	stored := *rec
	stored.Features = append([]float64(nil), rec.Features...)
	s.tables[d.Table] = append(s.tables[d.Table], &stored)
	return nil
}

func (s *MockStore) ListRecentPredictions(_ context.Context, d *models.Disease, limit int) ([]*models.PredictionRecord, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	limit = store.ClampLimit(limit)

	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.tables[d.Table]
	out := []*models.PredictionRecord{}
	for i := len(rows) - 1; i >= 0 && len(out) < limit; i-- {
		cp := *rows[i]
		cp.Features = append([]float64(nil), rows[i].Features...)
		out = append(out, &cp)
	}
	return out, nil
}

// Count returns the number of rows stored for a disease.
func (s *MockStore) Count(d *models.Disease) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tables[d.Table])
}

// Compile-time check that MockStore implements Store.
var _ store.Store = (*MockStore)(nil)
