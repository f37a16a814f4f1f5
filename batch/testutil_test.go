package batch

import (
	"context"
	"errors"
	"sync"
	"time"

	"agrosense/models"
)

// memStore is an in-memory Store with the same atomic per-document
// semantics the Mongo implementation provides.
type memStore struct {
	mu      sync.Mutex
	batches map[string]*models.Batch
	orders  int64

	failing bool
}

func newMemStore() *memStore {
	return &memStore{batches: map[string]*models.Batch{}}
}

func (s *memStore) storageErr() error {
	return &StorageError{Err: errors.New("store unreachable")}
}

func (s *memStore) Insert(ctx context.Context, b *models.Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return s.storageErr()
	}
	if _, ok := s.batches[b.BatchID]; ok {
		return ErrConflict
	}
	cp := *b
	s.batches[b.BatchID] = &cp
	return nil
}

func (s *memStore) FindByID(ctx context.Context, batchID string) (*models.Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return nil, s.storageErr()
	}
	b, ok := s.batches[batchID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *memStore) FindAll(ctx context.Context) ([]models.Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return nil, s.storageErr()
	}
	out := make([]models.Batch, 0, len(s.batches))
	for _, b := range s.batches {
		out = append(out, *b)
	}
	return out, nil
}

func (s *memStore) UpdateFields(ctx context.Context, batchID string, fields map[string]any) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return 0, s.storageErr()
	}
	b, ok := s.batches[batchID]
	if !ok {
		return 0, nil
	}
	if v, ok := fields["batchId"]; ok {
		if newID := v.(string); newID != batchID {
			if _, taken := s.batches[newID]; taken {
				return 0, ErrConflict
			}
		}
	}
	for k, v := range fields {
		applyField(b, k, v)
	}
	if newID := b.BatchID; newID != batchID {
		delete(s.batches, batchID)
		s.batches[newID] = b
	}
	return 1, nil
}

func (s *memStore) PushLog(ctx context.Context, batchID string, entry models.MaintenanceLog) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return 0, s.storageErr()
	}
	b, ok := s.batches[batchID]
	if !ok {
		return 0, nil
	}
	b.MaintenanceLogs = append(b.MaintenanceLogs, entry)
	return 1, nil
}

func (s *memStore) Delete(ctx context.Context, batchID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return 0, s.storageErr()
	}
	if _, ok := s.batches[batchID]; !ok {
		return 0, nil
	}
	delete(s.batches, batchID)
	return 1, nil
}

func (s *memStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return 0, s.storageErr()
	}
	return int64(len(s.batches)), nil
}

// memStore also serves as the order counter in aggregator tests.
type memOrders struct {
	n int64
}

func (o *memOrders) Count(ctx context.Context) (int64, error) { return o.n, nil }

func applyField(b *models.Batch, key string, v any) {
	switch key {
	case "batchId":
		b.BatchID = v.(string)
	case "startDate":
		b.StartDate = v.(string)
	case "growthDays":
		b.GrowthDays = v.(int)
	case "harvestDate":
		b.HarvestDate = v.(string)
	case "expiryDate":
		b.ExpiryDate = v.(string)
	case "status":
		b.Status = v.(models.BatchStatus)
	case "stage":
		b.Stage = v.(models.Stage)
	case "lastUpdated":
		b.LastUpdated = v.(time.Time)
	case "actualYield":
		y := v.(float64)
		b.ActualYield = &y
	case "qualityScore":
		q := v.(float64)
		b.QualityScore = &q
	case "currentEnvironment":
		snap := v.(models.EnvironmentSnapshot)
		b.CurrentEnvironment = &snap
	}
}

// fixedClock returns a clock pinned to t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
