package batch

import (
	"context"

	"agrosense/models"
)

// Store is the persistence contract the engine requires. Implementations
// must provide atomic single-document semantics: UpdateFields is a
// conditional set and PushLog an atomic append, so concurrent log writers
// on one batch never lose entries.
//
// Insert returns ErrConflict (possibly wrapped) when the batchId is taken;
// FindByID returns ErrNotFound when absent. Other failures are surfaced as
// *StorageError.
type Store interface {
	Insert(ctx context.Context, b *models.Batch) error
	FindByID(ctx context.Context, batchID string) (*models.Batch, error)
	FindAll(ctx context.Context) ([]models.Batch, error)
	UpdateFields(ctx context.Context, batchID string, fields map[string]any) (matched int64, err error)
	PushLog(ctx context.Context, batchID string, entry models.MaintenanceLog) (matched int64, err error)
	Delete(ctx context.Context, batchID string) (deleted int64, err error)
	Count(ctx context.Context) (int64, error)
}

// OrderCounter supplies the dashboard's order total. The engine never reads
// order contents, only the count.
type OrderCounter interface {
	Count(ctx context.Context) (int64, error)
}
