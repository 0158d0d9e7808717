// Package indexsets provides persistence for index set configurations.
package indexsets

import (
	"context"

	"github.com/dmitrijs2005/indexkeeper/internal/server/models"
)

// Repository is the configuration store for index sets.
//
// FindPaginated is constrained to the given id set so that a caller can
// paginate inside a precomputed permission-filtered population without the
// page ever containing an id outside of it. Delete reports the number of
// rows removed; callers use 0 to detect records that vanished concurrently.
type Repository interface {
	FindAll(ctx context.Context) ([]*models.IndexSetConfig, error)
	FindPaginated(ctx context.Context, ids []string, limit, skip int) ([]*models.IndexSetConfig, error)
	Get(ctx context.Context, id string) (*models.IndexSetConfig, error)
	Save(ctx context.Context, cfg *models.IndexSetConfig) (*models.IndexSetConfig, error)
	Delete(ctx context.Context, id string) (int64, error)
}
