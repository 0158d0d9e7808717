package indexsets

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/indexkeeper/internal/common"
	"github.com/dmitrijs2005/indexkeeper/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository is an in-memory Repository used in tests and for running
// the server without a database. It mirrors the ordering and affected-count
// semantics of the Postgres implementation.
type MemoryRepository struct {
	mu      sync.RWMutex
	configs map[string]*models.IndexSetConfig
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{configs: make(map[string]*models.IndexSetConfig)}
}

func (r *MemoryRepository) sortedLocked() []*models.IndexSetConfig {
	result := make([]*models.IndexSetConfig, 0, len(r.configs))
	for _, cfg := range r.configs {
		c := *cfg
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Title != result[j].Title {
			return result[i].Title < result[j].Title
		}
		return result[i].ID < result[j].ID
	})
	return result
}

func (r *MemoryRepository) FindAll(ctx context.Context) ([]*models.IndexSetConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedLocked(), nil
}

func (r *MemoryRepository) FindPaginated(ctx context.Context, ids []string, limit, skip int) ([]*models.IndexSetConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	var filtered []*models.IndexSetConfig
	for _, cfg := range r.sortedLocked() {
		if _, ok := wanted[cfg.ID]; ok {
			filtered = append(filtered, cfg)
		}
	}

	if skip >= len(filtered) {
		return nil, nil
	}
	filtered = filtered[skip:]
	if limit < len(filtered) {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*models.IndexSetConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, ok := r.configs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *cfg
	return &c, nil
}

func (r *MemoryRepository) Save(ctx context.Context, cfg *models.IndexSetConfig) (*models.IndexSetConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := *cfg
	if saved.ID == "" {
		saved.ID = uuid.New().String()
	}
	if existing, ok := r.configs[saved.ID]; ok {
		// The creation timestamp belongs to the stored row; payloads
		// cannot rewrite it on update.
		saved.CreatedAt = existing.CreatedAt
	} else if saved.CreatedAt.IsZero() {
		saved.CreatedAt = time.Now().UTC()
	}
	r.configs[saved.ID] = &saved

	result := saved
	return &result, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.configs[id]; !ok {
		return 0, nil
	}
	delete(r.configs, id)
	return 1, nil
}
