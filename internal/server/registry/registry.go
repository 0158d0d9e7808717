// Package registry resolves live index set handles: the stored
// configuration coupled with the capability to address its physical
// indices. Handles are transient; callers resolve one per operation and
// drop it afterwards.
package registry

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/indexkeeper/internal/server/indices"
	"github.com/dmitrijs2005/indexkeeper/internal/server/models"
	"github.com/dmitrijs2005/indexkeeper/internal/server/repositories/indexsets"
)

// IndexSet is a live handle for one index set.
type IndexSet interface {
	// Config returns the configuration the handle was resolved from.
	Config() *models.IndexSetConfig

	// ManagedIndices lists the physical indices currently belonging to
	// this index set.
	ManagedIndices(ctx context.Context) ([]string, error)

	// DeleteIndex removes one physical index.
	DeleteIndex(ctx context.Context, index string) error
}

// Registry resolves handles by index set id. Resolve returns
// common.ErrorNotFound (wrapped) when the id is unknown.
type Registry interface {
	Resolve(ctx context.Context, id string) (IndexSet, error)
}

type indexSet struct {
	config *models.IndexSetConfig
	store  indices.Store
}

func (s *indexSet) Config() *models.IndexSetConfig {
	return s.config
}

func (s *indexSet) ManagedIndices(ctx context.Context) ([]string, error) {
	return s.store.List(ctx, s.config.IndexPrefix)
}

func (s *indexSet) DeleteIndex(ctx context.Context, index string) error {
	return s.store.Delete(ctx, index)
}

// StoreRegistry resolves handles from the configuration repository and
// binds them to the shared physical index store.
type StoreRegistry struct {
	repo  indexsets.Repository
	store indices.Store
}

func NewStoreRegistry(repo indexsets.Repository, store indices.Store) *StoreRegistry {
	return &StoreRegistry{repo: repo, store: store}
}

func (r *StoreRegistry) Resolve(ctx context.Context, id string) (IndexSet, error) {
	cfg, err := r.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolving index set %s: %w", id, err)
	}
	return &indexSet{config: cfg, store: r.store}, nil
}
