// Package services contains the server-side application services. The index
// set service orchestrates configuration storage, the registry and the job
// scheduler behind the management API.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/indexkeeper/internal/common"
	"github.com/dmitrijs2005/indexkeeper/internal/logging"
	"github.com/dmitrijs2005/indexkeeper/internal/server/auth"
	"github.com/dmitrijs2005/indexkeeper/internal/server/jobs"
	"github.com/dmitrijs2005/indexkeeper/internal/server/models"
	"github.com/dmitrijs2005/indexkeeper/internal/server/registry"
	"github.com/dmitrijs2005/indexkeeper/internal/server/repositories/indexsets"
)

type IndexSetService struct {
	repo      indexsets.Repository
	registry  registry.Registry
	scheduler jobs.Scheduler
	logger    logging.Logger
}

func NewIndexSetService(repo indexsets.Repository, reg registry.Registry, scheduler jobs.Scheduler, logger logging.Logger) *IndexSetService {
	return &IndexSetService{
		repo:      repo,
		registry:  reg,
		scheduler: scheduler,
		logger:    logger.With("module", "indexset_service"),
	}
}

// List returns the permission-filtered view of all index sets and its total
// count. skip and limit must be non-negative.
//
// The count is always the size of the permitted population, not of the
// returned page, so clients can compute page controls. With limit == 0 the
// whole permitted population is returned. With limit > 0 the page query is
// constrained to the allowed-id set computed from one FindAll snapshot, so
// a page can never contain an index set the caller may not read.
func (s *IndexSetService) List(ctx context.Context, skip, limit int, checker auth.Checker) (int, []*models.IndexSetSummary, error) {

	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("error listing index sets: %w", err)
	}

	// With no page size the whole permitted population is returned and
	// skip does not apply.
	if limit == 0 {
		summaries := []*models.IndexSetSummary{}
		for _, cfg := range all {
			if checker.IsPermitted(auth.ActionIndexSetsRead, cfg.ID) {
				summaries = append(summaries, models.SummaryFromConfig(cfg))
			}
		}
		return len(summaries), summaries, nil
	}

	allowedIDs := make([]string, 0, len(all))
	for _, cfg := range all {
		if checker.IsPermitted(auth.ActionIndexSetsRead, cfg.ID) {
			allowedIDs = append(allowedIDs, cfg.ID)
		}
	}

	page, err := s.repo.FindPaginated(ctx, allowedIDs, limit, skip)
	if err != nil {
		return 0, nil, fmt.Errorf("error paginating index sets: %w", err)
	}

	summaries := make([]*models.IndexSetSummary, 0, len(page))
	for _, cfg := range page {
		summaries = append(summaries, models.SummaryFromConfig(cfg))
	}

	return len(allowedIDs), summaries, nil
}

// Get loads one index set. The permission check runs before the store is
// touched so an unauthorized caller cannot probe for existence.
func (s *IndexSetService) Get(ctx context.Context, id string, checker auth.Checker) (*models.IndexSetSummary, error) {

	if !checker.IsPermitted(auth.ActionIndexSetsRead, id) {
		return nil, common.ErrorUnauthorized
	}

	cfg, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading index set %s: %w", id, err)
	}

	return models.SummaryFromConfig(cfg), nil
}

// Create validates and persists a new index set. The payload must not carry
// an id; the store assigns one.
func (s *IndexSetService) Create(ctx context.Context, summary *models.IndexSetSummary, checker auth.Checker) (*models.IndexSetSummary, error) {

	if !checker.IsPermitted(auth.ActionIndexSetsCreate, "") {
		return nil, common.ErrorUnauthorized
	}

	if summary.ID != "" {
		return nil, fmt.Errorf("%w: id must not be set on creation", common.ErrorBadRequest)
	}

	if err := summary.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, summary.ToConfig())
	if err != nil {
		return nil, fmt.Errorf("error saving index set: %w", err)
	}

	s.logger.Info(ctx, "index set created", "index_set_id", saved.ID, "title", saved.Title)

	return models.SummaryFromConfig(saved), nil
}

// Update persists changes to an existing index set, addressed by the path
// id. A payload carrying a different id is rejected before any mutation.
func (s *IndexSetService) Update(ctx context.Context, id string, summary *models.IndexSetSummary, checker auth.Checker) (*models.IndexSetSummary, error) {

	if !checker.IsPermitted(auth.ActionIndexSetsEdit, id) {
		return nil, common.ErrorUnauthorized
	}

	if summary.ID != "" && summary.ID != id {
		return nil, common.ErrorConflict
	}

	if err := summary.Validate(); err != nil {
		return nil, err
	}

	cfg := summary.ToConfig()
	cfg.ID = id

	saved, err := s.repo.Save(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("error saving index set %s: %w", id, err)
	}

	s.logger.Info(ctx, "index set updated", "index_set_id", id)

	return models.SummaryFromConfig(saved), nil
}

// Delete retires an index set: permission check, registry resolution,
// default-set protection, config removal, then a best-effort cleanup job
// submission. The guards run in that order and nothing is mutated before
// all of them pass.
//
// Once the config row is gone the call reports success regardless of the
// cleanup job's fate: a rejected submission is logged and swallowed, and
// with deleteIndices=false the physical indices are orphaned deliberately.
func (s *IndexSetService) Delete(ctx context.Context, id string, deleteIndices bool, checker auth.Checker) error {

	if !checker.IsPermitted(auth.ActionIndexSetsDelete, id) {
		return common.ErrorUnauthorized
	}

	indexSet, err := s.registry.Resolve(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "index set not known to the registry", "index_set_id", id)
			return common.ErrorNotFound
		}
		return fmt.Errorf("error resolving index set %s: %w", id, err)
	}

	if indexSet.Config().Default {
		return fmt.Errorf("%w: default index set <%s> cannot be deleted", common.ErrorBadRequest, id)
	}

	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("error deleting index set %s: %w", id, err)
	}
	if n == 0 {
		// The record vanished between resolution and deletion.
		s.logger.Warn(ctx, "index set config already gone", "index_set_id", id)
		return common.ErrorNotFound
	}

	s.logger.Info(ctx, "index set deleted", "index_set_id", id, "delete_indices", deleteIndices)

	if !deleteIndices {
		return nil
	}

	if err := s.scheduler.Submit(ctx, jobs.NewCleanupJob(indexSet, s.logger)); err != nil {
		// The config is gone either way; cleanup is best-effort and its
		// rejection is invisible to the caller.
		s.logger.Error(ctx, "error submitting cleanup job", "index_set_id", id, "error", err.Error())
	}

	return nil
}
