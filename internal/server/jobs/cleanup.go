package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/indexkeeper/internal/logging"
	"github.com/dmitrijs2005/indexkeeper/internal/server/registry"
	"github.com/google/uuid"
)

// CleanupJobClass is the exclusivity slot shared by all index cleanup jobs.
const CleanupJobClass = "index-set-cleanup"

// CleanupJob physically removes every index belonging to one retired index
// set. It is bound to a handle resolved before the configuration row was
// deleted; the row being gone does not affect the job.
type CleanupJob struct {
	id       string
	indexSet registry.IndexSet
	logger   logging.Logger
}

func NewCleanupJob(indexSet registry.IndexSet, logger logging.Logger) *CleanupJob {
	id := uuid.New().String()
	return &CleanupJob{
		id:       id,
		indexSet: indexSet,
		logger:   logger.With("job_id", id, "index_set_id", indexSet.Config().ID),
	}
}

func (j *CleanupJob) ID() string {
	return j.id
}

func (j *CleanupJob) Class() string {
	return CleanupJobClass
}

// Run deletes all managed indices. A failure on one index does not stop
// the others; all failures are reported together.
func (j *CleanupJob) Run(ctx context.Context) error {
	managed, err := j.indexSet.ManagedIndices(ctx)
	if err != nil {
		return fmt.Errorf("listing indices: %w", err)
	}

	j.logger.Info(ctx, "deleting indices", "count", len(managed))

	var errs []error
	for _, index := range managed {
		if err := j.indexSet.DeleteIndex(ctx, index); err != nil {
			j.logger.Error(ctx, "failed to delete index", "index", index, "error", err.Error())
			errs = append(errs, fmt.Errorf("index %s: %w", index, err))
			continue
		}
		j.logger.Debug(ctx, "deleted index", "index", index)
	}

	return errors.Join(errs...)
}
