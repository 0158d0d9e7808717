package jobs

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/dmitrijs2005/indexkeeper/internal/common"
	"github.com/dmitrijs2005/indexkeeper/internal/logging"
)

// Manager is the in-process Scheduler implementation. One weighted
// semaphore of capacity 1 per job class guarantees that at most one job of
// a class runs system-wide at any instant.
type Manager struct {
	logger logging.Logger

	mu    sync.Mutex
	slots map[string]*semaphore.Weighted

	wg sync.WaitGroup
}

func NewManager(logger logging.Logger) *Manager {
	return &Manager{
		logger: logger.With("module", "jobs"),
		slots:  make(map[string]*semaphore.Weighted),
	}
}

func (m *Manager) slot(class string) *semaphore.Weighted {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.slots[class]
	if !ok {
		s = semaphore.NewWeighted(1)
		m.slots[class] = s
	}
	return s
}

// Submit claims the job's class slot and launches it. The job runs on its
// own goroutine with a context detached from the request, so cancelling the
// submitting request does not cancel the job.
func (m *Manager) Submit(ctx context.Context, job Job) error {
	s := m.slot(job.Class())

	if !s.TryAcquire(1) {
		return fmt.Errorf("%w: %s", common.ErrConcurrencyLimit, job.Class())
	}

	m.logger.Info(ctx, "job submitted", "job_id", job.ID(), "job_class", job.Class())

	jobCtx := context.WithoutCancel(ctx)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer s.Release(1)

		if err := job.Run(jobCtx); err != nil {
			m.logger.Error(jobCtx, "job failed", "job_id", job.ID(), "job_class", job.Class(), "error", err.Error())
			return
		}
		m.logger.Info(jobCtx, "job finished", "job_id", job.ID(), "job_class", job.Class())
	}()

	return nil
}

// Wait blocks until all submitted jobs have finished. Used on shutdown.
func (m *Manager) Wait() {
	m.wg.Wait()
}
