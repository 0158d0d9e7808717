// Package jobs runs background maintenance work for the server. Submission
// is non-blocking: each job class has a single exclusivity slot, and a job
// submitted while its class slot is occupied is rejected immediately rather
// than queued.
package jobs

import "context"

// Job is a unit of background work.
type Job interface {
	// ID identifies this job instance in logs.
	ID() string

	// Class names the exclusivity slot the job occupies while running.
	Class() string

	// Run executes the job. It is called on a goroutine owned by the
	// scheduler with a context detached from the submitting request.
	Run(ctx context.Context) error
}

// Scheduler accepts jobs for asynchronous execution. Submit returns
// common.ErrConcurrencyLimit (wrapped) when the job's class slot is taken;
// it never blocks waiting for the slot to free.
type Scheduler interface {
	Submit(ctx context.Context, job Job) error
}
