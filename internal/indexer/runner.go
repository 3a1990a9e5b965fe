package indexer

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/hyperjump/omoide/internal/models"
)

// Runner owns the single background job slot. Trigger enqueues a run only if
// no run is in flight, so concurrent duplicate triggers collapse into one
// pass. There is no cancellation; a started run goes to completion or failure
// and is observed by polling the tracker.
type Runner struct {
	job     *Job
	tracker *StatusTracker
	logger  *zap.Logger

	mu      sync.Mutex
	running bool
	wg      sync.WaitGroup
}

// NewRunner creates a runner around the job. logger may be nil.
func NewRunner(job *Job, tracker *StatusTracker, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{job: job, tracker: tracker, logger: logger}
}

// Trigger starts a background indexing run if the slot is free. Returns true
// if a run was started, false if one was already in flight.
func (r *Runner) Trigger() bool {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		r.logger.Debug("indexing trigger ignored: run in flight")
		return false
	}
	r.running = true
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			r.mu.Lock()
			r.running = false
			r.mu.Unlock()
		}()
		// Detached from the triggering request: the job outlives it.
		if err := r.job.Run(context.Background()); err != nil {
			r.logger.Warn("background indexing run failed", zap.Error(err))
		}
	}()
	return true
}

// Status returns the current job status snapshot.
func (r *Runner) Status() models.IndexStatus {
	return r.tracker.Get()
}

// Wait blocks until any in-flight run finishes. Used by shutdown and tests.
func (r *Runner) Wait() {
	r.wg.Wait()
}
