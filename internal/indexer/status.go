// Package indexer provides the background embedding-indexing job, its status
// tracker, and the single-slot runner that triggers it.
package indexer

import (
	"sync"

	"github.com/hyperjump/omoide/internal/models"
)

// StatusTracker is the process-wide indexing job status. All three fields
// move together under one mutex; readers get a consistent snapshot.
type StatusTracker struct {
	mu     sync.Mutex
	status models.IndexStatus
}

// NewStatusTracker returns a tracker in the idle state.
func NewStatusTracker() *StatusTracker {
	return &StatusTracker{
		status: models.IndexStatus{State: models.JobIdle},
	}
}

// Get returns a snapshot of the current status.
func (t *StatusTracker) Get() models.IndexStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Start transitions idle -> processing with the given total. Returns false,
// leaving the running job's fields untouched, if a job is already processing.
func (t *StatusTracker) Start(total int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status.State == models.JobProcessing {
		return false
	}
	t.status = models.IndexStatus{State: models.JobProcessing, Progress: 0, Total: total}
	return true
}

// Advance increments progress by one, capped at total.
func (t *StatusTracker) Advance() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status.State != models.JobProcessing {
		return
	}
	if t.status.Progress < t.status.Total {
		t.status.Progress++
	}
}

// Finish resets to {idle, 0, 0} regardless of whether the job succeeded.
func (t *StatusTracker) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = models.IndexStatus{State: models.JobIdle}
}
