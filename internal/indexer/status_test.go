package indexer

import (
	"sync"
	"testing"

	"github.com/hyperjump/omoide/internal/models"
)

func TestStatusTracker_Lifecycle(t *testing.T) {
	tr := NewStatusTracker()

	got := tr.Get()
	if got.State != models.JobIdle || got.Progress != 0 || got.Total != 0 {
		t.Fatalf("initial status: %+v", got)
	}

	if !tr.Start(3) {
		t.Fatal("Start from idle should succeed")
	}
	got = tr.Get()
	if got.State != models.JobProcessing || got.Total != 3 || got.Progress != 0 {
		t.Errorf("after Start: %+v", got)
	}

	tr.Advance()
	tr.Advance()
	got = tr.Get()
	if got.Progress != 2 {
		t.Errorf("progress = %d, want 2", got.Progress)
	}

	tr.Finish()
	got = tr.Get()
	if got.State != models.JobIdle || got.Progress != 0 || got.Total != 0 {
		t.Errorf("after Finish: %+v", got)
	}
}

func TestStatusTracker_StartWhileProcessing(t *testing.T) {
	tr := NewStatusTracker()
	tr.Start(5)
	tr.Advance()

	if tr.Start(99) {
		t.Error("Start while processing should fail")
	}
	got := tr.Get()
	if got.Total != 5 || got.Progress != 1 {
		t.Errorf("second Start must not corrupt the first job's fields: %+v", got)
	}
}

func TestStatusTracker_ProgressNeverExceedsTotal(t *testing.T) {
	tr := NewStatusTracker()
	tr.Start(2)
	for i := 0; i < 10; i++ {
		tr.Advance()
	}
	got := tr.Get()
	if got.Progress > got.Total {
		t.Errorf("progress %d exceeds total %d", got.Progress, got.Total)
	}
}

func TestStatusTracker_AdvanceWhenIdleIsNoop(t *testing.T) {
	tr := NewStatusTracker()
	tr.Advance()
	if got := tr.Get(); got.Progress != 0 {
		t.Errorf("advance while idle should be a no-op: %+v", got)
	}
}

func TestStatusTracker_ConcurrentAdvance(t *testing.T) {
	tr := NewStatusTracker()
	const n = 100
	tr.Start(n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Advance()
			s := tr.Get()
			if s.Progress > s.Total {
				t.Errorf("invariant violated: %+v", s)
			}
		}()
	}
	wg.Wait()

	if got := tr.Get(); got.Progress != n {
		t.Errorf("progress = %d, want %d", got.Progress, n)
	}
}
