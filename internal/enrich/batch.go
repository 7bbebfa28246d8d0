package enrich

import (
	"sync"
	"sync/atomic"
	"time"
)

// State is the lifecycle state of the latest enrichment batch.
type State string

const (
	StateIdle      State = "idle"
	StateInFlight  State = "in_flight"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// Batch is one enrichment pass over a goal list.
type Batch struct {
	ID        uint64
	Total     int
	StartedAt time.Time

	done atomic.Int64
}

// Done returns the number of goals whose requests have all finished.
func (b *Batch) Done() int {
	return int(b.done.Load())
}

func (b *Batch) advance() {
	b.done.Add(1)
}

// BatchSnapshot is a copy of the tracker state for renderers.
type BatchSnapshot struct {
	ID         uint64
	State      State
	Done       int
	Total      int
	Err        error
	StartedAt  time.Time
	FinishedAt time.Time
}

// InFlight reports whether the snapshot was taken while a batch was running.
func (s BatchSnapshot) InFlight() bool {
	return s.State == StateInFlight
}

// Tracker holds the single aggregate loading state for enrichment batches.
// Batch ids increase monotonically; only the most recently begun batch
// drives the state, so a slow older batch cannot clear a newer one's flag.
type Tracker struct {
	mu         sync.RWMutex
	seq        uint64
	latest     *Batch
	state      State
	err        error
	finishedAt time.Time
}

// NewTracker creates an idle tracker.
func NewTracker() *Tracker {
	return &Tracker{state: StateIdle}
}

// Begin starts a new batch of total goals and marks it in flight.
func (t *Tracker) Begin(total int) *Batch {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.seq++
	b := &Batch{ID: t.seq, Total: total, StartedAt: time.Now()}
	t.latest = b
	t.state = StateInFlight
	t.err = nil
	t.finishedAt = time.Time{}
	return b
}

// Finish ends batch b with err. It returns false, leaving the state
// untouched, when a newer batch has begun since b.
func (t *Tracker) Finish(b *Batch, err error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if b == nil || b != t.latest {
		return false
	}
	if err != nil {
		t.state = StateFailed
	} else {
		t.state = StateSucceeded
	}
	t.err = err
	t.finishedAt = time.Now()
	return true
}

// IsCurrent reports whether id belongs to the most recently begun batch.
func (t *Tracker) IsCurrent(id uint64) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.latest != nil && t.latest.ID == id
}

// InFlight reports whether the latest batch is still running.
func (t *Tracker) InFlight() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state == StateInFlight
}

// Snapshot returns the current state.
func (t *Tracker) Snapshot() BatchSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	snap := BatchSnapshot{
		State:      t.state,
		Err:        t.err,
		FinishedAt: t.finishedAt,
	}
	if t.latest != nil {
		snap.ID = t.latest.ID
		snap.Total = t.latest.Total
		snap.Done = t.latest.Done()
		snap.StartedAt = t.latest.StartedAt
	}
	return snap
}
