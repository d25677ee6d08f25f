package tether

import (
	"context"
	"sync/atomic"
)

// Quota bounds the number of live tasks. It is context-aware: Acquire
// unblocks if the context is cancelled.
//
// Attach a Quota to a [Builder] via [Builder.Quota] to make spawning fail
// fast when the budget is spent, or use Acquire/Release directly to gate
// other resources.
type Quota struct {
	ch       chan struct{}
	cap      int
	acquired atomic.Int64
}

// NewQuota creates a quota with the given capacity.
// Panics if n <= 0.
func NewQuota(n int) *Quota {
	if n <= 0 {
		panic("tether: NewQuota requires n > 0")
	}
	return &Quota{
		ch:  make(chan struct{}, n),
		cap: n,
	}
}

// Acquire blocks until a slot is available or ctx is cancelled.
// Returns ctx.Err() on cancellation, nil on success.
func (q *Quota) Acquire(ctx context.Context) error {
	select {
	case q.ch <- struct{}{}:
		q.acquired.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryAcquire attempts to acquire a slot without blocking.
// Returns true if acquired, false otherwise.
func (q *Quota) TryAcquire() bool {
	select {
	case q.ch <- struct{}{}:
		q.acquired.Add(1)
		return true
	default:
		return false
	}
}

// Release releases a slot. Panics if more slots are released than acquired.
func (q *Quota) Release() {
	if q.acquired.Add(-1) < 0 {
		q.acquired.Add(1) // undo
		panic("tether: Quota.Release called without matching Acquire")
	}
	<-q.ch
}

// Available returns the number of available slots.
// The value may be stale in concurrent contexts.
func (q *Quota) Available() int {
	return q.cap - len(q.ch)
}
