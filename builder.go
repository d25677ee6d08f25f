package tether

import (
	"errors"
	"fmt"
)

// ErrNilFunc is returned by [Builder.Spawn] when the task function is nil.
var ErrNilFunc = errors.New("tether: spawn requires a non-nil function")

// ErrQuotaExhausted is returned by [Builder.Spawn] when the attached
// [Quota] has no free slot.
var ErrQuotaExhausted = errors.New("tether: task quota exhausted")

// Builder accumulates optional task configuration and spawns a [Handle].
//
// Builder is an immutable value: each setter returns an updated copy and
// never mutates the receiver, so a configured Builder can be stored in a
// struct or shared between goroutines and used as a spawn template. The
// type parameter is the task function's result type; Go methods cannot
// introduce type parameters of their own, so the Builder carries it.
type Builder[T any] struct {
	name      string
	stackSize int
	quota     *Quota
}

// NewBuilder returns a Builder with default configuration: no name, no
// stack reservation, no quota.
func NewBuilder[T any]() Builder[T] {
	return Builder[T]{}
}

// Name returns a Builder that gives spawned tasks the given diagnostic
// name. The name appears in [TaskInfo] and, via a pprof goroutine label,
// in goroutine profiles.
func (b Builder[T]) Name(name string) Builder[T] {
	b.name = name
	return b
}

// StackSize returns a Builder that pre-grows each spawned goroutine's
// stack to at least bytes before the task function runs. Goroutine stacks
// grow on demand regardless, so this is a latency hint for tasks with deep
// call chains, not a hard limit.
//
// StackSize panics if bytes is negative.
func (b Builder[T]) StackSize(bytes int) Builder[T] {
	if bytes < 0 {
		panic("tether: StackSize requires a non-negative size")
	}
	b.stackSize = bytes
	return b
}

// Quota returns a Builder whose spawns draw slots from q. Spawning fails
// with [ErrQuotaExhausted] when q has no free slot; a task's slot is
// returned when the task finishes. A nil q removes the quota.
func (b Builder[T]) Quota(q *Quota) Builder[T] {
	b.quota = q
	return b
}

// Spawn starts fn on a new goroutine with the accumulated configuration
// and returns a [Handle] owning it.
//
// Spawn reports failure instead of starting the task when fn is nil
// ([ErrNilFunc]) or the attached [Quota] is exhausted
// ([ErrQuotaExhausted]). Quota acquisition never blocks: an exhausted
// quota is a spawn-time failure, not a queue.
func (b Builder[T]) Spawn(fn func() T) (*Handle[T], error) {
	if fn == nil {
		return nil, ErrNilFunc
	}

	var release func()
	if b.quota != nil {
		if !b.quota.TryAcquire() {
			return nil, ErrQuotaExhausted
		}
		release = b.quota.Release
	}

	info := TaskInfo{
		ID:   taskID.Add(1),
		Name: b.name,
	}
	return Attach(startTask(info, b.stackSize, release, fn)), nil
}

// Spawn starts fn on a new goroutine with default configuration and
// returns a [Handle] owning it. Spawning with default configuration only
// fails on programmer error (nil fn), which most callers have no way to
// recover from, so Spawn panics with a diagnostic instead of returning an
// error. Use [Builder.Spawn] for the fallible form.
func Spawn[T any](fn func() T) *Handle[T] {
	h, err := NewBuilder[T]().Spawn(fn)
	if err != nil {
		panic(fmt.Sprintf("tether: failed to spawn task: %v", err))
	}
	return h
}
