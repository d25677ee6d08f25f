// Handle is the ownership core of tether: it holds a [Task] in a slot that
// can be vacated exactly once, by Join, Detach, or Close, whichever comes
// first. The slot is an atomic pointer and consumption is an atomic swap,
// so even racing consumers cannot wait on the same task twice; losers of
// the race hit the consumed-handle panic instead.
//
// The intended shape of caller code is:
//
//	h := tether.Spawn(work)
//	defer h.Close()
//	...
//	v := h.Join() // Close becomes a no-op
//
// which guarantees the goroutine is waited on through every exit path,
// early returns and panics included.
package tether

import "sync/atomic"

// Handle owns a spawned [Task] and guarantees it is waited on exactly once.
// Create one with [Spawn], [Builder.Spawn], or [Attach]. The zero value is
// consumed; all Handles must come from those constructors.
type Handle[T any] struct {
	inner atomic.Pointer[Task[T]]
}

// Attach wraps an existing raw task in a fresh Handle, restoring the
// join-by-default guarantee that [Handle.Detach] gave up.
// Panics if t is nil.
func Attach[T any](t *Task[T]) *Handle[T] {
	if t == nil {
		panic("tether: Attach requires a non-nil task")
	}
	h := &Handle[T]{}
	h.inner.Store(t)
	return h
}

// take vacates the slot, panicking if some other consumer got there first.
func (h *Handle[T]) take(op string) *Task[T] {
	if t := h.inner.Swap(nil); t != nil {
		return t
	}
	panic("tether: " + op + " called on a consumed handle")
}

// peek reads the slot without consuming it.
func (h *Handle[T]) peek(op string) *Task[T] {
	if t := h.inner.Load(); t != nil {
		return t
	}
	panic("tether: " + op + " called on a consumed handle")
}

// Info returns the identity metadata of the owned task.
//
// Calling Info on a consumed Handle is a programming error and panics:
// after consumption there is no task to describe. Callers that need the
// metadata past consumption should copy the [TaskInfo] out first.
func (h *Handle[T]) Info() TaskInfo {
	return h.peek("Info").info
}

// Done returns a channel that is closed when the owned task's goroutine
// exits. Done does not consume the Handle; it panics if the Handle has
// already been consumed.
func (h *Handle[T]) Done() <-chan struct{} {
	return h.peek("Done").done
}

// Finished reports whether the owned task's goroutine has exited, without
// consuming the Handle. Panics on a consumed Handle.
func (h *Handle[T]) Finished() bool {
	return h.peek("Finished").Finished()
}

// Join consumes the Handle, waits for the task's goroutine to exit, and
// returns its value. If the task panicked, Join re-panics with the
// captured [*PanicError]: the caller observes what it would have observed
// running the function inline.
//
// Join panics if the Handle was already consumed.
func (h *Handle[T]) Join() T {
	v, err := h.take("Join").Wait()
	if err != nil {
		panic(err)
	}
	return v
}

// Detach consumes the Handle and returns the raw [Task] without waiting.
// The join-by-default guarantee no longer applies to this task; the caller
// decides whether it is ever waited on.
//
// Detach panics if the Handle was already consumed.
func (h *Handle[T]) Detach() *Task[T] {
	return h.take("Detach")
}

// Close waits for the owned task if the Handle has not been consumed yet,
// and otherwise does nothing. It discards the task's value; callers that
// want the value call [Handle.Join] instead.
//
// If the waited-on task panicked, Close re-panics with the captured
// [*PanicError] — unless the goroutine running Close is itself already
// unwinding from a panic, in which case the secondary panic is suppressed
// so it cannot mask the original failure or escalate the teardown.
func (h *Handle[T]) Close() {
	t := h.inner.Swap(nil)
	if t == nil {
		return
	}
	if _, err := t.Wait(); err != nil && !panicking() {
		panic(err)
	}
}

// String describes the Handle without consuming it.
func (h *Handle[T]) String() string {
	t := h.inner.Load()
	if t == nil {
		return "Handle(consumed)"
	}
	return "Handle(" + t.info.String() + ")"
}
