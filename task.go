package tether

import (
	"context"
	"fmt"
	"runtime/pprof"
	"sync/atomic"
)

// taskID hands out process-unique task identifiers.
var taskID atomic.Uint64

// TaskInfo identifies a spawned task. It is plain metadata: copying it or
// holding it after the task finishes is always safe.
type TaskInfo struct {
	// ID is unique among all tasks spawned by this process.
	ID uint64

	// Name is the diagnostic name set via [Builder.Name]; empty when unset.
	Name string
}

func (i TaskInfo) String() string {
	if i.Name == "" {
		return fmt.Sprintf("task-%d", i.ID)
	}
	return fmt.Sprintf("%s#%d", i.Name, i.ID)
}

// Task is the raw waitable handle for a spawned goroutine: the goroutine
// itself plus a completion channel and the outcome slot it publishes into.
//
// A Task carries none of [Handle]'s guarantees. Dropping it performs no
// wait and re-raises nothing; waiting on it reports a task panic as an
// ordinary error value. Tasks are handed out by [Handle.Detach] and can be
// put back under management with [Attach].
type Task[T any] struct {
	info TaskInfo
	done chan struct{}

	// Written by the task goroutine before done is closed.
	val T
	pe  *PanicError
}

// startTask runs fn on a new goroutine and returns its Task. release, when
// non-nil, is called after the outcome is published (quota slot return).
func startTask[T any](info TaskInfo, stackSize int, release func(), fn func() T) *Task[T] {
	t := &Task[T]{
		info: info,
		done: make(chan struct{}),
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				t.pe = newPanicError(r)
			}
			close(t.done)
			if release != nil {
				release()
			}
		}()

		if stackSize > 0 {
			reserveStack(stackSize)
		}

		if info.Name == "" {
			t.val = fn()
			return
		}
		// Named tasks show up in goroutine profiles under their name.
		pprof.Do(context.Background(), pprof.Labels("tether_task", info.Name), func(context.Context) {
			t.val = fn()
		})
	}()

	return t
}

// Wait blocks until the task's goroutine has exited and returns its
// outcome. A task panic is returned as a [*PanicError], not re-raised.
//
// Wait is idempotent and safe for concurrent waiters; every caller
// observes the same outcome.
func (t *Task[T]) Wait() (T, error) {
	<-t.done
	if t.pe != nil {
		return t.val, t.pe
	}
	return t.val, nil
}

// Done returns a channel that is closed when the task's goroutine exits.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Finished reports whether the task's goroutine has exited.
func (t *Task[T]) Finished() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Info returns the task's identity metadata.
func (t *Task[T]) Info() TaskInfo {
	return t.info
}

const stackFrameSize = 1 << 10

// reserveStack forces the goroutine stack to grow to roughly n bytes by
// recursing with a fat frame. Go stacks grow on demand; pre-growing just
// moves the growth cost ahead of the task function. The pad is threaded
// through the return value so the compiler cannot elide the frames.
//
//go:noinline
func reserveStack(n int) byte {
	var pad [stackFrameSize]byte
	if n > len(pad) {
		pad[0] = reserveStack(n - len(pad))
	}
	return pad[len(pad)-1] ^ pad[0]
}
