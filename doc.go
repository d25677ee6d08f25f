// Package tether provides goroutine handles that are joined by default.
//
// A goroutine started with the go statement is fire-and-forget: nothing
// waits for it, and a panic inside it kills the process without ever
// surfacing in the code that started it. tether replaces the bare go
// statement with a [Handle] that refuses to let either happen by accident.
// Unless told otherwise, a Handle waits for its goroutine before it is
// released, and a panic inside the goroutine is re-raised in the owner's
// goroutine instead of being swallowed or crashing the process from a
// stack the owner never sees.
//
// # Spawning
//
// The convenience entry point is [Spawn], which starts fn on a new
// goroutine and returns a [Handle] for it:
//
//	h := tether.Spawn(func() int {
//	    return compute()
//	})
//	defer h.Close()
//	...
//	n := h.Join()
//
// [Builder] is the configurable, fallible form. It is an immutable value;
// each setter returns an updated copy, so a configured builder can be
// stored and reused:
//
//	h, err := tether.NewBuilder[int]().
//	    Name("indexer").
//	    StackSize(256 << 10).
//	    Spawn(buildIndex)
//
// # Consuming a Handle
//
// Every Handle is consumed exactly once, by whichever of these happens
// first:
//
//   - [Handle.Join] waits for the goroutine and returns its value. If the
//     goroutine panicked, Join re-panics with the captured [*PanicError].
//   - [Handle.Detach] returns the raw [Task] without waiting. The caller
//     opts out of the join guarantee and owns any further waiting.
//   - [Handle.Close] waits for the goroutine and discards its value. It is
//     intended for defer: it is a no-op on an already-consumed Handle, so
//     "defer h.Close()" composes with an explicit Join or Detach on the
//     happy path.
//
// Consumption is enforced at runtime: Join and Detach panic when called on
// an already-consumed Handle, and at most one of any number of racing
// consumers can win.
//
// # Panic propagation
//
// A panic in the spawned goroutine is captured together with its stack
// trace as a [*PanicError]. Join always re-raises it. Close re-raises it
// too, with one exception: when the goroutine running Close is itself
// already unwinding from an unrelated panic, the secondary panic is
// suppressed so that it cannot mask the original failure. Failing loudly
// during a normal Close surfaces bugs; failing loudly while already
// failing would bury the real cause.
//
// [Task.Wait] is the value-level alternative: it returns the captured
// *PanicError as an ordinary error instead of re-panicking.
//
// # Bounding live tasks
//
// Goroutine creation cannot fail the way OS thread creation can, but
// unbounded spawning is its own resource-exhaustion failure. [Quota]
// bounds the number of live tasks; a builder with [Builder.Quota] attached
// fails spawning with [ErrQuotaExhausted] when no slot is free, and the
// slot is returned when the task finishes.
//
// # What tether is not
//
// tether is not a scheduler, a worker pool, or a cancellation mechanism.
// Join and Close wait unconditionally; callers that need a bounded wait
// can select on [Handle.Done] themselves, and cancellation belongs to
// cooperative signaling inside the spawned function.
package tether
