package tether

import "runtime"

// panicking reports whether the calling goroutine is currently unwinding
// from a panic.
//
// Go exposes no direct "am I unwinding" query, but deferred functions run
// during unwinding always have runtime.gopanic on the call stack, and
// deferred functions are the only code that runs during unwinding. Scanning
// the stack for that frame therefore answers the question exactly where it
// matters: inside [Handle.Close] running via defer.
//
// The scan also reports true inside a deferred function that has already
// recovered the panic; callers of Close from such a position lose the
// re-raise. That corner is accepted: suppressing one extra panic report
// during explicit recovery is harmless, the reverse (a spurious re-raise
// masking an in-flight panic) is not.
func panicking() bool {
	pcs := make([]uintptr, 64)
	for {
		n := runtime.Callers(2, pcs)
		if n == 0 {
			return false
		}
		frames := runtime.CallersFrames(pcs[:n])
		for {
			frame, more := frames.Next()
			if frame.Function == "runtime.gopanic" {
				return true
			}
			if !more {
				break
			}
		}
		if n < len(pcs) {
			return false
		}
		// The fixed buffer filled up; the gopanic frame may sit deeper.
		pcs = make([]uintptr, 2*len(pcs))
	}
}
