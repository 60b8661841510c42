// Package timesync implements the rendezvous handle at the heart of a
// cooperative virtual-time scheduler: the primitive by which a source
// thread hands quanta of virtual time to a sink thread, and by which
// external controller threads may enable, disable, latch, or dispose of
// that relationship while it is in flight.
//
// A TimeHandle is a passive shared object. It schedules nothing, measures
// no wall-clock time, and owns no thread of its own; it only serializes a
// fixed protocol between whichever goroutines call its methods.
package timesync

import (
	"sync"

	"github.com/orbitronics/timesync/model"
)

// phase is where in the grant/request/report cycle the handle sits.
type phase int

const (
	phaseIdle phase = iota
	phaseGranted
	phaseReported
	phaseDraining
)

func (p phase) String() string {
	switch p {
	case phaseIdle:
		return "Idle"
	case phaseGranted:
		return "Granted"
	case phaseReported:
		return "Reported"
	case phaseDraining:
		return "Draining"
	default:
		return "Unknown"
	}
}

// lastReport is meaningful only while phase == phaseReported.
type lastReport int

const (
	reportNone lastReport = iota
	reportContinue
	reportBreak
)

// TimeHandle is the rendezvous state machine described at package level.
// All state below is guarded by mu; sourceCV is waited on by Wait, sinkCV
// is waited on by Request and by SetEnabled(true) while latched.
type TimeHandle struct {
	mu       sync.Mutex
	sourceCV *sync.Cond
	sinkCV   *sync.Cond

	source Source

	intervalGranted model.TimeInterval
	timeUsedBySink  model.TimeInterval
	phase           phase
	lastReport      lastReport

	// isBlocking is the publicly documented "is_blocking" field: true
	// from Break until Wait consumes that Break's report. It gates
	// Grant's precondition.
	isBlocking bool

	// awaitingUnblock tracks, independently of isBlocking, that a Break
	// happened and the next successful Request still owes the source an
	// unblock notification. See DESIGN.md, Open Question resolution 4.
	awaitingUnblock bool

	// requestedSinceGrant records whether Request has handed out the
	// current grant at least once. It is what actually distinguishes
	// the non-blocking "wait with no request yet" path from the
	// blocking "sink is working" path.
	requestedSinceGrant bool

	enabled          bool
	sourceSideActive bool
	latchCount       uint32
	disposed         bool

	recentlyUnblocked bool
	unblockCount      uint64
}

// NewTimeHandle creates a handle bound to the given source. source may be
// nil; callbacks are simply skipped. The handle starts enabled and with
// the source side active, so a fresh handle is immediately usable without
// first toggling either flag.
func NewTimeHandle(source Source) *TimeHandle {
	h := &TimeHandle{
		source:           source,
		enabled:          true,
		sourceSideActive: true,
	}
	h.sourceCV = sync.NewCond(&h.mu)
	h.sinkCV = sync.NewCond(&h.mu)
	return h
}

// assertLocked panics with a "timesync: "-prefixed message if cond is
// false. It unlocks mu first, so a recover()-based test can safely use
// the handle afterward instead of deadlocking on the still-held mutex.
func (h *TimeHandle) assertLocked(cond bool, msg string) {
	if !cond {
		h.mu.Unlock()
		panic("timesync: " + msg)
	}
}

// consumeRecentlyUnblockedLocked reads and clears the one-shot
// recently-unblocked flag. Called with mu held.
func (h *TimeHandle) consumeRecentlyUnblockedLocked() bool {
	v := h.recentlyUnblocked
	h.recentlyUnblocked = false
	return v
}

// Grant offers a quantum of virtual time to the sink. It is the source
// thread's entry point and never blocks.
//
// Preconditions (violations panic): the handle is not disposed, phase is
// Idle, interval is not Empty, and isBlocking is false (the source may
// not grant into a handle whose Break report Wait has not yet collected).
func (h *TimeHandle) Grant(interval model.TimeInterval) {
	h.mu.Lock()
	h.assertLocked(!h.disposed, "grant called on a disposed handle")
	h.assertLocked(h.phase == phaseIdle, "grant called while not idle")
	h.assertLocked(!interval.IsEmpty(), "grant called with an empty interval")
	h.assertLocked(!h.isBlocking, "grant called while the handle is still blocking on an unresolved break")

	h.intervalGranted = interval
	h.timeUsedBySink = model.Empty
	h.phase = phaseGranted
	h.lastReport = reportNone
	h.requestedSinceGrant = false
	h.sinkCV.Broadcast()

	source := h.source
	h.mu.Unlock()

	if source != nil {
		source.ReportHandleActive()
	}
}

// Request fetches the currently granted quantum, blocking if no grant is
// yet on offer. See the method body for the exact, ordered set of
// conditions that decide its return value.
func (h *TimeHandle) Request() RequestResult {
	h.mu.Lock()
	for {
		if h.disposed {
			h.mu.Unlock()
			return RequestResult{}
		}
		if !h.enabled {
			h.mu.Unlock()
			return RequestResult{}
		}
		if !h.sourceSideActive {
			h.mu.Unlock()
			return RequestResult{}
		}
		if h.phase == phaseGranted {
			result := RequestResult{Granted: true, Interval: h.intervalGranted}
			h.requestedSinceGrant = true

			if h.awaitingUnblock {
				h.awaitingUnblock = false
				h.recentlyUnblocked = true
				h.unblockCount++
				if h.source != nil {
					// Invoked with mu held: the documented exception,
					// a state-transition effect that must happen
					// before Request returns.
					h.source.UnblockHandle(h)
				}
			}

			h.mu.Unlock()
			return result
		}
		// phase is Idle (no grant yet) or Reported (sink already
		// reported; the source must Wait and Grant again before the
		// sink may proceed): block until something changes.
		h.sinkCV.Wait()
	}
}

// Continue reports that the sink consumed its quantum cleanly; the
// source's next Grant may proceed immediately once it Waits. Non-blocking.
func (h *TimeHandle) Continue(used model.TimeInterval) {
	h.mu.Lock()
	h.assertLocked(h.phase == phaseGranted && h.lastReport == reportNone, "continue called outside an open grant")

	h.timeUsedBySink = used
	h.lastReport = reportContinue
	h.phase = phaseReported
	h.sourceCV.Broadcast()

	source := h.source
	h.mu.Unlock()

	if source != nil {
		source.ReportTimeProgress()
	}
}

// Break reports that the sink paused mid-quantum and needs the source to
// resynchronize before the next grant. Non-blocking.
func (h *TimeHandle) Break(used model.TimeInterval) {
	h.mu.Lock()
	h.assertLocked(h.phase == phaseGranted && h.lastReport == reportNone, "break called outside an open grant")

	h.timeUsedBySink = used
	h.lastReport = reportBreak
	h.phase = phaseReported
	h.isBlocking = true
	h.awaitingUnblock = true
	h.sourceCV.Broadcast()

	source := h.source
	h.mu.Unlock()

	if source != nil {
		source.ReportTimeProgress()
	}
}

// Wait collects the outcome of the last Grant. It blocks only while the
// sink has Requested the current grant and not yet reported on it; every
// other reachable state returns immediately with the documented result,
// except that calling Wait with no outstanding grant panics.
func (h *TimeHandle) Wait() WaitResult {
	h.mu.Lock()
	for {
		if h.disposed {
			result := WaitResult{Done: true, UnblockedRecently: h.consumeRecentlyUnblockedLocked()}
			h.mu.Unlock()
			return result
		}
		if !h.enabled || !h.sourceSideActive {
			// Disabled-path: leaves any pending grant untouched so the
			// sink can still pick it up once re-enabled.
			result := WaitResult{Done: false, UnblockedRecently: h.consumeRecentlyUnblockedLocked()}
			h.mu.Unlock()
			return result
		}

		switch h.phase {
		case phaseIdle:
			h.assertLocked(false, "wait called with no outstanding grant")
		case phaseGranted:
			if !h.requestedSinceGrant {
				// Grant issued, sink never requested it yet: return
				// without blocking and leave the grant on offer.
				result := WaitResult{Done: false, UnblockedRecently: h.consumeRecentlyUnblockedLocked()}
				h.mu.Unlock()
				return result
			}
			// Sink has the grant and is working: block for its report.
			h.sourceCV.Wait()
			continue
		case phaseReported:
			done := h.lastReport == reportContinue
			residual := h.intervalGranted.Sub(h.timeUsedBySink)
			if h.lastReport == reportBreak {
				h.isBlocking = false
			}
			h.phase = phaseIdle
			h.intervalGranted = model.Empty
			h.timeUsedBySink = model.Empty
			h.lastReport = reportNone
			h.requestedSinceGrant = false

			result := WaitResult{Done: done, UnblockedRecently: h.consumeRecentlyUnblockedLocked(), Residual: residual}
			h.mu.Unlock()
			return result
		case phaseDraining:
			// Unreachable without disposed already being true, handled
			// above, but guarded defensively rather than falling
			// through silently.
			h.assertLocked(false, "wait observed a draining handle that was not disposed")
		}
	}
}

// Latch pauses external enable-transitions: a subsequent SetEnabled(true)
// blocks until every Latch has a matching Unlatch. Non-blocking.
func (h *TimeHandle) Latch() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.latchCount++
}

// Unlatch resumes external enable-transitions once every outstanding
// Latch has been matched. Non-blocking; panics on an unmatched call.
func (h *TimeHandle) Unlatch() {
	h.mu.Lock()
	h.assertLocked(h.latchCount > 0, "unlatch called with no outstanding latch")
	h.latchCount--
	if h.latchCount == 0 {
		h.sinkCV.Broadcast()
	}
	h.mu.Unlock()
}

// SetEnabled toggles whether the sink side participates at all. Disabling
// is non-blocking and wakes every blocked call with its disabled-path
// result. Enabling blocks while latchCount is nonzero.
func (h *TimeHandle) SetEnabled(enabled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if enabled {
		for h.latchCount > 0 {
			h.sinkCV.Wait()
		}
		h.enabled = true
		return
	}
	h.enabled = false
	h.sinkCV.Broadcast()
	h.sourceCV.Broadcast()
}

// SetSourceSideActive toggles whether the source side intends to grant
// time at all. Non-blocking. Turning it off wakes any blocked Request or
// Wait with their disabled-path result; turning it on has no immediate
// effect beyond the flag.
func (h *TimeHandle) SetSourceSideActive(active bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sourceSideActive = active
	if !active {
		h.sinkCV.Broadcast()
		h.sourceCV.Broadcast()
	}
}

// Dispose permanently retires the handle. Idempotent and non-blocking;
// wakes every blocked Request and Wait, which from then on observe
// disposed and return their disabled-path result. A SetEnabled(true)
// blocked on a latch keeps waiting for the matching Unlatch.
func (h *TimeHandle) Dispose() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.disposed {
		return
	}
	h.disposed = true
	h.phase = phaseDraining
	h.sinkCV.Broadcast()
	h.sourceCV.Broadcast()
}

// IsReadyForNewTimeGrant reports whether the handle is not disposed, has
// no grant outstanding, and has no unresolved break pending.
func (h *TimeHandle) IsReadyForNewTimeGrant() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.disposed && h.phase == phaseIdle && !h.isBlocking
}

// SourceSideActive reports the current source-side-active flag.
func (h *TimeHandle) SourceSideActive() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sourceSideActive
}

// Enabled reports the current enabled flag.
func (h *TimeHandle) Enabled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.enabled
}

// UnblockCount reports how many times Request has invoked the source's
// unblock callback over this handle's lifetime. Exposed for tests and
// diagnostics; the protocol itself never reads it back.
func (h *TimeHandle) UnblockCount() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.unblockCount
}
