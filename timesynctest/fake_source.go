// Package timesynctest provides a minimal Source double for exercising
// timesync.TimeHandle without a real virtual-time source attached.
package timesynctest

import (
	"sync/atomic"

	"github.com/orbitronics/timesync"
)

// FakeSource is a timesync.Source that records how many times each
// callback fired, using atomic counters so it is safe to read from a test
// goroutine while a handle's source or sink goroutine is still running.
type FakeSource struct {
	unblockCalls  atomic.Int64
	activeCalls   atomic.Int64
	progressCalls atomic.Int64

	// UnblockResult is returned from every UnblockHandle call. Defaults
	// to false; TimeHandle ignores the value.
	UnblockResult bool
}

// UnblockHandle records the call and returns UnblockResult.
func (f *FakeSource) UnblockHandle(h *timesync.TimeHandle) bool {
	f.unblockCalls.Add(1)
	return f.UnblockResult
}

// ReportHandleActive records the call.
func (f *FakeSource) ReportHandleActive() {
	f.activeCalls.Add(1)
}

// ReportTimeProgress records the call.
func (f *FakeSource) ReportTimeProgress() {
	f.progressCalls.Add(1)
}

// UnblockCalls returns how many times UnblockHandle has fired so far.
func (f *FakeSource) UnblockCalls() int64 {
	return f.unblockCalls.Load()
}

// ActiveCalls returns how many times ReportHandleActive has fired so far.
func (f *FakeSource) ActiveCalls() int64 {
	return f.activeCalls.Load()
}

// ProgressCalls returns how many times ReportTimeProgress has fired so far.
func (f *FakeSource) ProgressCalls() int64 {
	return f.progressCalls.Load()
}
