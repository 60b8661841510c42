package trace

import (
	"fmt"

	"github.com/orbitronics/timesync"
	"github.com/orbitronics/timesync/model"
)

// Handle wraps a *timesync.TimeHandle and records every operation to a
// Recorder, labeled under name. It delegates every call unchanged — it
// adds observation, never changes the protocol's semantics.
type Handle struct {
	*timesync.TimeHandle
	name     string
	recorder *Recorder
}

// Wrap attaches recording to an existing handle. name identifies the
// handle's row in a later timeline plot.
func Wrap(name string, recorder *Recorder, h *timesync.TimeHandle) *Handle {
	return &Handle{TimeHandle: h, name: name, recorder: recorder}
}

func (h *Handle) Grant(interval model.TimeInterval) {
	h.TimeHandle.Grant(interval)
	h.recorder.Record(h.name, "grant", interval.String())
}

func (h *Handle) Request() timesync.RequestResult {
	r := h.TimeHandle.Request()
	h.recorder.Record(h.name, "request", fmt.Sprintf("granted=%v interval=%v", r.Granted, r.Interval))
	return r
}

func (h *Handle) Continue(used model.TimeInterval) {
	h.TimeHandle.Continue(used)
	h.recorder.Record(h.name, "continue", used.String())
}

func (h *Handle) Break(used model.TimeInterval) {
	h.TimeHandle.Break(used)
	h.recorder.Record(h.name, "break", used.String())
}

func (h *Handle) Wait() timesync.WaitResult {
	w := h.TimeHandle.Wait()
	h.recorder.Record(h.name, "wait", fmt.Sprintf("done=%v unblocked=%v residual=%v", w.Done, w.UnblockedRecently, w.Residual))
	return w
}

func (h *Handle) Dispose() {
	h.TimeHandle.Dispose()
	h.recorder.Record(h.name, "dispose", "")
}

func (h *Handle) SetEnabled(enabled bool) {
	h.TimeHandle.SetEnabled(enabled)
	h.recorder.Record(h.name, "set-enabled", fmt.Sprintf("%v", enabled))
}

func (h *Handle) SetSourceSideActive(active bool) {
	h.TimeHandle.SetSourceSideActive(active)
	h.recorder.Record(h.name, "set-source-side-active", fmt.Sprintf("%v", active))
}

func (h *Handle) Latch() {
	h.TimeHandle.Latch()
	h.recorder.Record(h.name, "latch", "")
}

func (h *Handle) Unlatch() {
	h.TimeHandle.Unlatch()
	h.recorder.Record(h.name, "unlatch", "")
}
