package timesync

import "github.com/orbitronics/timesync/model"

// RequestResult is returned by TimeHandle.Request. When Granted is false,
// Interval is always model.Empty.
type RequestResult struct {
	Granted  bool
	Interval model.TimeInterval
}

// WaitResult is returned by TimeHandle.Wait. Residual is the portion of
// the last granted quantum the sink did not consume; it is Empty on
// normal completion.
type WaitResult struct {
	Done              bool
	UnblockedRecently bool
	Residual          model.TimeInterval
}
