// Package model holds the value types shared by the timesync protocol:
// a saturating virtual-time duration and nothing else. It deliberately
// knows nothing about threads, mutexes, or the rendezvous protocol built
// on top of it.
package model

import (
	"fmt"
	"math"
)

// TimeInterval is a non-negative duration of virtual time, measured in
// integer ticks. The zero value is Empty.
type TimeInterval int64

// Empty is the zero interval: no time at all.
const Empty TimeInterval = 0

// maxInterval is the saturation ceiling for Add.
const maxInterval TimeInterval = math.MaxInt64

// FromTicks constructs a TimeInterval from a tick count. Panics if ticks
// is negative: intervals are never negative, by construction.
func FromTicks(ticks int64) TimeInterval {
	if ticks < 0 {
		panic("model: negative tick count for TimeInterval")
	}
	return TimeInterval(ticks)
}

// Ticks returns the interval as a raw tick count.
func (t TimeInterval) Ticks() int64 {
	return int64(t)
}

// IsEmpty reports whether the interval is zero.
func (t TimeInterval) IsEmpty() bool {
	return t == Empty
}

// Add returns t+o, saturating at the largest representable interval
// instead of overflowing.
func (t TimeInterval) Add(o TimeInterval) TimeInterval {
	sum := t + o
	if sum < t || sum < o {
		return maxInterval
	}
	return sum
}

// Sub returns t-o, saturating at Empty instead of going negative.
func (t TimeInterval) Sub(o TimeInterval) TimeInterval {
	if o >= t {
		return Empty
	}
	return t - o
}

// Less reports whether t is strictly less than o.
func (t TimeInterval) Less(o TimeInterval) bool {
	return t < o
}

// AtLeast reports whether t is greater than or equal to o.
func (t TimeInterval) AtLeast(o TimeInterval) bool {
	return t >= o
}

// AtMost reports whether t is less than or equal to o.
func (t TimeInterval) AtMost(o TimeInterval) bool {
	return t <= o
}

// Greater reports whether t is strictly greater than o.
func (t TimeInterval) Greater(o TimeInterval) bool {
	return t > o
}

func (t TimeInterval) String() string {
	return fmt.Sprintf("%dticks", int64(t))
}
