// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewer

import "time"

// Adaptive debounce thresholds and timer delays: small bursts request a
// layout immediately, medium bursts use a fast timer, large bursts use a
// standard timer.
const (
	SyncThresholdLines = 100
	FastThresholdLines = 1000

	FastTimerDelay     = 4 * time.Millisecond
	StandardTimerDelay = 16 * time.Millisecond
)

// Decision is what Scheduler.Decide recommends for a given burst of newly
// appended lines.
type Decision struct {
	// RunSynchronously is true when the burst is small enough to request a
	// layout right now, skipping the timer entirely. The request is still
	// shaped on a layout worker, not inline on the UI thread.
	RunSynchronously bool
	// Delay is the timer duration to arm when RunSynchronously is false.
	Delay time.Duration
}

// Decide classifies newLines: <100 requests a layout now, 100-1000 arms a ~4ms
// timer, >1000 arms a ~16ms timer.
func Decide(newLines int) Decision {
	switch {
	case newLines < SyncThresholdLines:
		return Decision{RunSynchronously: true}
	case newLines <= FastThresholdLines:
		return Decision{Delay: FastTimerDelay}
	default:
		return Decision{Delay: StandardTimerDelay}
	}
}

// Scheduler debounces layout requests: a pending timer is never re-armed
// while outstanding, and firing it launches exactly one layout job tagged
// with a fresh monotonic sequence number (owned by the caller's
// layout.Sequencer).
type Scheduler struct {
	pending     bool
	accumulated int
}

// Request registers newLines newly appended/changed lines. If a timer is
// already pending, it is left alone (never re-armed) and accumulated grows;
// the caller should not start a second timer. If no timer is pending, the
// caller uses the returned Decision to either run synchronously now or arm
// a new timer for Delay.
func (s *Scheduler) Request(newLines int) (shouldArm bool, decision Decision) {
	s.accumulated += newLines
	if s.pending {
		return false, Decision{}
	}
	d := Decide(s.accumulated)
	if d.RunSynchronously {
		s.accumulated = 0
		return false, d
	}
	s.pending = true
	return true, d
}

// Fire marks the pending timer as having fired: a single layout job should
// now be launched, and the accumulated count resets so the next Request
// re-evaluates thresholds fresh.
func (s *Scheduler) Fire() {
	s.pending = false
	s.accumulated = 0
}

// Pending reports whether a timer is currently outstanding.
func (s *Scheduler) Pending() bool {
	return s.pending
}
