// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import "sync/atomic"

// Sequencer hands out monotonically increasing sequence numbers for async
// layout/width jobs, and lets the UI thread decide whether a delivered
// packet is still current.
type Sequencer struct {
	current uint32
}

// Next bumps and returns the new current sequence. Call this once per
// submitted job (entering SCROLL_BACK, a slice miss, a debounced layout
// request); bumping it also invalidates every older in-flight job, since
// Current() afterward no longer matches them.
func (s *Sequencer) Next() uint32 {
	return atomic.AddUint32(&s.current, 1)
}

// Current returns the most recently issued sequence without bumping it.
func (s *Sequencer) Current() uint32 {
	return atomic.LoadUint32(&s.current)
}

// IsCurrent reports whether seq is still the newest issued sequence. A
// packet whose Seq fails this check is stale and must be dropped.
func (s *Sequencer) IsCurrent(seq uint32) bool {
	return seq == s.Current()
}
