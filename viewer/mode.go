// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package viewer implements the view controller: viewport state, selection
// and caret, search orchestration, the auto-scroll/scroll-back mode policy,
// and scheduling of the async layout/width work.
package viewer

// Mode is the viewer's rendering mode: the tail fast path or the
// virtualized, bitmap-cached scroll-back view.
type Mode uint8

const (
	// AutoScroll is the initial mode: the viewer tracks new lines and stays
	// pinned to the bottom.
	AutoScroll Mode = iota
	// ScrollBack is the virtualized mode entered once the user scrolls up
	// or inspects history via selection.
	ScrollBack
)

func (m Mode) String() string {
	if m == AutoScroll {
		return "AUTO_SCROLL"
	}
	return "SCROLL_BACK"
}
