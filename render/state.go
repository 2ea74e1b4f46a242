// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

// State names the Renderer's current rendering source.
type State uint8

const (
	// NoLayout means nothing is ready to draw yet; a full redraw (just the
	// background clear) is the best the Renderer can do.
	NoLayout State = iota
	// LayoutReady means a live slice layout has arrived but no bitmap has
	// been rebuilt from it yet.
	LayoutReady
	// SliceBitmapReady means the current slice has a valid cached bitmap.
	SliceBitmapReady
	// FallbackOnly means the async slice does not cover the viewport; a
	// synchronous fallback layout is being drawn while a rebuild is
	// in flight.
	FallbackOnly
	// TailOnly means AUTO_SCROLL is active and only the tail layout is
	// being drawn; slice state is ignored.
	TailOnly
)

func (s State) String() string {
	switch s {
	case NoLayout:
		return "NoLayout"
	case LayoutReady:
		return "LayoutReady"
	case SliceBitmapReady:
		return "SliceBitmapReady"
	case FallbackOnly:
		return "FallbackOnly"
	case TailOnly:
		return "TailOnly"
	default:
		return "Unknown"
	}
}

// StateMachine drives State transitions. It holds no rendering resources
// itself; Renderer owns those and asks the machine what to do.
type StateMachine struct {
	state State
}

// State returns the current state.
func (m *StateMachine) State() State { return m.state }

// OnLayoutReady handles a LayoutReady packet with a matching (non-stale)
// sequence: NoLayout -> LayoutReady.
func (m *StateMachine) OnLayoutReady() {
	if m.state == NoLayout || m.state == FallbackOnly {
		m.state = LayoutReady
	}
}

// OnSliceBitmapRebuilt handles a successful slice-bitmap rebuild:
// LayoutReady -> SliceBitmapReady.
func (m *StateMachine) OnSliceBitmapRebuilt() {
	m.state = SliceBitmapReady
}

// OnSliceMiss handles the slice not covering the viewport, from any state.
func (m *StateMachine) OnSliceMiss() {
	m.state = FallbackOnly
}

// OnEnterAutoScroll handles entering AUTO_SCROLL, from any state.
func (m *StateMachine) OnEnterAutoScroll() {
	m.state = TailOnly
}

// OnEnterScrollBack handles entering SCROLL_BACK; the slice bitmap is
// invalidated by the caller, and the machine drops back to NoLayout so a
// fresh slice is requested.
func (m *StateMachine) OnEnterScrollBack() {
	if m.state == TailOnly {
		m.state = NoLayout
	}
}

// OnDeviceLost resets the machine to NoLayout from any state; the caller is
// responsible for requesting a full redraw.
func (m *StateMachine) OnDeviceLost() {
	m.state = NoLayout
}
