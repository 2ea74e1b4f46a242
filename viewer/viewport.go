// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewer

// Viewport holds the scroll/size/DPI state the Controller owns. Line height
// comes from the active text format and is uniform across all display rows.
type Viewport struct {
	ScrollX, ScrollY float32
	ClientW, ClientH float32
	DPI              float32
	LineHeight       float32

	HorizontalScrollbarVisible bool
	ContentHeight              float32
	ApproxContentWidth         float32
}

// VisibleDisplayRows returns the inclusive [first,last] display-row range
// currently in the viewport, clamped to totalRows.
func (v *Viewport) VisibleDisplayRows(totalRows int) (first, last int) {
	if v.LineHeight <= 0 {
		return 0, 0
	}
	first = int(v.ScrollY / v.LineHeight)
	rows := int(v.ClientH/v.LineHeight) + 1
	last = first + rows
	if first < 0 {
		first = 0
	}
	if last >= totalRows {
		last = totalRows - 1
	}
	if last < first {
		last = first
	}
	return first, last
}

// MaxScrollY returns the largest valid ScrollY given the current content
// height and viewport height.
func (v *Viewport) MaxScrollY() float32 {
	max := v.ContentHeight - v.ClientH
	if max < 0 {
		return 0
	}
	return max
}

// ClampScroll clamps ScrollX/ScrollY into their valid ranges.
func (v *Viewport) ClampScroll() {
	if v.ScrollY < 0 {
		v.ScrollY = 0
	}
	if max := v.MaxScrollY(); v.ScrollY > max {
		v.ScrollY = max
	}
	if v.ScrollX < 0 {
		v.ScrollX = 0
	}
	if maxX := v.ApproxContentWidth - v.ClientW; maxX > 0 && v.ScrollX > maxX {
		v.ScrollX = maxX
	} else if maxX <= 0 {
		v.ScrollX = 0
	}
}

// ScrollToBottom pins ScrollY to MaxScrollY, the auto-scroll invariant.
func (v *Viewport) ScrollToBottom() {
	v.ScrollY = v.MaxScrollY()
}
