// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewer

import "github.com/tracepane/tracepane/layout"

// SliceWindow computes the (first,last) source-line key a SCROLL_BACK
// layout request should cover, given the visible-line-index range currently
// on screen. It pads by layout.PrefetchMargin, aligns to
// layout.SliceBlockLines blocks, then maps back to source-line indices via
// the visible-line index.
func SliceWindow(visibleFirst, visibleLast, visibleCount int, sourceOf func(visibleIndex int) int) (firstSource, lastSource int) {
	if visibleCount == 0 {
		return 0, 0
	}

	padFirst := visibleFirst - layout.PrefetchMargin
	padLast := visibleLast + layout.PrefetchMargin

	alignedFirst := alignDown(padFirst, layout.SliceBlockLines)
	alignedLast := alignUp(padLast, layout.SliceBlockLines)

	if alignedFirst < 0 {
		alignedFirst = 0
	}
	if alignedLast >= visibleCount {
		alignedLast = visibleCount - 1
	}
	if alignedLast < alignedFirst {
		alignedLast = alignedFirst
	}

	return sourceOf(alignedFirst), sourceOf(alignedLast)
}

func alignDown(v, block int) int {
	if v < 0 {
		return -(((-v) + block - 1) / block) * block
	}
	return (v / block) * block
}

func alignUp(v, block int) int {
	if v < 0 {
		return -((-v) / block) * block
	}
	return ((v + block - 1) / block) * block
}

// NeedsNewSlice reports whether the current slice (covering
// [sliceFirstVisible, sliceLastVisible]) still leaves a safety margin
// around the visible range, or whether a new layout should be requested. A
// small margin (half of layout.PrefetchMargin) inside the current slice is
// considered safe.
func NeedsNewSlice(visibleFirst, visibleLast, sliceFirstVisible, sliceLastVisible int) bool {
	margin := layout.PrefetchMargin / 2
	if sliceFirstVisible < 0 && sliceLastVisible < 0 {
		return true
	}
	if visibleFirst-margin < sliceFirstVisible {
		return true
	}
	if visibleLast+margin > sliceLastVisible {
		return true
	}
	return false
}

// Key is a convenience alias so callers can build a layout.Key directly from
// a computed window.
type Key = layout.Key
