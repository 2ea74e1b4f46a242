// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layout builds and caches shaped text layouts for slices of the
// document, off the UI thread. Shaping and measurement go through
// cogentcore.org/core/text/shaped; this package owns the slice windows,
// the LRU cache, the worker pools, and the sequence-numbered result
// packets the UI thread consumes.
package layout

import (
	"cogentcore.org/core/text/shaped"
)

// SliceBlockLines is the granularity at which source-line ranges are broken
// into cacheable slices.
const SliceBlockLines = 256

// CacheMax bounds the number of cached slices kept for smooth scrollback.
const CacheMax = 8

// PrefetchMargin is how many extra logical lines beyond the visible slice
// are requested ahead of time.
const PrefetchMargin = 128

// TailLines is the fixed window size used for the auto-scroll hot path.
const TailLines = 100

// SyncLayoutThresholdLines has the same value as viewer.SyncThresholdLines.
// Nothing in the module reads it; bursts below viewer.SyncThresholdLines
// skip the debounce timer but are still shaped on a worker, not inline.
const SyncLayoutThresholdLines = 100

// FilteredRun maps a contiguous run of a filtered (visible-lines-only)
// layout back to the source document's unfiltered character space.
type FilteredRun struct {
	SourceLine  int
	LayoutStart int
	Length      int
	SourceStart int
}

// MapToSource translates a layout-space offset within this run to the
// corresponding unfiltered source-document offset. offset must fall within
// [LayoutStart, LayoutStart+Length).
func (r FilteredRun) MapToSource(layoutOffset int) int {
	return r.SourceStart + (layoutOffset - r.LayoutStart)
}

// Slice is one cached, shaped layout spanning an inclusive source-line
// range.
type Slice struct {
	FirstLine       int
	LastLine        int
	StartPos        int
	EndPos          int
	FirstDisplayRow int
	IsFiltered      bool
	FilteredRuns    []FilteredRun
	Lines           *shaped.Lines
}

// LayoutPacket is delivered by a Worker once a requested slice has been
// shaped. Sequence-numbered so the UI thread can discard stale work.
type LayoutPacket struct {
	Seq             uint32
	StartPos        int
	EndPos          int
	FirstLine       int
	LastLine        int
	FirstDisplayRow int
	IsFiltered      bool
	FilteredRuns    []FilteredRun
	Lines           *shaped.Lines
}

// WidthPacket is delivered by a WidthWorker once a batch of lines has been
// measured.
type WidthPacket struct {
	Seq     uint32
	Indices []int
	Widths  []float32
}
