// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package document implements the append-only line log that backs the
// viewer: source lines, a filter-aware visibility index, and the
// character/display-row coordinate mappings the rest of the engine needs.
//
// A single sync.RWMutex guards all mutable state; readers that need a batch
// of lines to remain valid across several calls take a BatchHandle, which
// holds the exclusive lock for its lifetime.
package document

import (
	"sort"
	"strings"
	"sync"
)

// Document is the thread-safe, append-only store of source lines plus the
// derived visibility index. The zero value is not usable; use New.
type Document struct {
	mu sync.RWMutex

	lines   []Line
	visible []VisibleLine

	filterMask FilterMask
	showIDs    bool

	totalLengthValid  bool
	cachedTotalLength int

	offsetsValid bool
	lineOffsets  []int

	maxLineCharsValid bool
	maxLineChars      int
	maxLineIndex      int

	dirtyValid bool
	dirtyFirst int
	dirtyLast  int
}

// New returns an empty Document with all message types visible and process
// IDs shown.
func New() *Document {
	return &Document{
		filterMask: FilterAll,
		showIDs:    true,
	}
}

type invalidationReason uint8

const (
	reasonFull invalidationReason = iota
	reasonShowIDsChanged
	reasonFontChanged
	reasonThemeChanged
	reasonFilterChanged
)

// invalidateCaches drops exactly the derived caches the reason makes stale
// (e.g. a theme change touches no document-side cache at all).
func (d *Document) invalidateCaches(reason invalidationReason) {
	switch reason {
	case reasonShowIDsChanged:
		for i := range d.lines {
			d.lines[i].invalidatePrefix()
		}
		d.totalLengthValid = false
		d.offsetsValid = false
		d.maxLineCharsValid = false
		d.maxLineChars = 0
		d.maxLineIndex = 0
	case reasonFontChanged:
		d.maxLineCharsValid = false
		d.maxLineChars = 0
		d.maxLineIndex = 0
		d.resetDirtyRangeLocked()
	case reasonThemeChanged:
		// no document-side state depends on theme
	case reasonFilterChanged:
		// visible index already rebuilt by the caller
	case reasonFull:
		fallthrough
	default:
		d.totalLengthValid = false
		d.offsetsValid = false
		d.maxLineCharsValid = false
		d.maxLineChars = 0
		d.maxLineIndex = 0
		d.resetDirtyRangeLocked()
		for i := range d.lines {
			d.lines[i].invalidatePrefix()
		}
	}
}

func (d *Document) resetDirtyRangeLocked() {
	d.dirtyValid = false
	d.dirtyFirst = 0
	d.dirtyLast = 0
}

func (d *Document) updateDirtyRangeLocked(first, last int) {
	if len(d.lines) == 0 {
		d.resetDirtyRangeLocked()
		return
	}
	if first > last {
		first, last = last, first
	}
	if !d.dirtyValid {
		d.dirtyValid = true
		d.dirtyFirst = first
		d.dirtyLast = last
		return
	}
	if first < d.dirtyFirst {
		d.dirtyFirst = first
	}
	if last > d.dirtyLast {
		d.dirtyLast = last
	}
}

func (d *Document) markAllDirtyLocked() {
	if len(d.lines) == 0 {
		d.resetDirtyRangeLocked()
		return
	}
	d.dirtyValid = true
	d.dirtyFirst = 0
	d.dirtyLast = len(d.lines) - 1
}

// MarkAllDirty marks the whole document as needing width re-measurement.
func (d *Document) MarkAllDirty() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.markAllDirtyLocked()
}

// ExtractDirtyLineRange returns and resets the pending dirty line range, if
// any. WidthWorker uses this to know which lines need remeasuring.
func (d *Document) ExtractDirtyLineRange() (first, last int, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.dirtyValid {
		return 0, 0, false
	}
	first, last = d.dirtyFirst, d.dirtyLast
	d.resetDirtyRangeLocked()
	return first, last, true
}

// onLineLengthChangedLocked keeps the running max-line-width index correct
// incrementally; a full rescan is only forced when the shrinking line was
// the previous maximum.
func (d *Document) onLineLengthChangedLocked(index, newLen int) {
	if !d.maxLineCharsValid {
		if newLen > d.maxLineChars {
			d.maxLineChars = newLen
			d.maxLineIndex = index
		}
		return
	}
	if newLen >= d.maxLineChars {
		d.maxLineChars = newLen
		d.maxLineIndex = index
		return
	}
	if index == d.maxLineIndex && newLen < d.maxLineChars {
		d.maxLineCharsValid = false
	}
}

// SetText replaces the entire document content, splitting on '\n' and
// stripping '\r'. All derived state is fully invalidated.
func (d *Document) SetText(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.lines = d.lines[:0]
	d.visible = d.visible[:0]

	for _, raw := range strings.Split(text, "\n") {
		runes := stripCR([]rune(raw))
		d.lines = append(d.lines, Line{
			Text:         runes,
			NewlineCount: countRune(runes, '\n'),
		})
	}

	d.invalidateCaches(reasonFull)
	d.markAllDirtyLocked()
	d.rebuildVisibleLinesLocked()
}

// Clear empties the document; all derived state is invalidated.
func (d *Document) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lines = d.lines[:0]
	d.visible = d.visible[:0]
	d.invalidateCaches(reasonFull)
}

// AppendText splits more on '\n' (stripping '\r'), appending into the
// current last line and creating new lines as needed. All cached totals,
// offsets, and the visibility index are updated incrementally where the
// caches are still valid.
func (d *Document) AppendText(more string) {
	if more == "" {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	firstNew := len(d.lines)
	if len(d.lines) == 0 {
		d.lines = append(d.lines, Line{})
	}
	prevLineCount := len(d.lines)
	currentIndex := len(d.lines) - 1

	data := []rune(more)
	segmentStart := 0
	totalCharsAppended := 0
	newlineSeparatorsAdded := 0

	appendSegment := func(start, end int) {
		if end <= start {
			return
		}
		line := &d.lines[currentIndex]
		line.Text = append(line.Text, data[start:end]...)
		line.invalidateDisplay()
		totalCharsAppended += end - start
		newLen := d.prefixLengthLocked(line) + len(line.Text)
		d.onLineLengthChangedLocked(currentIndex, newLen)
	}

	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\r':
			appendSegment(segmentStart, i)
			segmentStart = i + 1
		case '\n':
			appendSegment(segmentStart, i)
			newlineSeparatorsAdded++
			d.lines = append(d.lines, Line{})
			currentIndex = len(d.lines) - 1
			segmentStart = i + 1
		}
	}
	appendSegment(segmentStart, len(data))

	if d.totalLengthValid {
		d.cachedTotalLength += totalCharsAppended + newlineSeparatorsAdded
	}

	if d.offsetsValid {
		if len(d.lineOffsets) != prevLineCount {
			d.offsetsValid = false
		} else {
			offset := 0
			if prevLineCount > 0 {
				tail := &d.lines[prevLineCount-1]
				offset = d.lineOffsets[prevLineCount-1] + d.prefixLengthLocked(tail) + len(tail.Text) + 1
			}
			for idx := prevLineCount; idx < len(d.lines) && d.offsetsValid; idx++ {
				if len(d.lineOffsets) != idx {
					d.offsetsValid = false
					break
				}
				d.lineOffsets = append(d.lineOffsets, offset)
				nl := &d.lines[idx]
				offset += d.prefixLengthLocked(nl) + len(nl.Text) + 1
			}
		}
	}

	if len(d.lines) > 0 {
		firstDirty := 0
		if prevLineCount > 0 {
			firstDirty = prevLineCount - 1
		}
		d.updateDirtyRangeLocked(firstDirty, len(d.lines)-1)
	}

	// Lines created here carry no metadata, so they always pass the filter
	// and only extend the visibility index at its tail; the line the text
	// was appended into keeps its visibility and its row count.
	row := d.totalDisplayRowsLocked()
	for idx := firstNew; idx < len(d.lines); idx++ {
		d.visible = append(d.visible, VisibleLine{SourceIndex: idx, DisplayRowStart: row})
		row += d.lines[idx].DisplayRows()
	}
}

// AppendInfoLine appends a single line carrying metadata, updating the
// visibility index incrementally (O(1) amortized): a VisibleLine entry is
// pushed iff the new line currently passes the filter.
func (d *Document) AppendInfoLine(text string, meta Meta) {
	d.mu.Lock()
	defer d.mu.Unlock()

	line := Line{
		Text:    stripCR([]rune(text)),
		HasMeta: true,
		Meta:    meta,
	}
	line.NewlineCount = countRune(line.Text, '\n')
	d.lines = append(d.lines, line)

	newIndex := len(d.lines) - 1
	newLen := d.prefixLengthLocked(&d.lines[newIndex]) + len(d.lines[newIndex].Text)
	d.onLineLengthChangedLocked(newIndex, newLen)

	if d.totalLengthValid {
		back := &d.lines[newIndex]
		d.cachedTotalLength += d.prefixLengthLocked(back) + len(back.Text)
		if len(d.lines) > 1 {
			d.cachedTotalLength++
		}
	}

	if d.offsetsValid {
		if len(d.lineOffsets) != newIndex {
			d.offsetsValid = false
		} else {
			offset := 0
			if len(d.lineOffsets) > 0 {
				prev := &d.lines[newIndex-1]
				offset = d.lineOffsets[newIndex-1] + d.prefixLengthLocked(prev) + len(prev.Text) + 1
			}
			d.lineOffsets = append(d.lineOffsets, offset)
		}
	}

	if d.isLineVisibleLocked(newIndex) {
		displayRow := 0
		if n := len(d.visible); n > 0 {
			last := d.visible[n-1]
			displayRow = last.DisplayRowStart + d.lines[last.SourceIndex].DisplayRows()
		}
		d.visible = append(d.visible, VisibleLine{SourceIndex: newIndex, DisplayRowStart: displayRow})
	}

	d.updateDirtyRangeLocked(newIndex, newIndex)
}

// SetFilterMask rebuilds the visibility index for the new mask. The full
// O(n) rebuild is acceptable here: it only runs on a rare, explicit user
// action.
func (d *Document) SetFilterMask(mask FilterMask) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.filterMask == mask {
		return
	}
	d.filterMask = mask
	d.rebuildVisibleLinesLocked()
	d.invalidateCaches(reasonFilterChanged)
	d.markAllDirtyLocked()
}

// FilterMask returns the current filter mask.
func (d *Document) FilterMask() FilterMask {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.filterMask
}

func (d *Document) rebuildVisibleLinesLocked() {
	d.visible = d.visible[:0]
	displayRow := 0
	for i := range d.lines {
		if !d.isLineVisibleLocked(i) {
			continue
		}
		d.visible = append(d.visible, VisibleLine{SourceIndex: i, DisplayRowStart: displayRow})
		displayRow += d.lines[i].DisplayRows()
	}
}

func (d *Document) isLineVisibleLocked(sourceIndex int) bool {
	if sourceIndex >= len(d.lines) {
		return false
	}
	line := &d.lines[sourceIndex]
	if !line.HasMeta {
		return true
	}
	return d.filterMask.Allows(line.Meta.Type)
}

// IsLineVisible reports whether the given source line currently passes the
// filter.
func (d *Document) IsLineVisible(sourceIndex int) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.isLineVisibleLocked(sourceIndex)
}

// EnableShowIDs toggles whether process/thread IDs appear in the prefix.
func (d *Document) EnableShowIDs(enable bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.showIDs = enable
	d.invalidateCaches(reasonShowIDsChanged)
	d.markAllDirtyLocked()
}

// ShowIDs reports whether process/thread IDs are currently shown.
func (d *Document) ShowIDs() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.showIDs
}

// NotifyFontChanged invalidates width-measurement caches only (cached
// display strings remain valid).
func (d *Document) NotifyFontChanged() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.invalidateCaches(reasonFontChanged)
	d.markAllDirtyLocked()
}

// NotifyThemeChanged is a documented no-op: theme changes touch no
// Document-side cache.
func (d *Document) NotifyThemeChanged() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.invalidateCaches(reasonThemeChanged)
}

// VisibleLineCount returns the number of lines currently passing the
// filter.
func (d *Document) VisibleLineCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.visible)
}

// TotalLineCount returns the total number of source lines.
func (d *Document) TotalLineCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.lines)
}

// TotalLength returns the total character length of the document (prefixes
// included, with a single separator between adjacent source lines).
//
// This takes the exclusive lock rather than a shared one: computing the
// cache mutates Document state, and only the UI thread is expected to call
// it.
func (d *Document) TotalLength() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ensureTotalLengthValidLocked()
	return d.cachedTotalLength
}

func (d *Document) ensureTotalLengthValidLocked() {
	if d.totalLengthValid {
		return
	}
	total := 0
	for i := range d.lines {
		total += d.prefixLengthLocked(&d.lines[i]) + len(d.lines[i].Text)
		if i+1 < len(d.lines) {
			total++
		}
	}
	d.cachedTotalLength = total
	d.totalLengthValid = true
}

// LongestLineChars returns the length (prefix + text) of the longest source
// line. Like TotalLength, this takes the exclusive lock to fill its cache.
func (d *Document) LongestLineChars() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.maxLineCharsValid {
		return d.maxLineChars
	}
	maxChars, maxIdx := 0, 0
	for i := range d.lines {
		n := d.prefixLengthLocked(&d.lines[i]) + len(d.lines[i].Text)
		if n > maxChars {
			maxChars = n
			maxIdx = i
		}
	}
	d.maxLineChars = maxChars
	d.maxLineIndex = maxIdx
	d.maxLineCharsValid = true
	return maxChars
}

// GetVisibleLine returns a copy of the line at the given visible index.
// Out-of-range indices return the zero Line.
func (d *Document) GetVisibleLine(visibleIndex int) Line {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if visibleIndex < 0 || visibleIndex >= len(d.visible) {
		return Line{}
	}
	src := d.visible[visibleIndex].SourceIndex
	if src >= len(d.lines) {
		return Line{}
	}
	return d.lines[src]
}

// GetSourceLine returns a copy of the line at the given source index.
func (d *Document) GetSourceLine(sourceIndex int) Line {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if sourceIndex < 0 || sourceIndex >= len(d.lines) {
		return Line{}
	}
	return d.lines[sourceIndex]
}

// VisibleLines returns a copy of the current visibility index.
func (d *Document) VisibleLines() []VisibleLine {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]VisibleLine, len(d.visible))
	copy(out, d.visible)
	return out
}

// DisplayRowForVisible returns the display row at which the given visible
// index starts; past the end it returns the total row count.
func (d *Document) DisplayRowForVisible(visibleIndex int) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if visibleIndex >= len(d.visible) {
		return d.totalDisplayRowsLocked()
	}
	return d.visible[visibleIndex].DisplayRowStart
}

// VisibleIndexFromDisplayRow finds, by binary search, the visible index
// whose row range contains displayRow.
func (d *Document) VisibleIndexFromDisplayRow(displayRow int) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if len(d.visible) == 0 {
		return 0
	}
	// First element with DisplayRowStart > displayRow.
	idx := sort.Search(len(d.visible), func(i int) bool {
		return d.visible[i].DisplayRowStart > displayRow
	})
	if idx == 0 {
		return 0
	}
	return idx - 1
}

func (d *Document) totalDisplayRowsLocked() int {
	if len(d.visible) == 0 {
		return 0
	}
	last := d.visible[len(d.visible)-1]
	return last.DisplayRowStart + d.lines[last.SourceIndex].DisplayRows()
}

// TotalDisplayRows returns the total number of display rows across all
// visible lines.
func (d *Document) TotalDisplayRows() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.totalDisplayRowsLocked()
}

// DisplayRowForSource maps a source line index to a display row: for a
// filtered-out line this returns the next visible line's start row (or the
// total row count if none follows).
func (d *Document) DisplayRowForSource(sourceIndex int) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if sourceIndex >= len(d.lines) || len(d.visible) == 0 {
		return d.totalDisplayRowsLocked()
	}
	idx := sort.Search(len(d.visible), func(i int) bool {
		return d.visible[i].SourceIndex >= sourceIndex
	})
	if idx < len(d.visible) {
		return d.visible[idx].DisplayRowStart
	}
	return d.totalDisplayRowsLocked()
}

func stripCR(runes []rune) []rune {
	out := runes[:0:0]
	for _, r := range runes {
		if r != '\r' {
			out = append(out, r)
		}
	}
	return out
}

func countRune(runes []rune, target rune) int {
	n := 0
	for _, r := range runes {
		if r == target {
			n++
		}
	}
	return n
}
