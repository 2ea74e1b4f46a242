// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package document

import (
	"sort"

	"cogentcore.org/core/text/textpos"
)

// ensureOffsetsValidLocked recomputes the cumulative line-start offset
// table. Caller must hold the exclusive lock.
func (d *Document) ensureOffsetsValidLocked() {
	if d.offsetsValid {
		return
	}
	d.lineOffsets = d.lineOffsets[:0]
	offset := 0
	for i := range d.lines {
		d.lineOffsets = append(d.lineOffsets, offset)
		offset += d.prefixLengthLocked(&d.lines[i]) + len(d.lines[i].Text) + 1
	}
	d.offsetsValid = true
}

// GetLineStartOffset returns the character offset at which source line i
// begins. O(1) once the offset table is valid.
func (d *Document) GetLineStartOffset(sourceIndex int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if sourceIndex < 0 || sourceIndex >= len(d.lines) {
		return 0
	}
	d.ensureOffsetsValidLocked()
	if len(d.lineOffsets) != len(d.lines) {
		return 0
	}
	return d.lineOffsets[sourceIndex]
}

// getLineAndOffsetLocked maps a flat character position to a textpos.Pos:
// the source line plus the offset within that line's prefix+text span.
// Positions are clamped.
func (d *Document) getLineAndOffsetLocked(position int) textpos.Pos {
	if len(d.lines) == 0 {
		return textpos.Pos{}
	}
	lastIdx := len(d.lines) - 1
	d.ensureOffsetsValidLocked()
	if len(d.lineOffsets) != len(d.lines) {
		return textpos.Pos{Line: lastIdx}
	}

	lastStart := d.lineOffsets[lastIdx]
	lastLen := d.prefixLengthLocked(&d.lines[lastIdx]) + len(d.lines[lastIdx].Text)
	totalLen := lastStart + lastLen

	if position >= totalLen {
		return textpos.Pos{Line: lastIdx, Char: lastLen}
	}
	if position < 0 {
		position = 0
	}

	// Find the line such that lineStart <= position < nextLineStart.
	idx := sort.Search(len(d.lineOffsets), func(i int) bool {
		return d.lineOffsets[i] > position
	})
	if idx == 0 {
		idx = 1
	}
	idx--
	lineStart := d.lineOffsets[idx]
	off := position - lineStart
	lineLen := d.prefixLengthLocked(&d.lines[idx]) + len(d.lines[idx].Text)
	if off > lineLen {
		off = lineLen
	}
	return textpos.Pos{Line: idx, Char: off}
}

// GetLineAndOffset maps a flat character position to a textpos.Pos (source
// line, offset within that line's prefix+text span).
func (d *Document) GetLineAndOffset(position int) textpos.Pos {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.getLineAndOffsetLocked(position)
}

// appendSliceLocked appends the slice of line's unified (prefix+text) range
// [from, from+count) to result.
func (d *Document) appendSliceLocked(result []rune, line *Line, from, count int) []rune {
	if count <= 0 {
		return result
	}
	plen := d.prefixLengthLocked(line)
	if from < plen {
		prefix := d.buildPrefixLocked(line)
		firstPart := count
		if rem := plen - from; rem < firstPart {
			firstPart = rem
		}
		result = append(result, prefix[from:from+firstPart]...)
		if count > firstPart {
			rem := count - firstPart
			tcopy := rem
			if tcopy > len(line.Text) {
				tcopy = len(line.Text)
			}
			result = append(result, line.Text[:tcopy]...)
		}
		return result
	}
	off := from - plen
	avail := len(line.Text) - off
	if avail < 0 {
		avail = 0
	}
	tcopy := count
	if tcopy > avail {
		tcopy = avail
	}
	if off < len(line.Text) && tcopy > 0 {
		result = append(result, line.Text[off:off+tcopy]...)
	}
	return result
}

// GetTextRange returns the contiguous unfiltered text in [start, start+length),
// inserting a '\n' between adjacent source lines (never a trailing one).
func (d *Document) GetTextRange(start, length int) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if length <= 0 {
		return ""
	}

	st := d.getLineAndOffsetLocked(start)
	ed := d.getLineAndOffsetLocked(start + length - 1)

	var result []rune

	if st.Line == ed.Line {
		if st.Line < len(d.lines) {
			result = d.appendSliceLocked(result, &d.lines[st.Line], st.Char, length)
		}
		return string(result)
	}

	if st.Line < len(d.lines) {
		fl := &d.lines[st.Line]
		flTotal := d.prefixLengthLocked(fl) + len(fl.Text)
		if st.Char < flTotal {
			result = d.appendSliceLocked(result, fl, st.Char, flTotal-st.Char)
		}
		result = append(result, '\n')
	}
	for i := st.Line + 1; i < ed.Line && i < len(d.lines); i++ {
		ml := &d.lines[i]
		result = append(result, d.buildPrefixLocked(ml)...)
		result = append(result, ml.Text...)
		result = append(result, '\n')
	}
	if ed.Line < len(d.lines) {
		ll := &d.lines[ed.Line]
		upto := ed.Char + 1
		max := d.prefixLengthLocked(ll) + len(ll.Text)
		if upto > max {
			upto = max
		}
		result = d.appendSliceLocked(result, ll, 0, upto)
	}
	return string(result)
}

// FilteredTailText is the result of BuildFilteredTailText: the '\n'-joined
// display text of the visible lines in a source-line range, plus per-line
// metadata for mapping layout offsets back to source lines.
type FilteredTailText struct {
	Text         string
	Lines        []LineInfo
	VisibleCount int
}

// BuildFilteredTailText returns, in a single locked pass, the joined display
// text of the visible lines within [firstAll, lastAll] (inclusive, source
// indices), without a trailing newline.
func (d *Document) BuildFilteredTailText(firstAll, lastAll int) FilteredTailText {
	d.mu.Lock()
	defer d.mu.Unlock()

	var result FilteredTailText
	if firstAll >= len(d.lines) || firstAll < 0 {
		return result
	}
	if lastAll >= len(d.lines) {
		lastAll = len(d.lines) - 1
	}
	result.Lines = make([]LineInfo, 0, lastAll-firstAll+1)

	var text []rune
	for i := firstAll; i <= lastAll; i++ {
		if !d.isLineVisibleLocked(i) {
			continue
		}
		result.VisibleCount++
		disp := d.displayStringLocked(i)
		line := &d.lines[i]
		result.Lines = append(result.Lines, LineInfo{
			SourceIndex:  i,
			PrefixLength: d.prefixLengthLocked(line),
			TextLength:   len(line.Text),
			HasMeta:      line.HasMeta,
			Type:         line.Meta.Type,
		})
		text = append(text, disp...)
		text = append(text, '\n')
	}
	if len(text) > 0 {
		text = text[:len(text)-1]
	}
	result.Text = string(text)
	return result
}
