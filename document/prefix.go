// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package document

import (
	"fmt"
)

// prefixLengthLocked returns the cached prefix length for line, computing
// (and caching) it on first access. Caller must hold d.mu exclusively, since
// a first access writes the line's prefix cache.
func (d *Document) prefixLengthLocked(line *Line) int {
	if !line.HasMeta {
		return 0
	}
	if line.prefixValid {
		return len(line.cachedPrefix)
	}
	prefix := d.buildPrefixLocked(line)
	return len(prefix)
}

// buildPrefixLocked computes and caches the display prefix: emoji + time +
// optional "PID:TID" + trailing space.
func (d *Document) buildPrefixLocked(line *Line) []rune {
	if !line.HasMeta {
		return nil
	}
	if line.prefixValid {
		return line.cachedPrefix
	}

	var b []rune
	b = append(b, []rune(line.Meta.Type.emoji())...)
	b = append(b, []rune(line.Meta.Time.Format("15:04:05.000"))...)

	if d.showIDs && (line.Meta.ProcessID != 0 || line.Meta.ThreadID != 0) {
		ids := fmt.Sprintf(" %d:%d", line.Meta.ProcessID, line.Meta.ThreadID)
		b = append(b, []rune(ids)...)
	}
	b = append(b, ' ')

	line.cachedPrefix = b
	line.prefixValid = true
	// The prefix feeds into the display string, so a freshly built prefix
	// invalidates any stale cached display.
	line.cachedDisplay = nil
	line.displayValid = false
	return b
}

// PrefixLength returns the prefix length (0 for lines without metadata) for
// a source line.
func (d *Document) PrefixLength(sourceIndex int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if sourceIndex < 0 || sourceIndex >= len(d.lines) {
		return 0
	}
	return d.prefixLengthLocked(&d.lines[sourceIndex])
}

// displayStringLocked returns the cached display string (prefix + text,
// carriage returns stripped) for a source line, computing it if stale.
func (d *Document) displayStringLocked(sourceIndex int) []rune {
	line := &d.lines[sourceIndex]
	if line.displayValid {
		return line.cachedDisplay
	}
	prefix := d.buildPrefixLocked(line)
	out := make([]rune, 0, len(prefix)+len(line.Text))
	out = append(out, prefix...)
	out = append(out, line.Text...)
	line.cachedDisplay = out
	line.displayValid = true
	return out
}

// GetDisplayText returns the cached display string for the line at the
// given visible index.
func (d *Document) GetDisplayText(visibleIndex int) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if visibleIndex < 0 || visibleIndex >= len(d.visible) {
		return ""
	}
	src := d.visible[visibleIndex].SourceIndex
	if src >= len(d.lines) {
		return ""
	}
	return string(d.displayStringLocked(src))
}

// GetDisplayTextAll returns the cached display string for the line at the
// given source index, irrespective of visibility.
func (d *Document) GetDisplayTextAll(sourceIndex int) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if sourceIndex < 0 || sourceIndex >= len(d.lines) {
		return ""
	}
	return string(d.displayStringLocked(sourceIndex))
}
