// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package document

import "image/color"

// AddColorRange paints [start, start+length) of the flat, unfiltered
// character space with color, splitting the run across source lines and
// clipping each resulting span to that line's text (the prefix is never
// colored).
func (d *Document) AddColorRange(start, length int, c color.RGBA) {
	if length <= 0 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	st := d.getLineAndOffsetLocked(start)
	ed := d.getLineAndOffsetLocked(start + length - 1)

	for i := st.Line; i <= ed.Line && i < len(d.lines); i++ {
		line := &d.lines[i]
		plen := d.prefixLengthLocked(line)

		localStartFull := 0
		if i == st.Line {
			localStartFull = st.Char
		}
		localEndFull := plen + len(line.Text) - 1
		if i == ed.Line {
			localEndFull = ed.Char
		}

		localStart := localStartFull - plen
		if localStart < 0 {
			localStart = 0
		}
		localEnd := localEndFull - plen
		if localEnd < 0 {
			localEnd = 0
		}
		localLen := localEnd - localStart + 1

		if localLen > 0 && localStart < len(line.Text) {
			if max := len(line.Text) - localStart; localLen > max {
				localLen = max
			}
			line.Spans = append(line.Spans, ColorSpan{Start: localStart, Length: localLen, Color: c})
		}
	}
}

// ClearColoring removes all color spans from every line.
func (d *Document) ClearColoring() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.lines {
		d.lines[i].Spans = nil
	}
}
