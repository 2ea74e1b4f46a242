// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package document

import (
	"bytes"
	"image/color"
	"testing"
	"time"

	"cogentcore.org/core/text/textpos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metaAt(t MetaType, h, m, s, ms int, pid, tid uint32) Meta {
	return Meta{
		Type:      t,
		Time:      time.Date(2026, 1, 1, h, m, s, ms*int(time.Millisecond), time.UTC),
		ProcessID: pid,
		ThreadID:  tid,
	}
}

// The visibility index is strictly increasing in SourceIndex and
// DisplayRowStart, and consecutive row deltas equal the line's DisplayRows().
func TestVisibleLinesMonotonic(t *testing.T) {
	d := New()
	d.AppendInfoLine("a\nb", metaAt(Info, 1, 0, 0, 0, 1, 1))
	d.AppendInfoLine("c", metaAt(Error, 1, 0, 0, 0, 1, 1))
	d.AppendInfoLine("d", metaAt(Warning, 1, 0, 0, 0, 1, 1))
	d.SetFilterMask(FilterAll)

	vis := d.VisibleLines()
	require.Len(t, vis, 3)
	for k := 0; k < len(vis)-1; k++ {
		assert.Less(t, vis[k].SourceIndex, vis[k+1].SourceIndex)
		assert.Less(t, vis[k].DisplayRowStart, vis[k+1].DisplayRowStart)
		line := d.GetSourceLine(vis[k].SourceIndex)
		assert.Equal(t, line.DisplayRows(), vis[k+1].DisplayRowStart-vis[k].DisplayRowStart)
	}
}

// GetLineAndOffset(GetLineStartOffset(i)) == (i, 0) for every line, and
// the total-length position maps to the last line's end.
func TestLineAndOffsetRoundTrip(t *testing.T) {
	d := New()
	d.AppendInfoLine("hello", metaAt(Info, 1, 0, 0, 0, 1, 2))
	d.AppendInfoLine("world", metaAt(Error, 1, 0, 0, 0, 1, 2))

	for i := 0; i < d.TotalLineCount(); i++ {
		off := d.GetLineStartOffset(i)
		assert.Equal(t, textpos.Pos{Line: i}, d.GetLineAndOffset(off))
	}

	lastIdx := d.TotalLineCount() - 1
	lastLine := d.GetSourceLine(lastIdx)
	wantLen := d.PrefixLength(lastIdx) + len(lastLine.Text)
	p := d.GetLineAndOffset(d.TotalLength())
	assert.Equal(t, textpos.Pos{Line: lastIdx, Char: wantLen}, p)
}

// GetTextRange(0, TotalLength()) equals the '\n'-joined display strings of
// every source line.
func TestTextRangeMatchesDisplayConcat(t *testing.T) {
	d := New()
	d.AppendInfoLine("hello", metaAt(Info, 1, 0, 0, 0, 1, 2))
	d.AppendInfoLine("world", metaAt(Error, 1, 0, 0, 0, 1, 2))

	var want string
	for i := 0; i < d.TotalLineCount(); i++ {
		if i > 0 {
			want += "\n"
		}
		want += d.GetDisplayTextAll(i)
	}
	got := d.GetTextRange(0, d.TotalLength())
	assert.Equal(t, want, got)
}

// A line is visible iff it has no metadata, or its filter mask bit is set.
func TestFilterMaskVisibility(t *testing.T) {
	d := New()
	d.AppendText("untyped line")
	d.AppendInfoLine("an error", metaAt(Error, 1, 0, 0, 0, 1, 1))
	d.AppendInfoLine("a warning", metaAt(Warning, 1, 0, 0, 0, 1, 1))

	d.SetFilterMask(PresetErrorsOnly)
	assert.True(t, d.IsLineVisible(0)) // untyped lines always pass
	assert.True(t, d.IsLineVisible(1))
	assert.False(t, d.IsLineVisible(2))
	assert.Equal(t, 2, d.VisibleLineCount())
}

// Appending two metadata lines and reading the whole range back.
func TestScenarioAppendThenQuery(t *testing.T) {
	d := New()
	m := metaAt(Info, 10, 0, 0, 0, 1, 2)
	d.AppendInfoLine("hello", m)
	m2 := metaAt(Error, 10, 0, 0, 0, 1, 2)
	d.AppendInfoLine("world", m2)

	assert.Equal(t, 2, d.TotalLineCount())
	assert.Equal(t, 2, d.VisibleLineCount())

	want := d.GetDisplayTextAll(0) + "\n" + d.GetDisplayTextAll(1)
	got := d.GetTextRange(0, d.TotalLength())
	assert.Equal(t, want, got)
}

// Errors-only filtering leaves just the error line visible.
func TestScenarioFilterErrorsOnly(t *testing.T) {
	d := New()
	d.AppendInfoLine("hello", metaAt(Info, 10, 0, 0, 0, 1, 2))
	d.AppendInfoLine("world", metaAt(Error, 10, 0, 0, 0, 1, 2))

	d.SetFilterMask(PresetErrorsOnly)
	assert.Equal(t, 1, d.VisibleLineCount())
	vis := d.VisibleLines()
	require.Len(t, vis, 1)
	assert.Equal(t, 1, vis[0].SourceIndex)
	assert.Equal(t, 1, d.TotalDisplayRows())
}

// A line with embedded newlines occupies multiple display rows.
func TestScenarioMultiRowLines(t *testing.T) {
	d := New()
	d.AppendInfoLine("a\nb\nc", metaAt(Info, 10, 0, 0, 0, 1, 2))

	line0 := d.GetSourceLine(0)
	assert.Equal(t, 2, line0.NewlineCount)
	assert.Equal(t, 3, d.TotalDisplayRows())
	assert.Equal(t, 0, d.DisplayRowForSource(0))

	d.AppendInfoLine("d", metaAt(Info, 10, 0, 0, 0, 1, 2))
	assert.Equal(t, 3, d.DisplayRowForSource(1))
}

// Re-reading the tail of a previously returned range yields the same
// characters, even when clamping shortened the first read.
func TestTextRangeSuffixRoundTrip(t *testing.T) {
	d := New()
	d.AppendInfoLine("hello", metaAt(Info, 10, 0, 0, 0, 1, 2))
	d.AppendInfoLine("world", metaAt(Error, 10, 0, 0, 0, 1, 2))

	r := []rune(d.GetTextRange(5, 10))
	again := d.GetTextRange(5+10-len(r), len(r))
	assert.Equal(t, string(r[len(r)-len([]rune(again)):]), again)
}

// Boundary: an empty document returns consistent zero/empty results.
func TestEmptyDocumentBoundary(t *testing.T) {
	d := New()
	assert.Equal(t, 0, d.TotalLineCount())
	assert.Equal(t, 0, d.VisibleLineCount())
	assert.Equal(t, 0, d.TotalLength())
	assert.Equal(t, 0, d.TotalDisplayRows())
	assert.Equal(t, "", d.GetTextRange(0, 10))
}

// Boundary: a filter that hides all metadata lines leaves only untyped
// lines visible. AppendText continues onto whatever line is currently last,
// so a leading '\n' is needed to start a fresh untyped line after the
// metadata line AppendInfoLine always pushes.
func TestFilterHidesAllMetaBoundary(t *testing.T) {
	d := New()
	d.AppendText("plain one\n")
	d.AppendInfoLine("typed", metaAt(Debug, 1, 0, 0, 0, 0, 0))
	d.AppendText("\nplain two")

	var untyped int
	for i := 0; i < d.TotalLineCount(); i++ {
		if !d.GetSourceLine(i).HasMeta {
			untyped++
		}
	}

	d.SetFilterMask(0)
	assert.Equal(t, untyped, d.VisibleLineCount())
}

// AddColorRange clips color spans to a line's text, excluding its prefix.
func TestColorRangeClipsToTextOnly(t *testing.T) {
	d := New()
	d.AppendInfoLine("hello", metaAt(Info, 1, 0, 0, 0, 1, 1))

	prefixLen := d.PrefixLength(0)
	d.AddColorRange(prefixLen, 3, color.RGBA{R: 255, A: 255})

	line := d.GetSourceLine(0)
	require.Len(t, line.Spans, 1)
	assert.Equal(t, 0, line.Spans[0].Start)
	assert.Equal(t, 3, line.Spans[0].Length)

	d.ClearColoring()
	line = d.GetSourceLine(0)
	assert.Empty(t, line.Spans)
}

// SaveVisible writes the UTF-8 BOM followed by one '\n'-terminated,
// prefix-free line per visible source line.
func TestSaveVisibleFormat(t *testing.T) {
	d := New()
	d.AppendInfoLine("hello", metaAt(Info, 1, 0, 0, 0, 1, 1))
	d.AppendInfoLine("world", metaAt(Error, 1, 0, 0, 0, 1, 1))

	var buf bytes.Buffer
	require.NoError(t, d.SaveVisible(&buf))

	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, utf8BOM))
	assert.Equal(t, "hello\nworld\n", string(out[len(utf8BOM):]))
}
