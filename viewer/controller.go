// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewer

import (
	"sync"

	"github.com/tracepane/tracepane/document"
	"github.com/tracepane/tracepane/findbar"
	"github.com/tracepane/tracepane/layout"
)

// Controller owns viewport state, selection/caret, search state and
// matches, mode transitions, cache invalidation orchestration, and
// scheduling of async work. The window message pump lives in cmd/tracepane;
// Controller is toolkit-independent.
type Controller struct {
	mu sync.Mutex

	doc  *document.Document
	find findbar.Overlay

	mode      Mode
	viewport  Viewport
	caret     Caret
	search    Search
	scheduler Scheduler
	seq       layout.Sequencer

	currentSliceFirstVisible int
	currentSliceLastVisible  int
	sliceValid               bool

	focused bool
}

// New returns a Controller in its initial state: auto-scroll, no selection,
// all message types visible (doc is expected to already carry that default
// from document.New).
func New(doc *document.Document) *Controller {
	return &Controller{
		doc:                      doc,
		mode:                     AutoScroll,
		currentSliceFirstVisible: -1,
		currentSliceLastVisible:  -1,
	}
}

// Mode returns the current rendering mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Viewport returns a copy of the current viewport state.
func (c *Controller) Viewport() Viewport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewport
}

// Caret returns a copy of the current caret/selection state.
func (c *Controller) Caret() Caret {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.caret
}

// enterScrollBackLocked marks the current slice invalid and bumps the
// sequence, so packets from older jobs are dropped. It does not request a
// layout itself; the next slice comes from the next layout job launched.
func (c *Controller) enterScrollBackLocked() {
	if c.mode == ScrollBack {
		return
	}
	c.mode = ScrollBack
	c.sliceValid = false
	c.seq.Next()
}

// enterAutoScrollLocked bumps the sequence, so packets from older jobs are
// dropped, and scrolls to bottom synchronously. It does not rebuild the
// tail layout; the tail changes when the next layout packet arrives.
func (c *Controller) enterAutoScrollLocked() {
	c.mode = AutoScroll
	c.seq.Next()
	c.refreshContentHeightLocked()
	c.viewport.ScrollToBottom()
}

func (c *Controller) refreshContentHeightLocked() {
	c.viewport.ContentHeight = float32(c.doc.TotalDisplayRows()) * c.viewport.LineHeight
}

// OnUserScroll handles any nonzero-delta scroll-up input while in
// auto-scroll by switching to scroll-back. deltaY is in DIP, negative
// meaning "scroll up" (content moves down).
func (c *Controller) OnUserScroll(deltaY float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode == AutoScroll && deltaY < 0 {
		c.enterScrollBackLocked()
	}
	c.viewport.ScrollY += deltaY
	c.viewport.ClampScroll()
}

// OnJumpToBottom handles End / SB_BOTTOM / click-outside-selection-at-end:
// switches to AUTO_SCROLL and scrolls to the bottom.
func (c *Controller) OnJumpToBottom() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enterAutoScrollLocked()
}

// SetModeExplicit handles the explicit Options > Auto-Scroll menu toggle,
// updating the mode directly regardless of scroll position.
func (c *Controller) SetModeExplicit(m Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m == AutoScroll {
		c.enterAutoScrollLocked()
	} else {
		c.enterScrollBackLocked()
	}
}

// OnAppend is called after the document receives new lines (from
// ingest.Queue draining or a direct append call). In the absence of user
// input the mode stays auto-scroll and ScrollY tracks the content bottom.
// newLineCount feeds the adaptive scheduler.
func (c *Controller) OnAppend(newLineCount int) (shouldArmTimer bool, decision Decision) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.refreshContentHeightLocked()
	if c.mode == AutoScroll {
		c.viewport.ScrollToBottom()
	}
	return c.scheduler.Request(newLineCount)
}

// CurrentSequence returns the sequence number the next layout job must
// carry; FireLayoutTimer bumps it.
func (c *Controller) CurrentSequence() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq.Current()
}

// FireLayoutTimer marks the debounce timer as fired and bumps the
// sequencer, returning the new sequence number the launched job should
// carry. Call this when the armed timer (fast or standard, per Decide)
// elapses.
func (c *Controller) FireLayoutTimer() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scheduler.Fire()
	return c.seq.Next()
}

// IsSequenceCurrent reports whether seq is still the newest issued
// sequence; the caller drops a delivered LayoutPacket/WidthPacket
// otherwise.
func (c *Controller) IsSequenceCurrent(seq uint32) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq.IsCurrent(seq)
}

// NoteSliceCoverage records which visible-line range the most recently
// built slice covers, so NeedsNewSliceNow can decide whether a scroll has
// left the safety margin.
func (c *Controller) NoteSliceCoverage(firstVisible, lastVisible int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentSliceFirstVisible = firstVisible
	c.currentSliceLastVisible = lastVisible
	c.sliceValid = true
}

// NeedsNewSliceNow reports whether the current viewport's visible-line
// range has left the current slice's safety margin (or no slice exists
// yet).
func (c *Controller) NeedsNewSliceNow(visibleFirst, visibleLast int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.sliceValid {
		return true
	}
	return NeedsNewSlice(visibleFirst, visibleLast, c.currentSliceFirstVisible, c.currentSliceLastVisible)
}

// SetFindStartMode chooses where the next find anchors from.
func (c *Controller) SetFindStartMode(m findbar.StartMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.find.StartFrom = m
}

// SelectAt handles a left-click: sets the caret and collapses the
// selection. If the viewer was in auto-scroll, selecting history switches
// to scroll-back; no layout is run here.
func (c *Controller) SelectAt(pos int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.caret.CollapseTo(pos)
	if c.mode == AutoScroll {
		c.enterScrollBackLocked()
	}
}

// ExtendSelectionTo handles a drag-with-capture: extends the selection to
// pos, switching out of AUTO_SCROLL the same way SelectAt does.
func (c *Controller) ExtendSelectionTo(pos int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == AutoScroll {
		c.enterScrollBackLocked()
	}
	c.caret.ExtendTo(pos)
}

// MoveCaret applies a decoded key motion, optionally extending the
// selection (Shift held).
func (c *Controller) MoveCaret(m CaretMotion, extend bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if extend {
		c.caret.MoveExtending(c.doc, m)
	} else {
		c.caret.Move(c.doc, m)
	}
}

// SelectAll selects the entire document (Ctrl+A).
func (c *Controller) SelectAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.caret.SelectAll(c.doc)
}

// CopySelection returns the clipboard text for the current selection,
// intersected with currently visible lines.
func (c *Controller) CopySelection() string {
	c.mu.Lock()
	sel := c.caret.Selection()
	c.mu.Unlock()
	if sel.Empty() {
		return ""
	}
	return VisibleIntersectionText(c.doc, sel)
}

// VisibleIntersectionText returns the text of sel, source lines not
// currently passing the filter stripped out.
func VisibleIntersectionText(doc *document.Document, sel document.Selection) string {
	startLine := doc.GetLineAndOffset(sel.Start).Line
	endLine := doc.GetLineAndOffset(sel.End).Line

	var out []string
	for i := startLine; i <= endLine; i++ {
		if !doc.IsLineVisible(i) {
			continue
		}
		lineStart := doc.GetLineStartOffset(i)
		text := doc.GetDisplayTextAll(i)
		runes := []rune(text)
		lo, hi := 0, len(runes)
		if i == startLine {
			if rel := sel.Start - lineStart; rel > lo {
				lo = rel
			}
		}
		if i == endLine {
			if rel := sel.End - lineStart; rel < hi {
				hi = rel
			}
		}
		if lo < 0 {
			lo = 0
		}
		if hi > len(runes) {
			hi = len(runes)
		}
		if lo > hi {
			lo = hi
		}
		out = append(out, string(runes[lo:hi]))
	}
	joined := ""
	for i, s := range out {
		if i > 0 {
			joined += "\n"
		}
		joined += s
	}
	return joined
}

// SetSearchQuery rebuilds the match list for a new query, scanning only
// visible lines when a filter is active.
func (c *Controller) SetSearchQuery(query string, caseSensitive bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search.SetQuery(query, caseSensitive)
	c.search.RebuildMatches(c.doc, c.doc.FilterMask() != document.FilterAll)
}

// Matches returns a copy of the current match list.
func (c *Controller) Matches() []Match {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Match, len(c.search.Matches))
	copy(out, c.search.Matches)
	return out
}

// FindNext selects the next (or, if backward, previous) match relative to
// the find bar's configured start mode, updates the caret/selection, and
// ensures the caret becomes visible by switching to SCROLL_BACK if needed
// and scrolling the match's line to the top when it is off screen.
func (c *Controller) FindNext(backward bool) (Match, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := FindNext(&c.search, c.caret.Pos, c.find.StartFrom, backward)
	if !ok {
		return Match{}, false
	}
	c.caret.CollapseTo(m.Start)
	c.caret.Pos = m.End
	if c.mode == AutoScroll {
		c.enterScrollBackLocked()
	}
	row := c.doc.DisplayRowForSource(c.doc.GetLineAndOffset(m.Start).Line)
	if y := float32(row) * c.viewport.LineHeight; y < c.viewport.ScrollY || y+c.viewport.LineHeight > c.viewport.ScrollY+c.viewport.ClientH {
		c.refreshContentHeightLocked()
		c.viewport.ScrollY = y
		c.viewport.ClampScroll()
	}
	return m, true
}

// SetFocused records window focus state; the caret only draws while
// focused.
func (c *Controller) SetFocused(focused bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.focused = focused
}

// Focused reports whether the viewer currently has input focus.
func (c *Controller) Focused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.focused
}

// OnDeviceLost resets pending async work by bumping the sequence, so any
// in-flight packets are discarded and a fresh layout is requested on the
// next paint.
func (c *Controller) OnDeviceLost() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq.Next()
	c.sliceValid = false
}

// NoteContentWidth records the approximate content width used for the
// horizontal scrollbar extent, clamping ScrollX into the new range.
func (c *Controller) NoteContentWidth(w float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if w > c.viewport.ApproxContentWidth {
		c.viewport.ApproxContentWidth = w
	}
	c.viewport.HorizontalScrollbarVisible = c.viewport.ApproxContentWidth > c.viewport.ClientW
	c.viewport.ClampScroll()
}

// SetViewportSize updates client dimensions/DPI/line height, clamping
// scroll into range afterward.
func (c *Controller) SetViewportSize(w, h, dpi, lineHeight float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewport.ClientW, c.viewport.ClientH, c.viewport.DPI, c.viewport.LineHeight = w, h, dpi, lineHeight
	c.refreshContentHeightLocked()
	c.viewport.ClampScroll()
}
