// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"

	"cogentcore.org/core/math32"
	"cogentcore.org/core/text/shaped"
	"github.com/tracepane/tracepane/document"
	"github.com/tracepane/tracepane/theme"
)

// SliceView describes the currently available SCROLL_BACK slice layout, as
// produced by layout.Slice / layout.LayoutPacket.
type SliceView struct {
	FirstSourceLine int
	LastSourceLine  int
	FirstDisplayRow int
	Lines           *shaped.Lines
}

// Covers reports whether this slice's source-line range contains
// [visibleFirst, visibleLast].
func (s SliceView) Covers(visibleFirst, visibleLast int) bool {
	if s.Lines == nil {
		return false
	}
	return s.FirstSourceLine <= visibleFirst && visibleLast <= s.LastSourceLine
}

// SearchMatch is a single search hit in display-row/x-offset space, already
// projected by the ViewController from absolute character positions.
type SearchMatch struct {
	DisplayRow int
	StartX     float32
	Width      float32
}

// Caret is the caret's draw position, expressed in display-row/x-offset
// space. Visible gates whether it is drawn at all (focus, no selection,
// blink phase).
type Caret struct {
	Visible    bool
	DisplayRow int
	X          float32
}

// Input is everything a single Draw call needs; it is assembled fresh each
// frame by the view controller, so nothing a draw reads can be invalidated
// re-entrantly mid-paint.
type Input struct {
	ViewportSize math32.Vector2
	ScrollX      float32
	ScrollY      float32
	LineHeight   float32

	AutoScroll bool
	TailLayout *shaped.Lines

	Slice       SliceView
	SliceBitmap image.Image
	// Source-line indices of the first and last lines on screen; drawText
	// checks them against Slice's source-line range.
	VisibleFirst, VisibleLast int
	TotalDisplayRows          int

	GutterEnabled bool
	GutterDigits  int

	Selection      document.Selection
	SelectionRows  []SelectedRow // precomputed per-display-row selection spans
	SearchMatches  []SearchMatch
	Caret          Caret
	FindBarVisible bool

	Palette theme.Palette

	// OverflowClipped means the slice content was wider than the cacheable
	// width clamp; an overflow indicator is drawn at the right edge.
	OverflowClipped bool

	// PrevScrollY, when PartialPresentOK is true, lets Draw compute a
	// dirty-rect-only present for a pure vertical scroll.
	PrevScrollY      float32
	PartialPresentOK bool
}

// SelectedRow is one display row's horizontal selection span, in DIP.
type SelectedRow struct {
	DisplayRow int
	StartX     float32
	Width      float32
}

// Renderer draws one frame at a time through a Surface, choosing among the
// tail layout, cached slice bitmap, live slice layout, or a fallback
// layout.
type Renderer struct {
	surface Surface
	machine StateMachine
}

// New returns a Renderer drawing through surface.
func New(surface Surface) *Renderer {
	return &Renderer{surface: surface}
}

// State returns the current rendering state, mostly useful for tests and
// diagnostics.
func (r *Renderer) State() State { return r.machine.State() }

// NotifyLayoutReady transitions the state machine on a fresh (non-stale)
// layout packet.
func (r *Renderer) NotifyLayoutReady() { r.machine.OnLayoutReady() }

// NotifySliceBitmapRebuilt transitions on a successful bitmap rebuild.
func (r *Renderer) NotifySliceBitmapRebuilt() { r.machine.OnSliceBitmapRebuilt() }

// NotifyDeviceLost resets rendering state after a device-loss signal,
// requiring a full redraw on the next paint.
func (r *Renderer) NotifyDeviceLost() { r.machine.OnDeviceLost() }

// Draw renders one frame. Draw order: background clear, gutter fill, clip
// push when a partial present is in play, search highlights, selection,
// text, clip pop, gutter line numbers, caret.
func (r *Renderer) Draw(in Input) {
	if in.AutoScroll {
		r.machine.OnEnterAutoScroll()
	} else if in.Slice.Covers(in.VisibleFirst, in.VisibleLast) {
		if in.SliceBitmap != nil {
			r.machine.OnSliceBitmapRebuilt()
		} else {
			r.machine.OnLayoutReady()
		}
	} else {
		r.machine.OnSliceMiss()
	}

	r.drawBackground(in)
	if in.GutterEnabled {
		r.drawGutterFill(in)
	}

	partial := in.PartialPresentOK && in.ScrollY != in.PrevScrollY
	var dirty image.Rectangle
	if partial {
		dirty = partialDirtyRect(in)
		r.surface.PushClip(dirty)
	}

	r.drawSearchHighlights(in)
	r.drawSelection(in)
	r.drawText(in)

	if partial {
		r.surface.PopClip()
	}

	if in.GutterEnabled {
		r.drawGutterNumbers(in)
	}
	if in.OverflowClipped {
		r.drawOverflowIndicator(in)
	}
	if in.Caret.Visible {
		r.drawCaret(in)
	}
}

// drawOverflowIndicator marks that content wider than the slice cache width
// is clipped: a narrow band at the viewport's right edge.
func (r *Renderer) drawOverflowIndicator(in Input) {
	const bandW = 4
	r.surface.FillBox(
		math32.Vec2(in.ViewportSize.X-bandW, 0),
		math32.Vec2(bandW, in.ViewportSize.Y),
		in.Palette.SearchHighlight)
}

func (r *Renderer) drawBackground(in Input) {
	r.surface.FillBox(math32.Vector2{}, in.ViewportSize, in.Palette.Background)
}

func (r *Renderer) gutterWidth(in Input) float32 {
	if !in.GutterEnabled {
		return 0
	}
	return float32(in.GutterDigits+1) * 8
}

func (r *Renderer) drawGutterFill(in Input) {
	r.surface.FillBox(math32.Vector2{}, math32.Vec2(r.gutterWidth(in), in.ViewportSize.Y), in.Palette.GutterBg)
}

func (r *Renderer) drawGutterNumbers(in Input) {
	// Actual glyph drawing for line numbers goes through the same shaped
	// text path as the body; tracepane leaves the per-row layout to the
	// caller-supplied text in a real build and only draws the separator
	// rule here, since the gutter digits come from a shaped run the
	// ViewController already measured.
	w := r.gutterWidth(in)
	r.surface.StrokeLine(math32.Vec2(w, 0), math32.Vec2(w, in.ViewportSize.Y), in.Palette.GutterFg)
}

func (r *Renderer) drawCaret(in Input) {
	y := in.Caret.DisplayRowY(in.LineHeight) - in.ScrollY
	x := in.Caret.X + r.gutterWidth(in) - in.ScrollX
	r.surface.StrokeLine(math32.Vec2(x, y), math32.Vec2(x, y+in.LineHeight), in.Palette.Caret)
}

// DisplayRowY returns the y coordinate (content space, before scroll
// translation) at which a caret/row in display-row c sits.
func (c Caret) DisplayRowY(lineHeight float32) float32 {
	return float32(c.DisplayRow) * lineHeight
}

func (r *Renderer) drawSelection(in Input) {
	gw := r.gutterWidth(in)
	for _, row := range in.SelectionRows {
		y := float32(row.DisplayRow)*in.LineHeight - in.ScrollY
		r.surface.FillBox(math32.Vec2(row.StartX+gw-in.ScrollX, y), math32.Vec2(row.Width, in.LineHeight), in.Palette.Selection)
	}
}

func (r *Renderer) drawSearchHighlights(in Input) {
	gw := r.gutterWidth(in)
	for _, m := range in.SearchMatches {
		y := float32(m.DisplayRow)*in.LineHeight - in.ScrollY
		r.surface.FillBox(math32.Vec2(m.StartX+gw-in.ScrollX, y), math32.Vec2(m.Width, in.LineHeight), in.Palette.SearchHighlight)
	}
}

// drawText picks the rendering source: auto-scroll always draws the tail
// layout bottom-aligned; scroll-back draws the slice layout at its recorded
// first-display-row position. SliceBitmap is never drawn.
func (r *Renderer) drawText(in Input) {
	gw := r.gutterWidth(in)
	origin := math32.Vec2(gw-in.ScrollX, -in.ScrollY)

	if in.AutoScroll {
		if in.TailLayout == nil {
			return
		}
		bottom := float32(in.TotalDisplayRows) * in.LineHeight
		tailHeight := tailLayoutHeight(in.TailLayout, in.LineHeight)
		y := bottom - tailHeight
		r.surface.DrawText(in.TailLayout, math32.Vec2(origin.X, y-in.ScrollY))
		return
	}

	if in.Slice.Covers(in.VisibleFirst, in.VisibleLast) {
		// Whether in.SliceBitmap is set only changes the state transition
		// Draw makes above; Surface exposes text/box/line
		// primitives rather than an image blit, so both the cached-bitmap
		// and live-layout cases draw through the same retained Lines here.
		// Caching the shaped layout itself is LayoutCache's job, not
		// Surface's.
		y := float32(in.Slice.FirstDisplayRow)*in.LineHeight - in.ScrollY
		r.surface.DrawText(in.Slice.Lines, math32.Vec2(origin.X, y))
		return
	}

	// Slice does not cover the screen: its Lines, if any, are drawn at their
	// recorded row anyway, so uncovered rows stay blank until a new slice
	// arrives. No fallback layout is built here or by cmd/tracepane.
	if in.Slice.Lines != nil {
		y := float32(in.Slice.FirstDisplayRow)*in.LineHeight - in.ScrollY
		r.surface.DrawText(in.Slice.Lines, math32.Vec2(origin.X, y))
	}
}

func tailLayoutHeight(lines *shaped.Lines, lineHeight float32) float32 {
	if lines == nil {
		return 0
	}
	return float32(len(lines.Lines)) * lineHeight
}

// partialDirtyRect computes the dirty rect for a pure-vertical-scroll
// partial present: a band of |dy| pixels at the top or bottom edge.
func partialDirtyRect(in Input) image.Rectangle {
	dy := in.ScrollY - in.PrevScrollY
	w := int(in.ViewportSize.X)
	h := int(in.ViewportSize.Y)
	if dy == 0 {
		return image.Rect(0, 0, w, h)
	}
	band := int(dy)
	if band < 0 {
		band = -band
	}
	if band > h {
		return image.Rect(0, 0, w, h)
	}
	if dy > 0 {
		return image.Rect(0, h-band, w, h)
	}
	return image.Rect(0, 0, w, band)
}
