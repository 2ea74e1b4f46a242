// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"
	"image/color"

	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/paint"
	"cogentcore.org/core/text/shaped"
)

// colorUniform wraps c as the uniform image.Image the Painter fill/stroke
// calls expect.
func colorUniform(c color.Color) image.Image {
	return colors.Uniform(colors.AsRGBA(c))
}

// Surface is the GPU/device abstraction the Renderer draws through. It is
// satisfied by a thin wrapper around cogentcore.org/core/paint.Painter (see
// PainterSurface); keeping it as an interface is what lets the viewer engine
// avoid importing a concrete GPU API.
type Surface interface {
	// Size returns the surface's current DIP dimensions.
	Size() math32.Vector2

	// FillBox fills a rectangle with a uniform color.
	FillBox(pos, size math32.Vector2, c color.Color)

	// DrawText draws a shaped text layout at pos.
	DrawText(lines *shaped.Lines, pos math32.Vector2)

	// PushClip restricts drawing to rect until PopClip.
	PushClip(rect image.Rectangle)

	// PopClip removes the most recently pushed clip.
	PopClip()

	// StrokeLine draws a 1-DIP line between two points, used for the caret
	// and the gutter separator.
	StrokeLine(from, to math32.Vector2, c color.Color)

	// RenderToImage finalizes the current frame's draw calls into an image.
	RenderToImage() image.Image
}

// PainterSurface adapts a *paint.Painter to Surface, the concrete
// implementation cmd/tracepane wires up. Clipping is applied in software to
// box fills; text draws are left unclipped, which only costs idempotent
// overdraw inside a partial present.
type PainterSurface struct {
	pc   *paint.Painter
	size math32.Vector2
	clip []image.Rectangle
}

// NewPainterSurface wraps an existing Painter; its DIP size is set
// separately with SetSize.
func NewPainterSurface(pc *paint.Painter) *PainterSurface {
	return &PainterSurface{pc: pc}
}

// SetSize records the surface's DIP dimensions; call on viewport resize.
func (s *PainterSurface) SetSize(sz math32.Vector2) {
	s.size = sz
}

func (s *PainterSurface) Size() math32.Vector2 {
	return s.size
}

func (s *PainterSurface) FillBox(pos, size math32.Vector2, c color.Color) {
	if n := len(s.clip); n > 0 {
		r := s.clip[n-1]
		box := image.Rect(int(pos.X), int(pos.Y), int(pos.X+size.X), int(pos.Y+size.Y))
		box = box.Intersect(r)
		if box.Empty() {
			return
		}
		pos = math32.Vec2(float32(box.Min.X), float32(box.Min.Y))
		size = math32.Vec2(float32(box.Dx()), float32(box.Dy()))
	}
	s.pc.FillBox(pos, size, colorUniform(c))
}

func (s *PainterSurface) DrawText(lines *shaped.Lines, pos math32.Vector2) {
	s.pc.DrawText(lines, pos)
}

func (s *PainterSurface) PushClip(rect image.Rectangle) {
	if n := len(s.clip); n > 0 {
		rect = rect.Intersect(s.clip[n-1])
	}
	s.clip = append(s.clip, rect)
}

func (s *PainterSurface) PopClip() {
	if n := len(s.clip); n > 0 {
		s.clip = s.clip[:n-1]
	}
}

// StrokeLine draws axis-aligned 1-DIP rules (caret, gutter separator) as
// thin box fills.
func (s *PainterSurface) StrokeLine(from, to math32.Vector2, c color.Color) {
	w := to.X - from.X
	h := to.Y - from.Y
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	s.FillBox(from, math32.Vec2(w, h), c)
}

func (s *PainterSurface) RenderToImage() image.Image {
	return paint.RenderToImage(s.pc)
}
