// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewer

import (
	"cogentcore.org/core/events/key"
	"cogentcore.org/core/text/textpos"
	"github.com/tracepane/tracepane/document"
)

// CaretMotion is a single caret-movement request, decoded from a key chord
// by DecodeMotion.
type CaretMotion uint8

const (
	MoveNone CaretMotion = iota
	MoveLeftChar
	MoveRightChar
	MoveLeftWord
	MoveRightWord
	MoveLineStart
	MoveLineEnd
	MoveDocStart
	MoveDocEnd
	MoveUpRow
	MoveDownRow
)

// DecodeMotion maps a key code plus modifiers to a CaretMotion.
func DecodeMotion(code key.Codes, mods key.Modifiers) CaretMotion {
	ctrl := mods.HasFlag(key.Control)
	switch code {
	case key.CodeLeftArrow:
		if ctrl {
			return MoveLeftWord
		}
		return MoveLeftChar
	case key.CodeRightArrow:
		if ctrl {
			return MoveRightWord
		}
		return MoveRightChar
	case key.CodeHome:
		if ctrl {
			return MoveDocStart
		}
		return MoveLineStart
	case key.CodeEnd:
		if ctrl {
			return MoveDocEnd
		}
		return MoveLineEnd
	case key.CodeUpArrow:
		return MoveUpRow
	case key.CodeDownArrow:
		return MoveDownRow
	default:
		return MoveNone
	}
}

// ApplyMotion computes the new caret position for a motion, given the
// document and the current caret position (absolute source-document
// character offset, unfiltered). Word motion uses
// cogentcore.org/core/text/textpos.WordAt rather than a hand-rolled
// boundary scanner.
func ApplyMotion(doc *document.Document, caret int, m CaretMotion) int {
	switch m {
	case MoveLeftChar:
		if caret > 0 {
			return caret - 1
		}
		return caret
	case MoveRightChar:
		if caret < doc.TotalLength() {
			return caret + 1
		}
		return caret
	case MoveLeftWord:
		return wordLeft(doc, caret)
	case MoveRightWord:
		return wordRight(doc, caret)
	case MoveLineStart:
		p := doc.GetLineAndOffset(caret)
		return doc.GetLineStartOffset(p.Line)
	case MoveLineEnd:
		p := doc.GetLineAndOffset(caret)
		text := doc.GetDisplayTextAll(p.Line)
		return doc.GetLineStartOffset(p.Line) + len([]rune(text))
	case MoveDocStart:
		return 0
	case MoveDocEnd:
		return doc.TotalLength()
	default:
		return caret
	}
}

func wordLeft(doc *document.Document, caret int) int {
	p := doc.GetLineAndOffset(caret)
	text := []rune(doc.GetDisplayTextAll(p.Line))
	if p.Char == 0 {
		if p.Line == 0 {
			return caret
		}
		return doc.GetLineStartOffset(p.Line)
	}
	rg := textpos.WordAt(text, p.Char-1)
	return doc.GetLineStartOffset(p.Line) + rg.Start
}

func wordRight(doc *document.Document, caret int) int {
	p := doc.GetLineAndOffset(caret)
	text := []rune(doc.GetDisplayTextAll(p.Line))
	if p.Char >= len(text) {
		return caret
	}
	rg := textpos.WordAt(text, p.Char)
	return doc.GetLineStartOffset(p.Line) + rg.End
}

// Caret tracks the caret/selection state in source-document character
// coordinates. The zero value is a collapsed selection at position 0.
type Caret struct {
	Pos        int
	Anchor     int
	PreferredX float32
}

// Selection returns the normalized selection spanning Anchor..Pos.
func (c Caret) Selection() document.Selection {
	return document.Selection{Start: c.Anchor, End: c.Pos}.Normalized()
}

// CollapseTo moves the caret to pos and collapses the selection there
// (a plain left-click).
func (c *Caret) CollapseTo(pos int) {
	c.Pos = pos
	c.Anchor = pos
}

// ExtendTo moves the caret to pos, keeping Anchor fixed (a drag-select).
func (c *Caret) ExtendTo(pos int) {
	c.Pos = pos
}

// Move applies a motion without selecting (arrow keys alone).
func (c *Caret) Move(doc *document.Document, m CaretMotion) {
	c.Pos = ApplyMotion(doc, c.Pos, m)
	c.Anchor = c.Pos
}

// MoveExtending applies a motion while keeping Anchor fixed (Shift+arrow).
func (c *Caret) MoveExtending(doc *document.Document, m CaretMotion) {
	c.Pos = ApplyMotion(doc, c.Pos, m)
}

// SelectAll selects the entire document (Ctrl+A).
func (c *Caret) SelectAll(doc *document.Document) {
	c.Anchor = 0
	c.Pos = doc.TotalLength()
}
