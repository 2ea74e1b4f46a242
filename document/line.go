// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package document

import (
	"image/color"
	"time"
)

// MetaType classifies a line's severity. All is a sentinel used only in
// filter semantics: it never appears as a real line's metadata type, and a
// FilterMask check against it always passes.
type MetaType uint8

const (
	Text MetaType = iota
	Error
	Warning
	Info
	Debug
	All
)

func (t MetaType) String() string {
	switch t {
	case Text:
		return "Text"
	case Error:
		return "Error"
	case Warning:
		return "Warning"
	case Info:
		return "Info"
	case Debug:
		return "Debug"
	case All:
		return "All"
	default:
		return "Unknown"
	}
}

// emoji is the prefix glyph shown for each meta type.
func (t MetaType) emoji() string {
	switch t {
	case Error:
		return "🛑 "
	case Warning:
		return "⚠️ "
	case Info:
		return "ℹ️ "
	case Debug:
		return "🐞 "
	case Text:
		return "📝 "
	default:
		return ""
	}
}

// FilterMask is a bitset over the five concrete message types. The bit
// positions below are load-bearing: they match the persisted preset values
// (ErrorsOnly=0x02, ErrorsAndWarnings=0x06, ErrorsAndDebug=0x12,
// FilterAll=0x1F).
type FilterMask uint32

const (
	FilterText FilterMask = 1 << iota
	FilterError
	FilterWarning
	FilterInfo
	FilterDebug

	FilterAll FilterMask = FilterText | FilterError | FilterWarning | FilterInfo | FilterDebug

	PresetErrorsOnly       FilterMask = FilterError
	PresetErrorsAndWarning FilterMask = FilterError | FilterWarning
	PresetErrorsAndDebug   FilterMask = FilterError | FilterDebug
)

// bitFor returns the FilterMask bit corresponding to a concrete type. All
// has no single bit; callers must special-case it (it always passes).
func bitFor(t MetaType) FilterMask {
	switch t {
	case Text:
		return FilterText
	case Error:
		return FilterError
	case Warning:
		return FilterWarning
	case Info:
		return FilterInfo
	case Debug:
		return FilterDebug
	default:
		return 0
	}
}

// Allows reports whether a line of the given type passes this mask.
func (m FilterMask) Allows(t MetaType) bool {
	if t == All {
		return true
	}
	return m&bitFor(t) != 0
}

// Meta is the optional metadata attached to a Line.
type Meta struct {
	Type      MetaType
	Time      time.Time
	ProcessID uint32
	ThreadID  uint32
}

// ColorSpan is a color run in text-only coordinates (the line's prefix is
// excluded). Ranges are clipped to [0, len(Text)) at insertion time.
type ColorSpan struct {
	Start  int
	Length int
	Color  color.RGBA
}

// Line is a single logical, append-only source line.
type Line struct {
	Text         []rune
	HasMeta      bool
	Meta         Meta
	Spans        []ColorSpan
	NewlineCount int

	cachedPrefix  []rune
	prefixValid   bool
	cachedDisplay []rune
	displayValid  bool
}

// DisplayRows is the number of display rows this line occupies.
func (l *Line) DisplayRows() int {
	return l.NewlineCount + 1
}

func (l *Line) invalidatePrefix() {
	l.cachedPrefix = nil
	l.prefixValid = false
	l.cachedDisplay = nil
	l.displayValid = false
}

func (l *Line) invalidateDisplay() {
	l.cachedDisplay = nil
	l.displayValid = false
}

// VisibleLine is a lightweight index entry mapping a visible position to its
// source line and the display row at which it starts.
type VisibleLine struct {
	SourceIndex     int
	DisplayRowStart int
}

// Selection is a pair of source-document character offsets (unfiltered).
type Selection struct {
	Start int
	End   int
}

// Normalized returns the selection with Start <= End.
func (s Selection) Normalized() Selection {
	if s.Start <= s.End {
		return s
	}
	return Selection{Start: s.End, End: s.Start}
}

func (s Selection) Empty() bool {
	return s.Start == s.End
}

// LineInfo is the per-line metadata returned alongside BuildFilteredTailText.
type LineInfo struct {
	SourceIndex  int
	PrefixLength int
	TextLength   int
	HasMeta      bool
	Type         MetaType
}
