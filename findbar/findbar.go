// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package findbar implements the small search-input surface: query text,
// case-sensitivity toggle, and find-from-where selector. It holds no
// document state itself; the view controller owns match rebuilding and
// consumes the overlay only for its input/debounce state.
package findbar

import "time"

// StartMode chooses the anchor a find-next uses when selecting the next
// match.
type StartMode uint8

const (
	CurrentPosition StartMode = iota
	Top
	Bottom
)

// Debounce is the live-match-update delay after a query edit.
const Debounce = 120 * time.Millisecond

// Overlay is the find-bar's own UI-thread state: the query text, case
// sensitivity, and where a fresh search should start from. It does not
// perform matching itself (ViewController.SetSearchQuery does, since
// matching needs Document access); Overlay only tracks input and debounce
// timing.
type Overlay struct {
	Query         string
	CaseSensitive bool
	StartFrom     StartMode
	Visible       bool

	pendingSince time.Time
	hasPending   bool
}

// New returns a closed Overlay with default CurrentPosition start mode.
func New() *Overlay {
	return &Overlay{StartFrom: CurrentPosition}
}

// Open shows the overlay, focusing the query input.
func (o *Overlay) Open() {
	o.Visible = true
}

// Close hides the overlay without clearing the query (Escape).
func (o *Overlay) Close() {
	o.Visible = false
	o.hasPending = false
}

// SetQuery records an edit to the query text and arms the debounce timer.
// Callers poll Ready(now) to know when to rebuild matches.
func (o *Overlay) SetQuery(q string, caseSensitive bool, now time.Time) {
	o.Query = q
	o.CaseSensitive = caseSensitive
	o.pendingSince = now
	o.hasPending = true
}

// Ready reports whether the debounce window has elapsed since the last
// SetQuery and clears the pending flag if so (a single rebuild fires per
// edit burst, matching a standard debounce timer).
func (o *Overlay) Ready(now time.Time) bool {
	if !o.hasPending {
		return false
	}
	if now.Sub(o.pendingSince) < Debounce {
		return false
	}
	o.hasPending = false
	return true
}
