// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewer

import (
	"strings"

	"cogentcore.org/core/text/textpos"
	"github.com/tracepane/tracepane/document"
	"github.com/tracepane/tracepane/findbar"
)

// Match is one search hit, as an absolute source-document character range
// (unfiltered coordinates).
type Match = textpos.Range

// Search holds the rebuilt match list for the current query, plus the
// query itself so RebuildMatches can be called idempotently.
type Search struct {
	Query         string
	CaseSensitive bool
	Matches       []Match
}

// SetQuery replaces the active query.
func (s *Search) SetQuery(query string, caseSensitive bool) {
	s.Query = query
	s.CaseSensitive = caseSensitive
}

// RebuildMatches rescans doc for the current query, producing absolute
// position spans. When filterActive is true, only visible lines are
// scanned.
func (s *Search) RebuildMatches(doc *document.Document, filterActive bool) {
	s.Matches = s.Matches[:0]
	if s.Query == "" {
		return
	}
	needle := s.Query
	if !s.CaseSensitive {
		needle = strings.ToLower(needle)
	}

	total := doc.TotalLineCount()
	for i := 0; i < total; i++ {
		if filterActive && !doc.IsLineVisible(i) {
			continue
		}
		text := doc.GetDisplayTextAll(i)
		hay := text
		if !s.CaseSensitive {
			hay = strings.ToLower(hay)
		}
		base := doc.GetLineStartOffset(i)
		for _, off := range findAllRuneOffsets(hay, needle) {
			s.Matches = append(s.Matches, Match{Start: base + off, End: base + off + len([]rune(needle))})
		}
	}
}

// findAllRuneOffsets returns every rune-index occurrence of needle in hay.
// The scan advances one rune past each hit's start, so overlapping hits
// are all reported, matching a typical incremental find-next scan.
func findAllRuneOffsets(hay, needle string) []int {
	if needle == "" {
		return nil
	}
	hr := []rune(hay)
	nr := []rune(needle)
	var out []int
	for i := 0; i+len(nr) <= len(hr); i++ {
		if runesEqual(hr[i:i+len(nr)], nr) {
			out = append(out, i)
		}
	}
	return out
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// FindNext selects the next match relative to anchor, per the FindStartMode
// chosen in the find bar, wrapping around the match list. It returns the
// matched range and ok=false if there are no matches.
func FindNext(s *Search, anchorPos int, start findbar.StartMode, backward bool) (Match, bool) {
	if len(s.Matches) == 0 {
		return Match{}, false
	}

	anchor := anchorPos
	switch start {
	case findbar.Top:
		anchor = -1
	case findbar.Bottom:
		anchor = s.Matches[len(s.Matches)-1].End + 1
	}

	if backward {
		for i := len(s.Matches) - 1; i >= 0; i-- {
			if s.Matches[i].Start < anchor {
				return s.Matches[i], true
			}
		}
		return s.Matches[len(s.Matches)-1], true
	}
	for _, m := range s.Matches {
		if m.Start > anchor {
			return m, true
		}
	}
	return s.Matches[0], true
}
