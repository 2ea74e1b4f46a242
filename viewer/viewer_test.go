// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewer

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tracepane/tracepane/document"
)

func newTestController() (*Controller, *document.Document) {
	d := document.New()
	c := New(d)
	c.SetViewportSize(800, 600, 1.0, 20)
	return c, d
}

// In the absence of user input, a stream of appended lines keeps the mode
// in auto-scroll and ScrollY pinned to the content bottom.
func TestAutoScrollStaysPinned(t *testing.T) {
	c, d := newTestController()
	for k := 0; k < 100; k++ {
		d.AppendInfoLine(fmt.Sprintf("k=%d", k), document.Meta{Type: document.Info, Time: time.Now()})
		c.OnAppend(1)
	}
	assert.Equal(t, AutoScroll, c.Mode())
	vp := c.Viewport()
	assert.Equal(t, vp.MaxScrollY(), vp.ScrollY)
}

// Starting in auto-scroll with many lines, a scroll-up switches to
// scroll-back, and a subsequent auto-appended event does not move ScrollY.
func TestScrollUpSwitchesToScrollBack(t *testing.T) {
	c, d := newTestController()
	for k := 0; k < 1000; k++ {
		d.AppendInfoLine(fmt.Sprintf("k=%d", k), document.Meta{Type: document.Info, Time: time.Now()})
	}
	c.OnAppend(1000)
	assert.Equal(t, AutoScroll, c.Mode())

	c.OnUserScroll(-20)
	assert.Equal(t, ScrollBack, c.Mode())

	before := c.Viewport().ScrollY
	d.AppendInfoLine("new", document.Meta{Type: document.Info, Time: time.Now()})
	c.OnAppend(1)
	assert.Equal(t, before, c.Viewport().ScrollY)
	assert.Equal(t, ScrollBack, c.Mode())
}

func TestJumpToBottomReentersAutoScroll(t *testing.T) {
	c, d := newTestController()
	for k := 0; k < 50; k++ {
		d.AppendInfoLine(fmt.Sprintf("k=%d", k), document.Meta{Type: document.Info, Time: time.Now()})
	}
	c.OnAppend(50)
	c.OnUserScroll(-5)
	assert.Equal(t, ScrollBack, c.Mode())

	c.OnJumpToBottom()
	assert.Equal(t, AutoScroll, c.Mode())
	vp := c.Viewport()
	assert.Equal(t, vp.MaxScrollY(), vp.ScrollY)
}

func TestSchedulerAdaptiveThresholds(t *testing.T) {
	assert.True(t, Decide(50).RunSynchronously)
	assert.Equal(t, FastTimerDelay, Decide(500).Delay)
	assert.Equal(t, StandardTimerDelay, Decide(5000).Delay)
}

func TestSchedulerNeverReArmsPendingTimer(t *testing.T) {
	var s Scheduler
	arm, d := s.Request(500)
	assert.True(t, arm)
	assert.Equal(t, FastTimerDelay, d.Delay)

	arm2, _ := s.Request(10)
	assert.False(t, arm2, "a pending timer must not be re-armed")
	assert.True(t, s.Pending())

	s.Fire()
	assert.False(t, s.Pending())
}

// The newest issued sequence wins regardless of delivery order; older
// packets are reported stale by IsSequenceCurrent.
func TestSequenceDiscardsStalePackets(t *testing.T) {
	c, _ := newTestController()
	s1 := c.CurrentSequence()
	s2 := c.FireLayoutTimer()
	assert.NotEqual(t, s1, s2)
	assert.False(t, c.IsSequenceCurrent(s1))
	assert.True(t, c.IsSequenceCurrent(s2))
}

// Setting the same query twice produces identical match lists.
func TestSearchIdempotence(t *testing.T) {
	c, d := newTestController()
	d.AppendInfoLine("an error occurred", document.Meta{Type: document.Error, Time: time.Now()})
	d.AppendInfoLine("another error here", document.Meta{Type: document.Error, Time: time.Now()})

	c.SetSearchQuery("error", false)
	first := c.Matches()
	c.SetSearchQuery("error", false)
	second := c.Matches()
	assert.Equal(t, first, second)
	assert.Len(t, first, 2)
}

func TestSliceWindowAlignsToBlocks(t *testing.T) {
	sourceOf := func(i int) int { return i }
	first, last := SliceWindow(300, 310, 1000, sourceOf)
	assert.Equal(t, 0, first%256)
	assert.True(t, last >= 310)
}

// Copying a selection spanning the whole document matches save-visible
// output (modulo the BOM and trailing newline) when nothing is filtered
// and no line carries a prefix.
func TestCopyWholeDocumentMatchesSaveVisible(t *testing.T) {
	c, d := newTestController()
	d.AppendText("alpha\nbeta\ngamma")

	c.SelectAll()
	copied := c.CopySelection()

	var buf bytes.Buffer
	assert.NoError(t, d.SaveVisible(&buf))
	saved := buf.Bytes()[3:] // strip UTF-8 BOM
	assert.Equal(t, string(saved), copied+"\n")
}

func TestSelectionCollapsesAndExtends(t *testing.T) {
	var caret Caret
	caret.CollapseTo(10)
	assert.Equal(t, document.Selection{Start: 10, End: 10}, caret.Selection())
	caret.ExtendTo(20)
	assert.Equal(t, document.Selection{Start: 10, End: 20}, caret.Selection())
}
