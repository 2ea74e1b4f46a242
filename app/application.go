// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package app provides Application, the single owned value that ties the
// viewer engine together. main constructs one Application and passes it by
// reference into every handler; menu commands are methods on it, and
// timers/notifications route through it rather than through package-level
// globals.
package app

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"cogentcore.org/core/base/errors"

	"github.com/tracepane/tracepane/document"
	"github.com/tracepane/tracepane/findbar"
	"github.com/tracepane/tracepane/ingest"
	"github.com/tracepane/tracepane/layout"
	"github.com/tracepane/tracepane/render"
	"github.com/tracepane/tracepane/settings"
	"github.com/tracepane/tracepane/theme"
	"github.com/tracepane/tracepane/viewer"
)

// Application owns every long-lived piece of the viewer engine: the
// Document, its ViewController, the EtwQueue, the layout/width worker pool
// and cache, the find overlay, theme/settings state, and the Renderer's
// state machine. main constructs exactly one of these.
type Application struct {
	mu sync.Mutex

	Doc        *document.Document
	View       *viewer.Controller
	Queue      *ingest.Queue
	Find       findbar.Overlay
	LayoutPool *layout.Worker
	WidthPool  *layout.WidthWorker
	Cache      *layout.Cache
	Renderer   *render.Renderer

	Settings settings.Settings

	requestRepaint func()
	requestLayout  func(seq uint32)
	armLayoutTimer func(delay time.Duration)
}

// Options configures New.
type Options struct {
	// RequestRepaint is called whenever application state changes such that
	// the next paint should happen soon. Must not block.
	RequestRepaint func()
	// RequestLayout is called when the scheduler decides a layout job with
	// the given sequence should run now. Must not block.
	RequestLayout func(seq uint32)
	// ArmLayoutTimer is called when the scheduler debounces a large append
	// burst: the host arms a one-shot timer for delay and calls
	// OnLayoutTimerFired when it elapses. Must not block.
	ArmLayoutTimer func(delay time.Duration)
}

// New constructs an Application wired from persisted settings, with an
// empty Document and a fresh ViewController in its initial AUTO_SCROLL
// state.
func New(cfg settings.Settings, opts Options) *Application {
	doc := document.New()
	doc.SetFilterMask(cfg.Filter.Mask)
	doc.EnableShowIDs(cfg.Menu.ShowIDs)

	a := &Application{
		Doc:            doc,
		View:           viewer.New(doc),
		Cache:          layout.NewCache(),
		Settings:       cfg,
		requestRepaint: opts.RequestRepaint,
		requestLayout:  opts.RequestLayout,
		armLayoutTimer: opts.ArmLayoutTimer,
	}
	a.Queue = ingest.New(a.onQueueNotEmpty)
	a.Find = *findbar.New()
	return a
}

func (a *Application) onQueueNotEmpty() {
	if a.requestRepaint != nil {
		a.requestRepaint()
	}
}

// AppendInfoLine implements ingest.Sink: it is the per-entry half of the
// drain cycle.
func (a *Application) AppendInfoLine(text string, meta document.Meta) {
	a.Doc.AppendInfoLine(text, meta)
}

// AfterBatch implements ingest.Sink: the once-per-drain-cycle derived-state
// refresh (width/content-height/gutter/mode/scroll) plus the adaptive
// layout scheduling that follows it. Small bursts lay out immediately;
// larger ones arm (or leave armed) a debounce timer.
func (a *Application) AfterBatch(appended int) {
	shouldArm, decision := a.View.OnAppend(appended)
	switch {
	case decision.RunSynchronously:
		if a.requestLayout != nil {
			a.requestLayout(a.View.FireLayoutTimer())
		}
	case shouldArm:
		if a.armLayoutTimer != nil {
			a.armLayoutTimer(decision.Delay)
		}
	}
	if a.requestRepaint != nil {
		a.requestRepaint()
	}
}

// OnLayoutTimerFired is called by the host when the timer armed via
// Options.ArmLayoutTimer elapses: exactly one layout job launches, tagged
// with a fresh sequence.
func (a *Application) OnLayoutTimerFired() {
	if a.requestLayout != nil {
		a.requestLayout(a.View.FireLayoutTimer())
	}
}

// DrainIngest processes one notify cycle's worth of queued events. Returns
// true if another notify should be posted (BatchCap overflow).
func (a *Application) DrainIngest() bool {
	return ingest.Consume(a.Queue, a)
}

// Shutdown tears down the Application. The transport worker must already
// have been stopped by the caller so no further notifies arrive; Shutdown
// then stops the layout/width worker pools and discards anything left in
// the ingest queue.
func (a *Application) Shutdown() {
	ingest.Shutdown(a.Queue)
	if a.LayoutPool != nil {
		a.LayoutPool.Close()
	}
	if a.WidthPool != nil {
		a.WidthPool.Close()
	}
}

// ResolveTheme computes the active Palette from the current theme settings
// and environment signals.
func (a *Application) ResolveTheme(sig theme.Signals) theme.Palette {
	a.mu.Lock()
	defer a.mu.Unlock()
	return theme.Resolve(a.Settings.Theme.CurrentThemeID, a.Settings.Theme.UserThemes, sig)
}

// SaveVisibleAs writes the currently visible text to w (File > Save Visible
// As).
func (a *Application) SaveVisibleAs(w io.Writer) error {
	return a.Doc.SaveVisible(w)
}

// OpenFile loads path as the document's content (File > Open), logging and
// reporting any failure rather than panicking.
func (a *Application) OpenFile(path string) error {
	if err := a.Doc.OpenFile(path); err != nil {
		return errors.Log(err)
	}
	return nil
}

// LogSystemLine appends a Debug-typed system line to the document itself,
// surfacing recoverable errors in-band so the UI stays responsive.
func (a *Application) LogSystemLine(msg string, meta document.Meta) {
	meta.Type = document.Debug
	a.Doc.AppendInfoLine(msg, meta)
	slog.Warn(msg)
}
