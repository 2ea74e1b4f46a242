// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command tracepane runs the log-monitor viewer engine against a line-based
// transport on stdin, rendering frames through the paint renderer stack.
// The desktop window chrome (menus, toolbars, dialogs) is supplied by the
// embedding shell; this command wires the engine itself: document, ingest
// queue, layout/width workers, renderer, and view controller.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"cogentcore.org/core/math32"
	"cogentcore.org/core/paint"
	_ "cogentcore.org/core/paint/renderers"
	"cogentcore.org/core/styles/units"
	"cogentcore.org/core/text/rich"
	_ "cogentcore.org/core/text/shaped/shapers"
	"cogentcore.org/core/text/text"

	"github.com/tracepane/tracepane/app"
	"github.com/tracepane/tracepane/document"
	"github.com/tracepane/tracepane/layout"
	"github.com/tracepane/tracepane/render"
	"github.com/tracepane/tracepane/settings"
	"github.com/tracepane/tracepane/theme"
	"github.com/tracepane/tracepane/viewer"
)

// errAlreadyRunning is returned by acquireInstanceLock when another live
// instance holds the single-instance primitive.
var errAlreadyRunning = errors.New("tracepane: another instance is already running")

func main() {
	os.Exit(run())
}

func run() int {
	var (
		settingsPath = flag.String("settings", "", "settings file path (default: user config dir)")
		openPath     = flag.String("open", "", "load a file as initial document content")
		waitInstance = flag.Bool("wait-instance", false, "wait for a previous instance to exit instead of failing")
		width        = flag.Int("width", 1280, "viewport width in DIP")
		height       = flag.Int("height", 720, "viewport height in DIP")
	)
	flag.Parse()

	lock, err := acquireInstanceLock(*waitInstance)
	if err != nil {
		if errors.Is(err, errAlreadyRunning) {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		slog.Error("instance lock", "err", err)
		return 1
	}
	defer lock.Release()

	path := *settingsPath
	if path == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			path = filepath.Join(dir, "tracepane", "settings.json")
			os.MkdirAll(filepath.Dir(path), 0o755)
		}
	}
	cfg := settings.Load(path)

	ui := newUILoop(cfg, float32(*width), float32(*height))

	if *openPath != "" {
		if err := ui.app.OpenFile(*openPath); err != nil {
			slog.Error("open", "path", *openPath, "err", err)
			return 1
		}
	}

	tr := newTransport(ui.app.Queue, uint32(os.Getpid()))
	tr.Run(os.Stdin)
	ui.app.LogSystemLine("trace ingest started (stdin transport)", document.Meta{
		Time:      time.Now(),
		ProcessID: uint32(os.Getpid()),
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	ui.run(sig)

	// Shutdown order: transport first, so no further notifies arrive; then
	// the engine (worker pools, queue drain); rendering state last.
	tr.Stop()
	ui.app.Shutdown()
	if path != "" {
		if err := settings.Save(path, ui.app.Settings); err != nil {
			slog.Warn("save settings", "err", err)
		}
	}
	return 0
}

// uiLoop owns everything the UI thread owns: the Application, the paint
// surface, the layout debounce timer, and the channels worker completions
// arrive on.
type uiLoop struct {
	app      *app.Application
	tsty     *text.Style
	rts      *rich.Settings
	pc       *paint.Painter
	renderer *render.Renderer

	repaint    chan struct{}
	layoutJobs chan uint32
	timerArms  chan time.Duration

	lineHeight float32
	slice      render.SliceView
	tail       *layout.LayoutPacket
}

func newUILoop(cfg settings.Settings, w, h float32) *uiLoop {
	rts := &rich.Settings{}
	rts.Defaults()
	uc := units.Context{}
	uc.Defaults()
	tsty := text.NewStyle()
	tsty.ToDots(&uc)

	ui := &uiLoop{
		tsty:       tsty,
		rts:        rts,
		repaint:    make(chan struct{}, 1),
		layoutJobs: make(chan uint32, 16),
		timerArms:  make(chan time.Duration, 4),
		lineHeight: tsty.FontSize.Dots * tsty.LineHeight,
	}

	ui.app = app.New(cfg, app.Options{
		RequestRepaint: func() {
			select {
			case ui.repaint <- struct{}{}:
			default:
			}
		},
		RequestLayout: func(seq uint32) {
			select {
			case ui.layoutJobs <- seq:
			default:
			}
		},
		ArmLayoutTimer: func(d time.Duration) {
			select {
			case ui.timerArms <- d:
			default:
			}
		},
	})
	ui.app.LayoutPool = layout.NewWorker(2, tsty, rts)
	ui.app.WidthPool = layout.NewWidthWorker(1, tsty, rts)

	pc := paint.NewPainter(math32.Vec2(w, h))
	ps := render.NewPainterSurface(pc)
	ps.SetSize(math32.Vec2(w, h))
	ui.pc = pc
	ui.renderer = render.New(ps)
	ui.app.Renderer = ui.renderer

	ui.app.View.SetViewportSize(w, h, 1.0, ui.lineHeight)
	return ui
}

// run is the UI event loop: it drains ingest notifies, launches layout
// jobs, applies worker completion packets, and paints, until a signal
// arrives.
func (ui *uiLoop) run(sig <-chan os.Signal) {
	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-sig:
			return

		case <-ui.repaint:
			for ui.app.DrainIngest() {
			}
			ui.paintFrame()

		case seq := <-ui.layoutJobs:
			ui.launchLayout(seq)
			ui.launchWidthMeasure(seq)

		case d := <-ui.timerArms:
			// The scheduler guarantees at most one outstanding arm; a Reset
			// here never races a live timer.
			timer.Reset(d)

		case <-timer.C:
			ui.app.OnLayoutTimerFired()

		case pkt := <-ui.app.LayoutPool.Results():
			ui.applyLayout(pkt)

		case wp := <-ui.app.WidthPool.Results():
			ui.applyWidths(wp)
		}
	}
}

// launchLayout captures a snapshot for the current viewport's slice window
// and submits it, falling back to inline shaping when the pool is
// saturated.
func (ui *uiLoop) launchLayout(seq uint32) {
	doc := ui.app.Doc
	vp := ui.app.View.Viewport()
	totalRows := doc.TotalDisplayRows()
	firstRow, lastRow := vp.VisibleDisplayRows(totalRows)

	visFirst := doc.VisibleIndexFromDisplayRow(firstRow)
	visLast := doc.VisibleIndexFromDisplayRow(lastRow)
	visCount := doc.VisibleLineCount()
	if visCount == 0 {
		return
	}
	vis := doc.VisibleLines()
	firstSrc, lastSrc := viewer.SliceWindow(visFirst, visLast, visCount, func(i int) int {
		return vis[i].SourceIndex
	})

	if cached, ok := ui.app.Cache.Get(layout.Key{FirstLine: firstSrc, LastLine: lastSrc}); ok {
		// A cache hit synthesizes the same packet a worker would deliver.
		ui.applyLayout(layout.LayoutPacket{
			Seq:             seq,
			StartPos:        cached.StartPos,
			EndPos:          cached.EndPos,
			FirstLine:       cached.FirstLine,
			LastLine:        cached.LastLine,
			FirstDisplayRow: cached.FirstDisplayRow,
			IsFiltered:      cached.IsFiltered,
			FilteredRuns:    cached.FilteredRuns,
			Lines:           cached.Lines,
		})
		return
	}

	tail := doc.BuildFilteredTailText(firstSrc, lastSrc)
	runs := make([]layout.FilteredRun, 0, len(tail.Lines))
	layoutOff := 0
	for _, li := range tail.Lines {
		n := li.PrefixLength + li.TextLength
		runs = append(runs, layout.FilteredRun{
			SourceLine:  li.SourceIndex,
			LayoutStart: layoutOff,
			Length:      n,
			SourceStart: doc.GetLineStartOffset(li.SourceIndex),
		})
		layoutOff += n + 1
	}

	snp := layout.Snapshot{
		Text:            rich.NewText(rich.NewStyle(), []rune(tail.Text)),
		WidthDip:        vp.ClientW,
		Seq:             seq,
		FirstSourceLine: firstSrc,
		LastSourceLine:  lastSrc,
		SliceStartPos:   doc.GetLineStartOffset(firstSrc),
		SliceEndPos:     doc.GetLineStartOffset(lastSrc),
		FirstDisplayRow: doc.DisplayRowForSource(firstSrc),
		IsFiltered:      doc.VisibleLineCount() != doc.TotalLineCount(),
		FilteredRuns:    runs,
	}
	if !ui.app.LayoutPool.Submit(snp) {
		ui.applyLayout(ui.app.LayoutPool.RunInline(snp))
	}
}

// launchWidthMeasure submits the pending dirty-line range for measurement.
func (ui *uiLoop) launchWidthMeasure(seq uint32) {
	doc := ui.app.Doc
	first, last, ok := doc.ExtractDirtyLineRange()
	if !ok {
		return
	}
	lines := make([]layout.LineText, 0, last-first+1)
	for i := first; i <= last; i++ {
		lines = append(lines, layout.LineText{SourceIndex: i, Display: doc.GetDisplayTextAll(i)})
	}
	job := layout.WidthJob{Seq: seq, Lines: lines}
	if !ui.app.WidthPool.Submit(job) {
		ui.applyWidths(ui.app.WidthPool.RunInline(job))
	}
}

func (ui *uiLoop) applyLayout(pkt layout.LayoutPacket) {
	if !ui.app.View.IsSequenceCurrent(pkt.Seq) {
		return
	}
	ui.app.Cache.Put(layout.Key{FirstLine: pkt.FirstLine, LastLine: pkt.LastLine}, &layout.Slice{
		FirstLine:       pkt.FirstLine,
		LastLine:        pkt.LastLine,
		StartPos:        pkt.StartPos,
		EndPos:          pkt.EndPos,
		FirstDisplayRow: pkt.FirstDisplayRow,
		IsFiltered:      pkt.IsFiltered,
		FilteredRuns:    pkt.FilteredRuns,
		Lines:           pkt.Lines,
	})
	ui.slice = render.SliceView{
		FirstSourceLine: pkt.FirstLine,
		LastSourceLine:  pkt.LastLine,
		FirstDisplayRow: pkt.FirstDisplayRow,
		Lines:           pkt.Lines,
	}
	if ui.app.View.Mode() == viewer.AutoScroll {
		pktCopy := pkt
		ui.tail = &pktCopy
	}
	doc := ui.app.Doc
	ui.app.View.NoteSliceCoverage(
		doc.VisibleIndexFromDisplayRow(doc.DisplayRowForSource(pkt.FirstLine)),
		doc.VisibleIndexFromDisplayRow(doc.DisplayRowForSource(pkt.LastLine)))
	ui.renderer.NotifyLayoutReady()
	select {
	case ui.repaint <- struct{}{}:
	default:
	}
}

func (ui *uiLoop) applyWidths(wp layout.WidthPacket) {
	if !ui.app.View.IsSequenceCurrent(wp.Seq) {
		return
	}
	var max float32
	for _, w := range wp.Widths {
		if w > max {
			max = w
		}
	}
	// Approximate content width: the measured maximum, floored by a
	// character-count estimate so unmeasured long lines still produce a
	// usable horizontal extent.
	avgChar := ui.tsty.FontSize.Dots * 0.6
	if est := avgChar * float32(ui.app.Doc.LongestLineChars()); est > max {
		max = est
	}
	ui.app.View.NoteContentWidth(max)
}

// paintFrame assembles a draw-context snapshot and renders one frame.
func (ui *uiLoop) paintFrame() {
	doc := ui.app.Doc
	vp := ui.app.View.Viewport()
	totalRows := doc.TotalDisplayRows()
	firstRow, lastRow := vp.VisibleDisplayRows(totalRows)

	pal := ui.app.ResolveTheme(theme.Signals{})

	// The slice is keyed by source lines, so map the on-screen visible
	// range to source indices before handing it to the renderer.
	visFirst := doc.VisibleIndexFromDisplayRow(firstRow)
	visLast := doc.VisibleIndexFromDisplayRow(lastRow)
	srcFirst, srcLast := 0, 0
	if vis := doc.VisibleLines(); visLast < len(vis) {
		srcFirst, srcLast = vis[visFirst].SourceIndex, vis[visLast].SourceIndex
	}

	tailLines := ui.slice.Lines
	if ui.tail != nil {
		tailLines = ui.tail.Lines
	}
	in := render.Input{
		ViewportSize:     math32.Vec2(vp.ClientW, vp.ClientH),
		ScrollX:          vp.ScrollX,
		ScrollY:          vp.ScrollY,
		LineHeight:       ui.lineHeight,
		AutoScroll:       ui.app.View.Mode() == viewer.AutoScroll,
		TailLayout:       tailLines,
		Slice:            ui.slice,
		VisibleFirst:     srcFirst,
		VisibleLast:      srcLast,
		TotalDisplayRows: totalRows,
		GutterEnabled:    ui.app.Settings.Menu.LineNumbers,
		GutterDigits:     digits(doc.TotalLineCount()),
		Palette:          pal,
	}
	ui.renderer.Draw(in)
}

func digits(n int) int {
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}
