// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"context"
	"sync"

	"cogentcore.org/core/math32"
	"cogentcore.org/core/text/rich"
	"cogentcore.org/core/text/shaped"
	"cogentcore.org/core/text/text"
)

// LineText is one line's display string plus its source index, captured by
// the UI thread from Document before handing it to a WidthWorker.
type LineText struct {
	SourceIndex int
	Display     string
}

// WidthJob is the input to a single width-measurement batch: the dirty-line
// range's display strings, captured under Document's lock.
type WidthJob struct {
	Seq   uint32
	Lines []LineText
}

// WidthWorker measures per-line widths for horizontal-scrollbar extent,
// analogous to Worker but producing WidthPacket results.
type WidthWorker struct {
	shaper shaped.Shaper
	style  *text.Style
	rts    *rich.Settings

	jobs    chan WidthJob
	results chan WidthPacket

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// NewWidthWorker starts a WidthWorker with n goroutines.
func NewWidthWorker(n int, style *text.Style, rts *rich.Settings) *WidthWorker {
	if n < 1 {
		n = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &WidthWorker{
		shaper:  shaped.NewShaper(),
		style:   style,
		rts:     rts,
		jobs:    make(chan WidthJob, 64),
		results: make(chan WidthPacket, 64),
		cancel:  cancel,
	}
	w.wg.Add(n)
	for i := 0; i < n; i++ {
		go w.run(ctx)
	}
	return w
}

func (w *WidthWorker) run(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-w.jobs:
			if !ok {
				return
			}
			w.results <- w.measure(j)
		}
	}
}

// measure shapes each line at unbounded width and takes the shaped extent
// as that line's width.
func (w *WidthWorker) measure(j WidthJob) WidthPacket {
	out := WidthPacket{Seq: j.Seq, Indices: make([]int, 0, len(j.Lines)), Widths: make([]float32, 0, len(j.Lines))}
	plain := rich.NewStyle()
	for _, ln := range j.Lines {
		tx := rich.NewText(plain, []rune(ln.Display))
		lines := w.shaper.WrapLines(tx, plain, w.style, w.rts, math32.Vec2(1e7, 1e7))
		var width float32
		if lines != nil && len(lines.Lines) > 0 {
			width = lines.Lines[0].Bounds.Size().X
		}
		out.Indices = append(out.Indices, ln.SourceIndex)
		out.Widths = append(out.Widths, width)
	}
	return out
}

// Submit enqueues j; ok is false when the queue is full and the caller
// should fall back to RunInline.
func (w *WidthWorker) Submit(j WidthJob) (ok bool) {
	select {
	case w.jobs <- j:
		return true
	default:
		return false
	}
}

// RunInline measures j synchronously on the caller's goroutine.
func (w *WidthWorker) RunInline(j WidthJob) WidthPacket {
	return w.measure(j)
}

// Results is the channel the UI thread drains for completed WidthPackets.
func (w *WidthWorker) Results() <-chan WidthPacket {
	return w.results
}

// Close stops all worker goroutines and waits for them to exit.
func (w *WidthWorker) Close() {
	w.cancel()
	w.wg.Wait()
}

// MaxWidthTracker incrementally tracks the longest measured line; a full
// rescan is only needed when the current maximum line shrinks.
type MaxWidthTracker struct {
	widths map[int]float32
	max    float32
	maxIdx int
}

// NewMaxWidthTracker returns an empty tracker.
func NewMaxWidthTracker() *MaxWidthTracker {
	return &MaxWidthTracker{widths: make(map[int]float32)}
}

// Update records a newly measured width for sourceIndex and reports the
// current running maximum. When the previous maximum line shrinks, the
// caller must separately trigger a full Rescan since this type alone cannot
// know the widths of lines it was never given.
func (t *MaxWidthTracker) Update(sourceIndex int, width float32) (max float32, maxIndex int, shrankMax bool) {
	prevMax, prevIdx := t.max, t.maxIdx
	t.widths[sourceIndex] = width
	if width >= t.max {
		t.max = width
		t.maxIdx = sourceIndex
		return t.max, t.maxIdx, false
	}
	if sourceIndex == prevIdx && width < prevMax {
		return t.max, t.maxIdx, true
	}
	return t.max, t.maxIdx, false
}

// Rescan recomputes the maximum from the full recorded width map, used after
// Update reports shrankMax.
func (t *MaxWidthTracker) Rescan() (max float32, maxIndex int) {
	t.max, t.maxIdx = 0, 0
	for idx, w := range t.widths {
		if w > t.max {
			t.max = w
			t.maxIdx = idx
		}
	}
	return t.max, t.maxIdx
}

// Max returns the current running maximum width and its line index.
func (t *MaxWidthTracker) Max() (max float32, maxIndex int) {
	return t.max, t.maxIdx
}
