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

// Snapshot is the fully captured input a layout job needs. It never
// references the Document: everything a worker touches is copied out under
// the UI thread's lock first, so workers never touch shared state.
type Snapshot struct {
	Text            rich.Text
	WidthDip        float32
	Seq             uint32
	FirstSourceLine int
	LastSourceLine  int
	SliceStartPos   int
	SliceEndPos     int
	FirstDisplayRow int
	IsFiltered      bool
	FilteredRuns    []FilteredRun
}

// Worker runs layout shaping jobs on a bounded pool of goroutines. It never
// touches Document state; each job carries everything it needs.
//
// Submission is asynchronous: Submit enqueues work and returns immediately.
// When the pool's queue is full, Submit reports ok=false and the caller is
// expected to run the job inline via RunInline instead.
type Worker struct {
	shaper shaped.Shaper
	style  *text.Style
	rts    *rich.Settings

	jobs    chan snapshotJob
	results chan LayoutPacket

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

type snapshotJob struct {
	ctx context.Context
	snp Snapshot
}

// NewWorker starts a Worker with n goroutines draining a bounded job queue.
// style and rts are the shaping defaults (font, direction, script settings)
// shared by every job.
func NewWorker(n int, style *text.Style, rts *rich.Settings) *Worker {
	if n < 1 {
		n = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		shaper:  shaped.NewShaper(),
		style:   style,
		rts:     rts,
		jobs:    make(chan snapshotJob, 64),
		results: make(chan LayoutPacket, 64),
		cancel:  cancel,
	}
	w.wg.Add(n)
	for i := 0; i < n; i++ {
		go w.run(ctx)
	}
	return w
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-w.jobs:
			if !ok {
				return
			}
			w.results <- w.shape(j.snp)
		}
	}
}

// shape builds a measured layout from a snapshot.
func (w *Worker) shape(snp Snapshot) LayoutPacket {
	plain := rich.NewStyle()
	lines := w.shaper.WrapLines(snp.Text, plain, w.style, w.rts, math32.Vec2(snp.WidthDip, 1e7))
	return LayoutPacket{
		Seq:             snp.Seq,
		StartPos:        snp.SliceStartPos,
		EndPos:          snp.SliceEndPos,
		FirstLine:       snp.FirstSourceLine,
		LastLine:        snp.LastSourceLine,
		FirstDisplayRow: snp.FirstDisplayRow,
		IsFiltered:      snp.IsFiltered,
		FilteredRuns:    snp.FilteredRuns,
		Lines:           lines,
	}
}

// Submit enqueues snp for background shaping. ok is false when the job
// queue is full; the caller must then fall back to RunInline, the degraded
// path for worker-submission failure.
func (w *Worker) Submit(snp Snapshot) (ok bool) {
	select {
	case w.jobs <- snapshotJob{snp: snp}:
		return true
	default:
		return false
	}
}

// RunInline shapes snp synchronously on the caller's goroutine (normally the
// UI thread). cmd/tracepane uses it only when Submit fails; small bursts are
// submitted to the pool like any other job.
func (w *Worker) RunInline(snp Snapshot) LayoutPacket {
	return w.shape(snp)
}

// Results is the channel the UI thread drains for completed LayoutPackets.
func (w *Worker) Results() <-chan LayoutPacket {
	return w.results
}

// Close stops all worker goroutines and waits for them to exit. Pending
// queued jobs are dropped; any job already shaping finishes first.
func (w *Worker) Close() {
	w.cancel()
	w.wg.Wait()
}
