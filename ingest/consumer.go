// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ingest

import "github.com/tracepane/tracepane/document"

// Sink is whatever the consumer hands each drained batch to. app.Application
// implements it by wiring Document.AppendInfoLine plus the post-batch
// derived-state refresh (width, content height, gutter digits, mode
// selection, scroll-to-bottom), which runs once per drain cycle rather than
// once per entry.
type Sink interface {
	AppendInfoLine(text string, meta document.Meta)
	AfterBatch(appended int)
}

// Consume drains queue once, applying each entry to sink and running
// AfterBatch exactly once at the end of the batch (not per entry). The
// returned bool reports whether the queue needs another notify posted
// (BatchCap overflow).
func Consume(q *Queue, sink Sink) (needsRenotify bool) {
	batch, again := q.Drain()
	for _, e := range batch {
		sink.AppendInfoLine(e.Message, e.Meta)
	}
	if len(batch) > 0 {
		sink.AfterBatch(len(batch))
	}
	return again
}

// Shutdown drains and discards every remaining queued entry. The transport
// listener must be stopped first so no further notifies are posted; the UI
// then drains whatever is left and throws it away.
func Shutdown(q *Queue) {
	q.DrainAll()
}
