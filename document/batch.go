// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package document

// BatchHandle holds a Document locked across several display-text reads, so
// a renderer painting a whole viewport slice pays for the lock once instead
// of once per line.
//
// A BatchHandle must be Closed exactly once (typically via defer), and the
// Document must not be used from the same goroutine while one is
// outstanding (the lock it holds is exclusive, since building a display
// string mutates the line's cache).
type BatchHandle struct {
	doc   *Document
	texts []string
}

// Len returns the number of lines captured in the batch.
func (b *BatchHandle) Len() int {
	return len(b.texts)
}

// DisplayText returns the display string at batch-local index i.
func (b *BatchHandle) DisplayText(i int) string {
	if i < 0 || i >= len(b.texts) {
		return ""
	}
	return b.texts[i]
}

// Close unlocks the Document. Safe to call once; calling it twice panics,
// matching the once-only contract of the handle.
func (b *BatchHandle) Close() {
	if b.doc == nil {
		panic("document: BatchHandle closed twice")
	}
	doc := b.doc
	b.doc = nil
	doc.mu.Unlock()
}

// Batch locks the Document and snapshots the display text of every visible
// line in [firstVisible, lastVisible]. The caller must Close the returned
// handle.
func (d *Document) Batch(firstVisible, lastVisible int) *BatchHandle {
	d.mu.Lock()
	h := &BatchHandle{doc: d}
	if lastVisible < firstVisible {
		return h
	}
	h.texts = make([]string, 0, lastVisible-firstVisible+1)
	for visIdx := firstVisible; visIdx <= lastVisible && visIdx < len(d.visible); visIdx++ {
		srcIdx := d.visible[visIdx].SourceIndex
		if srcIdx >= len(d.lines) {
			break
		}
		h.texts = append(h.texts, string(d.displayStringLocked(srcIdx)))
	}
	return h
}

// BatchAll locks the Document and snapshots the display text of every source
// line in [firstAll, lastAll], irrespective of visibility. The caller must
// Close the returned handle.
func (d *Document) BatchAll(firstAll, lastAll int) *BatchHandle {
	d.mu.Lock()
	h := &BatchHandle{doc: d}
	if lastAll < firstAll {
		return h
	}
	h.texts = make([]string, 0, lastAll-firstAll+1)
	for i := firstAll; i <= lastAll && i < len(d.lines); i++ {
		h.texts = append(h.texts, string(d.displayStringLocked(i)))
	}
	return h
}
