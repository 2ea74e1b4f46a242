// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/tracepane/tracepane/document"
	"github.com/tracepane/tracepane/ingest"
)

// transport reads diagnostic events from an io.Reader, one per line, and
// feeds them into the ingest queue. It is the development stand-in for a
// platform event-tracing session: pipe another process's log output into
// tracepane and it streams live.
//
// Line shape: an optional "error:"/"warning:"/"info:"/"debug:" severity
// prefix (case-insensitive), then the message. Unprefixed lines ingest as
// Text.
type transport struct {
	q    *ingest.Queue
	pid  uint32
	done chan struct{}
	wg   sync.WaitGroup

	stopOnce sync.Once
}

func newTransport(q *ingest.Queue, pid uint32) *transport {
	return &transport{q: q, pid: pid, done: make(chan struct{})}
}

// Run consumes r until EOF or Stop, pushing one queue entry per line.
func (t *transport) Run(r io.Reader) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			select {
			case <-t.done:
				return
			default:
			}
			typ, msg := splitSeverity(sc.Text())
			t.q.Push(ingest.Entry{
				Meta: document.Meta{
					Type:      typ,
					Time:      time.Now(),
					ProcessID: t.pid,
				},
				Message: strings.TrimRight(msg, "\r\n"),
			})
		}
	}()
}

// Stop halts the reader goroutine and waits for it to exit; after Stop
// returns, no further notifies are posted.
func (t *transport) Stop() {
	t.stopOnce.Do(func() { close(t.done) })
	t.wg.Wait()
}

func splitSeverity(line string) (document.MetaType, string) {
	lower := strings.ToLower(line)
	for _, p := range []struct {
		prefix string
		typ    document.MetaType
	}{
		{"error:", document.Error},
		{"warning:", document.Warning},
		{"warn:", document.Warning},
		{"info:", document.Info},
		{"debug:", document.Debug},
	} {
		if strings.HasPrefix(lower, p.prefix) {
			return p.typ, strings.TrimSpace(line[len(p.prefix):])
		}
	}
	return document.Text, line
}
