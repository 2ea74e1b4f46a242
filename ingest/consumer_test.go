// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tracepane/tracepane/document"
)

type fakeSink struct {
	appended   []string
	afterCalls int
	lastCount  int
}

func (f *fakeSink) AppendInfoLine(text string, meta document.Meta) {
	f.appended = append(f.appended, text)
}

func (f *fakeSink) AfterBatch(n int) {
	f.afterCalls++
	f.lastCount = n
}

func TestConsumeRunsAfterBatchOnce(t *testing.T) {
	q := New(nil)
	for i := 0; i < 5; i++ {
		q.Push(Entry{Message: "m"})
	}
	sink := &fakeSink{}
	again := Consume(q, sink)
	assert.False(t, again)
	assert.Len(t, sink.appended, 5)
	assert.Equal(t, 1, sink.afterCalls)
	assert.Equal(t, 5, sink.lastCount)
}

func TestConsumeEmptyQueueSkipsAfterBatch(t *testing.T) {
	q := New(nil)
	sink := &fakeSink{}
	Consume(q, sink)
	assert.Equal(t, 0, sink.afterCalls)
}
