// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ingest

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tracepane/tracepane/document"
)

func TestQueueNotifiesOnlyOnEmptyToNonEmpty(t *testing.T) {
	var notifies int32
	q := New(func() { atomic.AddInt32(&notifies, 1) })

	q.Push(Entry{Message: "a"})
	q.Push(Entry{Message: "b"})
	q.Push(Entry{Message: "c"})

	assert.Equal(t, int32(1), atomic.LoadInt32(&notifies))
	assert.Equal(t, 3, q.Len())
}

func TestQueueRenotifiesAfterDrain(t *testing.T) {
	var notifies int32
	q := New(func() { atomic.AddInt32(&notifies, 1) })
	q.Push(Entry{Message: "a"})
	batch, again := q.Drain()
	assert.Len(t, batch, 1)
	assert.False(t, again)
	assert.Equal(t, 0, q.Len())

	q.Push(Entry{Message: "b"})
	assert.Equal(t, int32(2), atomic.LoadInt32(&notifies))
}

func TestQueueDrainSplicesOverflowBack(t *testing.T) {
	q := New(nil)
	for i := 0; i < BatchCap+50; i++ {
		q.Push(Entry{Message: "x"})
	}
	batch, again := q.Drain()
	assert.Len(t, batch, BatchCap)
	assert.True(t, again)
	assert.Equal(t, 50, q.Len())
}

func TestQueueDrainAllOnShutdown(t *testing.T) {
	q := New(nil)
	for i := 0; i < 10; i++ {
		q.Push(Entry{Message: "x"})
	}
	out := q.DrainAll()
	assert.Len(t, out, 10)
	assert.Equal(t, 0, q.Len())
}

func TestReconstructPerfScopeWithDetail(t *testing.T) {
	e := ReconstructPerfScope(PerfFields{
		ScopeName:      "LoadAssets",
		Detail:         "texture cache",
		DurationMicros: 1_250_000,
		Value0:         4,
		Value1:         0,
		HResult:        0x80004005,
	}, time.Unix(0, 0), 10, 20)

	assert.Equal(t, document.Debug, e.Meta.Type)
	assert.Equal(t, "[perf] ❌ LoadAssets (texture cache) 1250.000ms v0=4 v1=0 hr=0x80004005", e.Message)
}

func TestReconstructPerfScopeWithoutDetailBelowWarning(t *testing.T) {
	e := ReconstructPerfScope(PerfFields{
		ScopeName:      "Tick",
		DurationMicros: 200_000,
	}, time.Unix(0, 0), 1, 2)

	assert.Equal(t, "[perf] Tick 200.000ms v0=0 v1=0 hr=0x00000000", e.Message)
}

func TestReconstructPerfScopeWarningThreshold(t *testing.T) {
	e := ReconstructPerfScope(PerfFields{ScopeName: "S", DurationMicros: 500_000}, time.Unix(0, 0), 0, 0)
	assert.Contains(t, e.Message, "⚠️ S")
}
