// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ingest implements the bounded, single-producer/single-consumer
// inbox between the event-tracing transport worker and the UI thread, plus
// perf-scope event reconstruction. The transport itself (session lifecycle,
// provider enumeration, kernel buffers) is an external collaborator; this
// package only consumes the (meta, message) pairs it produces.
package ingest

import (
	"time"

	"github.com/tracepane/tracepane/document"
)

// Entry is a single queued event: a Document-ready meta plus its message
// text. Trailing \n/\r are expected to already be trimmed by the caller.
type Entry struct {
	Meta    document.Meta
	Message string
}

// PerfFields are the raw transport fields the ingest layer reconstructs a
// perf-scope Debug event from.
type PerfFields struct {
	ScopeName      string
	Detail         string
	DurationMicros uint64
	Value0         uint64
	Value1         uint64
	HResult        uint32
}

// Perf warning/error duration thresholds (500ms / 1s).
const (
	perfWarningMicros = 500_000
	perfErrorMicros   = 1_000_000
)

// ReconstructPerfScope converts a transport-surfaced perf-scope event into
// a Debug-typed (meta, message) pair, formatted as
// "[perf] {emoji}{scope_name} ({detail}) {duration} v0={v0} v1={v1}
// hr=0x{hr:08X}" -- or without the "(detail)" segment when Detail is empty.
func ReconstructPerfScope(f PerfFields, when time.Time, pid, tid uint32) Entry {
	var emoji string
	switch {
	case f.DurationMicros >= perfErrorMicros:
		emoji = "❌ "
	case f.DurationMicros >= perfWarningMicros:
		emoji = "⚠️ "
	}

	ms := f.DurationMicros / 1000
	remainderUs := f.DurationMicros % 1000
	duration := formatDurationMs(ms, remainderUs)

	var message string
	if f.Detail != "" {
		message = "[perf] " + emoji + f.ScopeName + " (" + f.Detail + ") " + duration +
			formatValues(f.Value0, f.Value1, f.HResult)
	} else {
		message = "[perf] " + emoji + f.ScopeName + " " + duration +
			formatValues(f.Value0, f.Value1, f.HResult)
	}

	return Entry{
		Meta: document.Meta{
			Type:      document.Debug,
			Time:      when,
			ProcessID: pid,
			ThreadID:  tid,
		},
		Message: message,
	}
}
