// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ingest

import "fmt"

// formatDurationMs renders a duration as "{ms}.{us:03}ms".
func formatDurationMs(ms, usRemainder uint64) string {
	return fmt.Sprintf("%d.%03dms", ms, usRemainder)
}

// formatValues renders the trailing " v0={} v1={} hr=0x{:08X}" segment
// common to both perf-scope message shapes.
func formatValues(v0, v1 uint64, hr uint32) string {
	return fmt.Sprintf(" v0=%d v1=%d hr=0x%08X", v0, v1, hr)
}
