// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package findbar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlayDebounce(t *testing.T) {
	o := New()
	t0 := time.Now()
	o.SetQuery("err", false, t0)
	assert.False(t, o.Ready(t0.Add(50*time.Millisecond)))
	assert.True(t, o.Ready(t0.Add(130*time.Millisecond)))
	assert.False(t, o.Ready(t0.Add(200*time.Millisecond)), "ready fires once per edit")
}

func TestOverlayCloseClearsPending(t *testing.T) {
	o := New()
	t0 := time.Now()
	o.Open()
	o.SetQuery("x", true, t0)
	o.Close()
	assert.False(t, o.Visible)
	assert.False(t, o.Ready(t0.Add(time.Second)))
}
