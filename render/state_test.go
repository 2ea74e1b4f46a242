// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

func TestStateMachineTransitions(t *testing.T) {
	var m StateMachine
	assert.Equal(t, NoLayout, m.State())

	m.OnLayoutReady()
	assert.Equal(t, LayoutReady, m.State())

	m.OnSliceBitmapRebuilt()
	assert.Equal(t, SliceBitmapReady, m.State())

	m.OnSliceMiss()
	assert.Equal(t, FallbackOnly, m.State())

	m.OnEnterAutoScroll()
	assert.Equal(t, TailOnly, m.State())

	m.OnEnterScrollBack()
	assert.Equal(t, NoLayout, m.State())

	m.OnSliceBitmapRebuilt()
	m.OnDeviceLost()
	assert.Equal(t, NoLayout, m.State())
}

func TestPlanSliceBitmapClampsAndOverflows(t *testing.T) {
	plan := PlanSliceBitmap(5000, 1.0, 16384)
	assert.True(t, plan.Cacheable)
	assert.True(t, plan.Overflow)
	assert.Equal(t, float32(MaxSliceWidthDIP), plan.ClampWidthDIP)
}

func TestPlanSliceBitmapTooLargeForBackend(t *testing.T) {
	plan := PlanSliceBitmap(4096, 4.0, 8000)
	assert.False(t, plan.Cacheable)
}

func TestPartialDirtyRectScrollDown(t *testing.T) {
	in := Input{ViewportSize: math32.Vec2(800, 600), ScrollY: 120, PrevScrollY: 100}
	rect := partialDirtyRect(in)
	assert.Equal(t, 0, rect.Min.X)
	assert.Equal(t, 580, rect.Min.Y)
	assert.Equal(t, 600, rect.Max.Y)
}

func TestPartialDirtyRectScrollUp(t *testing.T) {
	in := Input{ViewportSize: math32.Vec2(800, 600), ScrollY: 80, PrevScrollY: 100}
	rect := partialDirtyRect(in)
	assert.Equal(t, 0, rect.Min.Y)
	assert.Equal(t, 20, rect.Max.Y)
}
