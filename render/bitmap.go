// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

// MaxSliceWidthDIP is the cache bitmap width clamp. Backends with smaller
// texture limits are handled separately via PlanSliceBitmap's
// backendMaxTexturePixels argument.
const MaxSliceWidthDIP = 4096

// SliceBitmapPlan decides, given a slice's content width and the backend's
// queried maximum texture dimension, whether the slice should be cached as
// a bitmap at all, and at what width it should be clamped if so.
type SliceBitmapPlan struct {
	// Cacheable is false when the clamped width in device pixels would
	// exceed the backend's maximum texture dimension (ErrSliceTooLarge):
	// the Renderer must render the layout directly every frame instead.
	Cacheable bool
	// ClampWidthDIP is the width to render/cache at; equal to the requested
	// width unless it exceeds MaxSliceWidthDIP, in which case an overflow
	// indicator must be drawn at the clamped right edge (ErrLayoutOverflow).
	ClampWidthDIP float32
	// Overflow is true when ClampWidthDIP < the slice's natural content
	// width, i.e. an overflow indicator is needed.
	Overflow bool
}

// PlanSliceBitmap clamps content width to MaxSliceWidthDIP, and skips
// caching entirely if that width in device pixels would exceed the
// backend's maximum texture dimension.
func PlanSliceBitmap(contentWidthDIP float32, dpiScale float32, backendMaxTexturePixels int) SliceBitmapPlan {
	clamped := contentWidthDIP
	overflow := false
	if clamped > MaxSliceWidthDIP {
		clamped = MaxSliceWidthDIP
		overflow = true
	}

	pixels := int(clamped * dpiScale)
	if backendMaxTexturePixels > 0 && pixels > backendMaxTexturePixels {
		return SliceBitmapPlan{Cacheable: false, ClampWidthDIP: clamped, Overflow: overflow}
	}
	return SliceBitmapPlan{Cacheable: true, ClampWidthDIP: clamped, Overflow: overflow}
}
