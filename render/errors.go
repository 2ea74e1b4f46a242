// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render implements the UI-thread renderer: it picks among a cached
// slice bitmap, a live slice layout, a fallback layout, or the tail layout,
// and draws selection, search highlights, gutter, and caret through
// cogentcore.org/core/paint. It never touches a concrete GPU API directly;
// callers supply a Surface, keeping the real backend (paint/renderers)
// pluggable.
package render

import "errors"

// Rendering error taxonomy. The viewer never aborts the process over any of
// these; all are logged and recovered on the next paint.
var (
	// ErrResourceCreation covers device/context/swap-chain/brush/layout
	// creation failure. Recovery: discard device resources, request a full
	// redraw, retry next paint.
	ErrResourceCreation = errors.New("render: resource creation failed")

	// ErrDeviceLost is detected during present or EndDraw. Same recovery as
	// ErrResourceCreation.
	ErrDeviceLost = errors.New("render: device lost")

	// ErrSliceTooLarge means the requested cache bitmap exceeds the
	// backend's maximum texture dimension; the caller must skip caching and
	// render the layout directly every frame.
	ErrSliceTooLarge = errors.New("render: slice exceeds backend's maximum bitmap size")

	// ErrLayoutOverflow means the text is wider than the allowed cache
	// width; the caller must clamp the width and render with an overflow
	// indicator.
	ErrLayoutOverflow = errors.New("render: layout wider than cache width limit")
)
