// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package theme

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveHighContrastWins(t *testing.T) {
	p := Resolve(BuiltinDark, nil, Signals{HighContrastActive: true})
	assert.Equal(t, highContrast(), p)
}

func TestResolveBuiltinSystemFollowsOS(t *testing.T) {
	assert.Equal(t, dark(), Resolve(BuiltinSystem, nil, Signals{SystemPrefersDark: true}))
	assert.Equal(t, light(), Resolve(BuiltinSystem, nil, Signals{SystemPrefersDark: false}))
}

func TestResolveUserThemeOverlay(t *testing.T) {
	user := map[ID]Definition{
		"user/mine": {
			ID:          "user/mine",
			Name:        "Mine",
			BaseThemeID: BuiltinDark,
			Colors: map[Key]color.RGBA{
				KeyMetaError: {R: 1, G: 2, B: 3, A: 255},
			},
		},
	}
	p := Resolve("user/mine", user, Signals{})
	base := dark()
	assert.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 255}, p.MetaError)
	assert.Equal(t, base.Foreground, p.Foreground)
}

func TestResolveUnknownIDDefaultsLight(t *testing.T) {
	p := Resolve("nonsense", nil, Signals{})
	assert.Equal(t, light(), p)
}
