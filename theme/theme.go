// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package theme resolves a named theme (including user overlays) to the
// concrete color set the Renderer draws with, and reacts to system
// high-contrast/dark-light signals. Color math is built on
// cogentcore.org/core/colors rather than hand-rolled ARGB blending.
package theme

import (
	"image/color"

	"cogentcore.org/core/colors"
)

// ID names a theme, built-in or user-defined.
type ID string

// Built-in base theme IDs.
const (
	BuiltinSystem       ID = "builtin/system"
	BuiltinLight        ID = "builtin/light"
	BuiltinDark         ID = "builtin/dark"
	BuiltinHighContrast ID = "builtin/highContrast"
	BuiltinRainbow      ID = "builtin/rainbow"
)

// Key names one overlay color slot, under the "monitor.textView.*"
// namespace user themes override.
type Key string

const (
	KeyBackground      Key = "monitor.textView.bg"
	KeyForeground      Key = "monitor.textView.fg"
	KeyCaret           Key = "monitor.textView.caret"
	KeySelection       Key = "monitor.textView.selection"
	KeySearchHighlight Key = "monitor.textView.searchHighlight"
	KeyGutterBg        Key = "monitor.textView.gutterBg"
	KeyGutterFg        Key = "monitor.textView.gutterFg"
	KeyMetaText        Key = "monitor.textView.metaText"
	KeyMetaError       Key = "monitor.textView.metaError"
	KeyMetaWarning     Key = "monitor.textView.metaWarning"
	KeyMetaInfo        Key = "monitor.textView.metaInfo"
	KeyMetaDebug       Key = "monitor.textView.metaDebug"
)

// Definition is a named theme: either a built-in base (BaseThemeID == "" and
// Colors fully populated) or a user overlay (BaseThemeID names the base to
// start from, Colors holds only the keys it overrides).
type Definition struct {
	ID          ID
	Name        string
	BaseThemeID ID
	Colors      map[Key]color.RGBA
}

// Palette is the fully resolved, concrete color set the Renderer draws
// with. Every field is always populated after Resolve.
type Palette struct {
	Background      color.RGBA
	Foreground      color.RGBA
	Caret           color.RGBA
	Selection       color.RGBA
	SearchHighlight color.RGBA
	GutterBg        color.RGBA
	GutterFg        color.RGBA
	MetaText        color.RGBA
	MetaError       color.RGBA
	MetaWarning     color.RGBA
	MetaInfo        color.RGBA
	MetaDebug       color.RGBA
}

func light() Palette {
	return Palette{
		Background:      colors.AsRGBA(colors.White),
		Foreground:      colors.AsRGBA(colors.Black),
		Caret:           colors.AsRGBA(colors.Black),
		Selection:       colors.FromNRGBA(51, 153, 255, 90),
		SearchHighlight: colors.FromNRGBA(255, 215, 0, 140),
		GutterBg:        colors.FromRGB(240, 240, 240),
		GutterFg:        colors.FromRGB(120, 120, 120),
		MetaText:        colors.AsRGBA(colors.Black),
		MetaError:       colors.FromRGB(196, 30, 30),
		MetaWarning:     colors.FromRGB(184, 134, 11),
		MetaInfo:        colors.FromRGB(30, 90, 196),
		MetaDebug:       colors.FromRGB(110, 110, 110),
	}
}

func dark() Palette {
	return Palette{
		Background:      colors.FromRGB(30, 30, 30),
		Foreground:      colors.FromRGB(220, 220, 220),
		Caret:           colors.FromRGB(220, 220, 220),
		Selection:       colors.FromNRGBA(70, 130, 220, 110),
		SearchHighlight: colors.FromNRGBA(255, 215, 0, 110),
		GutterBg:        colors.FromRGB(40, 40, 40),
		GutterFg:        colors.FromRGB(150, 150, 150),
		MetaText:        colors.FromRGB(220, 220, 220),
		MetaError:       colors.FromRGB(240, 90, 90),
		MetaWarning:     colors.FromRGB(230, 190, 80),
		MetaInfo:        colors.FromRGB(110, 170, 240),
		MetaDebug:       colors.FromRGB(150, 150, 150),
	}
}

func highContrast() Palette {
	return Palette{
		Background:      colors.AsRGBA(colors.Black),
		Foreground:      colors.AsRGBA(colors.White),
		Caret:           colors.AsRGBA(colors.Yellow),
		Selection:       colors.FromNRGBA(255, 255, 0, 160),
		SearchHighlight: colors.FromNRGBA(0, 255, 255, 160),
		GutterBg:        colors.AsRGBA(colors.Black),
		GutterFg:        colors.AsRGBA(colors.White),
		MetaText:        colors.AsRGBA(colors.White),
		MetaError:       colors.AsRGBA(colors.Red),
		MetaWarning:     colors.AsRGBA(colors.Yellow),
		MetaInfo:        colors.AsRGBA(colors.Cyan),
		MetaDebug:       colors.AsRGBA(colors.White),
	}
}

func rainbow() Palette {
	p := dark()
	p.MetaError = colors.FromRGB(255, 99, 71)
	p.MetaWarning = colors.FromRGB(255, 193, 7)
	p.MetaInfo = colors.FromRGB(64, 224, 208)
	p.MetaDebug = colors.FromRGB(186, 104, 200)
	p.Foreground = colors.FromRGB(200, 230, 255)
	return p
}

func basePalette(id ID) Palette {
	switch id {
	case BuiltinDark:
		return dark()
	case BuiltinHighContrast:
		return highContrast()
	case BuiltinRainbow:
		return rainbow()
	case BuiltinLight:
		return light()
	default:
		return light()
	}
}

// Signals carries the environment state Resolve consults: high contrast
// wins first, then the OS dark/light preference for builtin/system.
type Signals struct {
	HighContrastActive bool
	SystemPrefersDark  bool
}

func paletteKey(p *Palette, key Key) *color.RGBA {
	switch key {
	case KeyBackground:
		return &p.Background
	case KeyForeground:
		return &p.Foreground
	case KeyCaret:
		return &p.Caret
	case KeySelection:
		return &p.Selection
	case KeySearchHighlight:
		return &p.SearchHighlight
	case KeyGutterBg:
		return &p.GutterBg
	case KeyGutterFg:
		return &p.GutterFg
	case KeyMetaText:
		return &p.MetaText
	case KeyMetaError:
		return &p.MetaError
	case KeyMetaWarning:
		return &p.MetaWarning
	case KeyMetaInfo:
		return &p.MetaInfo
	case KeyMetaDebug:
		return &p.MetaDebug
	default:
		return nil
	}
}

// Resolve maps the current theme ID to a concrete Palette: a high-contrast
// signal wins outright; otherwise the current theme is looked up, and if it
// is a user theme its BaseThemeID supplies the starting palette before its
// Colors overlay is applied.
func Resolve(current ID, userThemes map[ID]Definition, sig Signals) Palette {
	if sig.HighContrastActive {
		return highContrast()
	}

	baseID := current
	var overlay map[Key]color.RGBA
	if def, ok := userThemes[current]; ok {
		baseID = def.BaseThemeID
		overlay = def.Colors
	}

	if baseID == BuiltinSystem || baseID == "" {
		if sig.SystemPrefersDark {
			baseID = BuiltinDark
		} else {
			baseID = BuiltinLight
		}
	}
	// A base that itself names a user theme (chained overlays) resolves one
	// level further; deeper chains are not supported.
	if def, ok := userThemes[baseID]; ok && overlay == nil {
		overlay = def.Colors
		baseID = def.BaseThemeID
	}

	p := basePalette(baseID)
	for k, c := range overlay {
		if slot := paletteKey(&p, k); slot != nil {
			*slot = c
		}
	}
	return p
}
