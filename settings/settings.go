// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package settings persists the viewer's keyed state: window placement,
// monitor menu flags and filter, and theme configuration. Persistence uses
// encoding/json with a load-if-exists, write-atomically-on-save idiom.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/tracepane/tracepane/document"
	"github.com/tracepane/tracepane/theme"
)

// WindowState is the persisted placement flag, Normal or Maximized.
type WindowState string

const (
	Normal    WindowState = "Normal"
	Maximized WindowState = "Maximized"
)

// WindowPlacement is the persisted window geometry.
type WindowPlacement struct {
	State WindowState `json:"state"`
	X     int         `json:"x"`
	Y     int         `json:"y"`
	W     int         `json:"w"`
	H     int         `json:"h"`
	DPI   float32     `json:"dpi"`
}

// FilterPreset names one of the menu filter presets.
type FilterPreset string

const (
	PresetCustom            FilterPreset = ""
	PresetErrorsOnly        FilterPreset = "ErrorsOnly"
	PresetErrorsAndWarnings FilterPreset = "ErrorsAndWarnings"
	PresetErrorsAndDebug    FilterPreset = "ErrorsAndDebug"
	PresetAll               FilterPreset = "All"
)

// presetMasks maps each named preset to its mask value.
var presetMasks = map[FilterPreset]document.FilterMask{
	PresetErrorsOnly:        document.PresetErrorsOnly,
	PresetErrorsAndWarnings: document.PresetErrorsAndWarning,
	PresetErrorsAndDebug:    document.PresetErrorsAndDebug,
	PresetAll:               document.FilterAll,
}

// PresetForMask returns the known preset name matching mask, or
// PresetCustom if none matches -- the inverse of presetMasks, used when a
// saved preset name doesn't match a known value and the name must be
// re-inferred from the mask.
func PresetForMask(mask document.FilterMask) FilterPreset {
	for name, m := range presetMasks {
		if m == mask {
			return name
		}
	}
	return PresetCustom
}

// MaskForPreset is the reverse lookup; an unrecognized name falls through
// to FilterAll, since the mask (not the name) is the source of truth.
func MaskForPreset(name FilterPreset) document.FilterMask {
	if m, ok := presetMasks[name]; ok {
		return m
	}
	return document.FilterAll
}

// Filter is the persisted filter state; Mask is always the source of truth,
// Preset is a display-name hint reconciled against it on load.
type Filter struct {
	Mask   document.FilterMask `json:"mask"`
	Preset FilterPreset        `json:"preset"`
}

// Reconcile ensures Preset matches Mask, inferring it when a saved name
// doesn't correspond to any current preset.
func (f *Filter) Reconcile() {
	if m, ok := presetMasks[f.Preset]; !ok || m != f.Mask {
		f.Preset = PresetForMask(f.Mask)
	}
}

// MenuFlags are the persisted View/Options menu toggles.
type MenuFlags struct {
	Toolbar     bool `json:"toolbar"`
	LineNumbers bool `json:"lineNumbers"`
	AlwaysOnTop bool `json:"alwaysOnTop"`
	ShowIDs     bool `json:"showIds"`
	AutoScroll  bool `json:"autoScroll"`
}

// ThemeSettings is the persisted theme configuration.
type ThemeSettings struct {
	CurrentThemeID theme.ID                      `json:"currentThemeId"`
	UserThemes     map[theme.ID]theme.Definition `json:"userThemes"`
}

// Settings is the full persisted state.
type Settings struct {
	Window WindowPlacement `json:"window"`
	Menu   MenuFlags       `json:"menu"`
	Filter Filter          `json:"filter"`
	Theme  ThemeSettings   `json:"theme"`
}

// Defaults returns the settings a fresh install starts with.
func Defaults() Settings {
	return Settings{
		Window: WindowPlacement{State: Normal, W: 900, H: 600, DPI: 1.0},
		Menu: MenuFlags{
			Toolbar:     true,
			LineNumbers: true,
			ShowIDs:     true,
			AutoScroll:  true,
		},
		Filter: Filter{Mask: document.FilterAll, Preset: PresetAll},
		Theme:  ThemeSettings{CurrentThemeID: theme.BuiltinSystem, UserThemes: map[theme.ID]theme.Definition{}},
	}
}

// Load reads settings from path, falling back to Defaults() if the file
// does not exist. A malformed file is treated the same as missing: settings
// persistence is never allowed to prevent the viewer from starting.
func Load(path string) Settings {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Defaults()
	}
	var s Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return Defaults()
	}
	s.Filter.Reconcile()
	if s.Theme.UserThemes == nil {
		s.Theme.UserThemes = map[theme.ID]theme.Definition{}
	}
	return s
}

// Save writes s to path atomically: marshal to a temp file in the same
// directory, then rename over the destination, so a crash mid-write never
// corrupts the existing settings file.
func Save(path string, s Settings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".settings-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
