// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package settings

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracepane/tracepane/document"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Equal(t, Defaults(), s)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s := Defaults()
	s.Menu.ShowIDs = false
	s.Filter.Mask = document.PresetErrorsOnly
	s.Filter.Preset = PresetErrorsOnly

	require.NoError(t, Save(path, s))
	loaded := Load(path)
	assert.Equal(t, s.Menu.ShowIDs, loaded.Menu.ShowIDs)
	assert.Equal(t, s.Filter.Mask, loaded.Filter.Mask)
}

func TestReconcileInfersLegacyPreset(t *testing.T) {
	f := Filter{Mask: document.PresetErrorsAndWarning, Preset: "StaleName"}
	f.Reconcile()
	assert.Equal(t, PresetErrorsAndWarnings, f.Preset)
}

func TestPresetMaskRoundTrip(t *testing.T) {
	assert.Equal(t, document.FilterAll, MaskForPreset(PresetAll))
	assert.Equal(t, PresetAll, PresetForMask(document.FilterAll))
	assert.Equal(t, PresetCustom, PresetForMask(document.FilterText|document.FilterInfo))
}
