// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"io"
	"os"

	"cogentcore.org/core/base/errors"

	"github.com/tracepane/tracepane/document"
	"github.com/tracepane/tracepane/settings"
	"github.com/tracepane/tracepane/theme"
	"github.com/tracepane/tracepane/viewer"
)

// ErrNotImplemented is returned by stub commands that exist on the menu but
// do not function (File > Print).
var ErrNotImplemented = errors.New("app: not implemented")

// FileNew clears the document back to empty (File > New).
func (a *Application) FileNew() {
	a.Doc.Clear()
}

// FileOpen replaces the document's content with path's (File > Open).
func (a *Application) FileOpen(path string) error {
	return a.OpenFile(path)
}

// FileSaveVisibleAs writes the currently visible lines to path (File > Save
// Visible As).
func (a *Application) FileSaveVisibleAs(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Log(err)
	}
	defer f.Close()
	return a.SaveVisibleAs(f)
}

// FilePrint is a stub; the menu entry exists but printing is not
// implemented.
func (a *Application) FilePrint(io.Writer) error {
	return ErrNotImplemented
}

// EditCopy returns the clipboard text for the current selection (Edit >
// Copy).
func (a *Application) EditCopy() string {
	return a.View.CopySelection()
}

// EditFind opens the find overlay (Edit > Find, Ctrl+F).
func (a *Application) EditFind() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Find.Open()
}

// EditFindClose closes the find overlay.
func (a *Application) EditFindClose() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Find.Close()
}

// EditFindNext selects the next match (Edit > Find Next, F3).
func (a *Application) EditFindNext() (matched bool) {
	_, ok := a.View.FindNext(false)
	return ok
}

// EditFindPrevious selects the previous match (Edit > Find Previous,
// Shift+F3).
func (a *Application) EditFindPrevious() (matched bool) {
	_, ok := a.View.FindNext(true)
	return ok
}

// EditSelectAll selects the entire document (Edit > Select All, Ctrl+A).
func (a *Application) EditSelectAll() {
	a.View.SelectAll()
}

// ViewSetToolbar toggles the toolbar (View > Toolbar).
func (a *Application) ViewSetToolbar(visible bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Settings.Menu.Toolbar = visible
}

// ViewSetLineNumbers toggles the gutter (View > Line Numbers).
func (a *Application) ViewSetLineNumbers(visible bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Settings.Menu.LineNumbers = visible
}

// ViewSetTheme switches the active theme (View > Theme).
func (a *Application) ViewSetTheme(id theme.ID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Settings.Theme.CurrentThemeID = id
	a.Doc.NotifyThemeChanged()
}

// OptionsSetAlwaysOnTop records the Always On Top toggle in the settings.
// Nothing in this module applies window-manager z-order; window chrome
// belongs to the embedding shell.
func (a *Application) OptionsSetAlwaysOnTop(on bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Settings.Menu.AlwaysOnTop = on
}

// OptionsSetShowIDs toggles process/thread ID display (Options > Show IDs).
func (a *Application) OptionsSetShowIDs(on bool) {
	a.mu.Lock()
	a.Settings.Menu.ShowIDs = on
	a.mu.Unlock()
	a.Doc.EnableShowIDs(on)
}

// OptionsSetAutoScroll handles the explicit Auto-Scroll toggle; enabling it
// forces go-to-end the same way the End key does.
func (a *Application) OptionsSetAutoScroll(on bool) {
	a.mu.Lock()
	a.Settings.Menu.AutoScroll = on
	a.mu.Unlock()
	if on {
		a.View.OnJumpToBottom()
	} else {
		a.View.SetModeExplicit(viewer.ScrollBack)
	}
}

// FilterSetTypeEnabled toggles a single message type's visibility bit
// (Filter > per-type toggles).
func (a *Application) FilterSetTypeEnabled(t document.MetaType, enabled bool) {
	a.mu.Lock()
	mask := a.Settings.Filter.Mask
	bit := filterBit(t)
	if enabled {
		mask |= bit
	} else {
		mask &^= bit
	}
	a.Settings.Filter.Mask = mask
	a.Settings.Filter.Reconcile()
	a.mu.Unlock()
	a.Doc.SetFilterMask(mask)
}

// FilterSetPreset applies one of the named presets (Filter > presets).
func (a *Application) FilterSetPreset(preset settings.FilterPreset) {
	mask := settings.MaskForPreset(preset)
	a.mu.Lock()
	a.Settings.Filter.Mask = mask
	a.Settings.Filter.Preset = preset
	a.mu.Unlock()
	a.Doc.SetFilterMask(mask)
}

func filterBit(t document.MetaType) document.FilterMask {
	switch t {
	case document.Text:
		return document.FilterText
	case document.Error:
		return document.FilterError
	case document.Warning:
		return document.FilterWarning
	case document.Info:
		return document.FilterInfo
	case document.Debug:
		return document.FilterDebug
	default:
		return 0
	}
}
