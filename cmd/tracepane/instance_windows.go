// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package main

import (
	"time"

	"golang.org/x/sys/windows"
)

// instanceLock is a named mutex that keeps a second tracepane from starting
// while one is already running.
type instanceLock struct {
	handle windows.Handle
}

// acquireInstanceLock takes the single-instance mutex. When wait is true it
// polls until the previous instance releases; otherwise a held mutex returns
// errAlreadyRunning immediately.
func acquireInstanceLock(wait bool) (*instanceLock, error) {
	name, err := windows.UTF16PtrFromString("Local\\tracepane-single-instance")
	if err != nil {
		return nil, err
	}
	for {
		h, err := windows.CreateMutex(nil, false, name)
		if err == nil {
			return &instanceLock{handle: h}, nil
		}
		if err != windows.ERROR_ALREADY_EXISTS {
			return nil, err
		}
		if h != 0 {
			windows.CloseHandle(h)
		}
		if !wait {
			return nil, errAlreadyRunning
		}
		time.Sleep(200 * time.Millisecond)
	}
}

// Release closes the mutex handle, letting a waiting instance proceed.
func (l *instanceLock) Release() {
	if l == nil || l.handle == 0 {
		return
	}
	windows.CloseHandle(l.handle)
	l.handle = 0
}
