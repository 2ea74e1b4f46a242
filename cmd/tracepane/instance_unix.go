// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package main

import (
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"
)

// instanceLock is an advisory file lock that keeps a second tracepane from
// starting while one is already running.
type instanceLock struct {
	f *os.File
}

// acquireInstanceLock takes the single-instance lock. When wait is true it
// polls until the previous instance releases; otherwise a held lock returns
// errAlreadyRunning immediately.
func acquireInstanceLock(wait bool) (*instanceLock, error) {
	path := filepath.Join(os.TempDir(), "tracepane.lock")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}
	for {
		err = unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			return &instanceLock{f: f}, nil
		}
		if err != unix.EWOULDBLOCK {
			f.Close()
			return nil, err
		}
		if !wait {
			f.Close()
			return nil, errAlreadyRunning
		}
		time.Sleep(200 * time.Millisecond)
	}
}

// Release drops the lock and closes the underlying file.
func (l *instanceLock) Release() {
	if l == nil || l.f == nil {
		return
	}
	unix.Flock(int(l.f.Fd()), unix.LOCK_UN)
	l.f.Close()
	l.f = nil
}
