// SPDX-License-Identifier: MPL-2.0

//go:build windows

package catalog

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/windows"
)

// fileLock is a LockFileEx byte-range lock on a lock file.
type fileLock struct {
	file    *os.File
	timeout time.Duration
	locked  bool
}

func newFileLock(path string, timeout time.Duration) (*fileLock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open lock file %s: %w", path, err)
	}
	return &fileLock{file: f, timeout: timeout}, nil
}

// Lock polls a fail-immediately LockFileEx with backoff until timeout.
func (l *fileLock) Lock() error {
	if l.locked {
		return nil
	}
	return retryWithBackoff(l.timeout, func() error {
		err := windows.LockFileEx(
			windows.Handle(l.file.Fd()),
			windows.LOCKFILE_EXCLUSIVE_LOCK|windows.LOCKFILE_FAIL_IMMEDIATELY,
			0,
			1, 0,
			&windows.Overlapped{},
		)
		if err != nil {
			return err
		}
		l.locked = true
		return nil
	})
}

// Unlock releases the lock and closes the file. Safe to call more than once.
func (l *fileLock) Unlock() error {
	if l.file == nil {
		return nil
	}
	var err error
	if l.locked {
		err = windows.UnlockFileEx(windows.Handle(l.file.Fd()), 0, 1, 0, &windows.Overlapped{})
		l.locked = false
	}
	_ = l.file.Close()
	l.file = nil
	return err
}
