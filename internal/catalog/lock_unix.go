// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package catalog

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// fileLock is an advisory flock on a lock file. The kernel releases it when
// the descriptor is closed, including on process crash.
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

// Lock polls a non-blocking flock with backoff until timeout.
func (l *fileLock) Lock() error {
	if l.locked {
		return nil
	}
	return retryWithBackoff(l.timeout, func() error {
		if err := unix.Flock(int(l.file.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
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
		err = unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
		l.locked = false
	}
	_ = l.file.Close()
	l.file = nil
	return err
}
