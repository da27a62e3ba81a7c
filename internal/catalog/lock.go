// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"fmt"
	"time"
)

const (
	initialLockBackoff = 10 * time.Millisecond
	maxLockBackoff     = 100 * time.Millisecond
)

// retryWithBackoff calls try until it succeeds or timeout elapses, doubling
// the pause between attempts up to maxLockBackoff.
func retryWithBackoff(timeout time.Duration, try func() error) error {
	deadline := time.Now().Add(timeout)
	pause := initialLockBackoff
	for {
		err := try()
		if err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("lock timeout after %v: %w", timeout, err)
		}
		time.Sleep(pause)
		pause = min(pause*2, maxLockBackoff)
	}
}
