// Package retryx models the retry policy for transient request failures:
// a bounded number of attempts with exponential backoff between them.
// The policy is pure computation; the actual waiting is delegated to
// github.com/sethvargo/go-retry.
package retryx

import (
	"math"
	"time"

	"github.com/sethvargo/go-retry"
)

// Policy describes how a failed attempt is retried.
//
// Attempt numbering starts at 1. The delay before re-attempt n is
// BaseDelay * Factor^(n-1), so with defaults the waits are 1s and 2s
// between the three attempts.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Factor      float64
}

// DefaultPolicy matches the backend team's client defaults:
// 3 attempts, 1 second base delay, doubling.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 3, BaseDelay: time.Second, Factor: 2}
}

// Delay returns the backoff before re-attempting after attempt n (1-based).
// Attempts outside [1, MaxAttempts) yield zero.
func (p Policy) Delay(attempt int) time.Duration {
	if attempt < 1 || attempt >= p.MaxAttempts {
		return 0
	}
	return time.Duration(float64(p.BaseDelay) * math.Pow(p.Factor, float64(attempt-1)))
}

// Backoff adapts the policy to a retry.Backoff for retry.Do. The returned
// backoff is single-use: it carries the attempt counter for one logical
// request and must not be shared.
func (p Policy) Backoff() retry.Backoff {
	attempt := 0
	return retry.BackoffFunc(func() (time.Duration, bool) {
		attempt++
		if attempt >= p.MaxAttempts {
			return 0, true
		}
		return p.Delay(attempt), false
	})
}
