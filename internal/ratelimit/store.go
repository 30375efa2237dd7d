// Package ratelimit provides the fixed-window request counters behind the
// three API throttling tiers. Counters live in an injected Store so the
// middleware owns no global mutable state; implementations exist for
// in-process memory and for Redis.
package ratelimit

import (
	"context"
	"time"
)

// Store counts requests per key inside a fixed time window.
//
// Same-key operations must be serialized by the implementation so concurrent
// bursts never undercount; cross-key operations must not contend beyond what
// the backing structure requires.
type Store interface {
	// Incr adds one hit to the key's current window, starting a fresh window
	// when none exists or the previous one has expired, and returns the
	// post-increment count together with the window's reset time.
	Incr(ctx context.Context, key string, window time.Duration) (int, time.Time, error)

	// Peek returns the current count and reset time without consuming
	// budget. A missing or expired window reads as zero with a zero reset
	// time.
	Peek(ctx context.Context, key string) (int, time.Time, error)
}
