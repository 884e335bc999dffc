package ratelimit

import "time"

// Limiter decides whether a request keyed by key may proceed.
// When it may not, retryAfter estimates when the next request would pass.
type Limiter interface {
	Allow(key string) (ok bool, retryAfter time.Duration)
}

// Clock lets tests drive bucket refill.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock.
type RealClock struct{}

// Now returns time.Now.
func (RealClock) Now() time.Time { return time.Now() }
