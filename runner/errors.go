package runner

import "errors"

// ErrRateLimited is returned by Pool.Submit when the admission-control
// token bucket has no capacity left for this tick (spec §5 leaves admission
// unspecified; SPEC_FULL.md fixes it with a rate limiter in front of
// Submit — see DESIGN.md).
var ErrRateLimited = errors.New("runner: submission rate limit exceeded")

// ErrPoolClosed is returned by Pool.Submit once Close has been called.
var ErrPoolClosed = errors.New("runner: pool is closed")

// ErrBreakerOpen is surfaced when a query kind's circuit breaker has
// tripped: Pool replaces gobreaker.ErrOpenState with this sentinel (the
// gobreaker error itself is not wrapped), so callers never need to import
// gobreaker themselves.
var ErrBreakerOpen = errors.New("runner: circuit breaker open for this query kind")
