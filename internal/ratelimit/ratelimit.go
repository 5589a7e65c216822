// Package ratelimit guards outbound packet writes with a token bucket,
// adapted from the teacher's middleware.RateLimitMiddleware
// (golang.org/x/time/rate). There the limiter guarded inbound RPC
// requests against a noisy caller; here it guards the connection's own
// outbound writes against a runaway handler (for example a buggy
// KnownPacks handler looping on a malformed reply) flooding the wire.
package ratelimit

import (
	"fmt"

	"golang.org/x/time/rate"

	"github.com/mcclient/mcclient/internal/protoerr"
)

// Limiter wraps a token-bucket rate.Limiter for outbound packets.
//
// The limiter is constructed once per connection and shared across every
// send — exactly like the teacher's warning that creating a fresh
// limiter per call defeats the bucket entirely.
type Limiter struct {
	limiter *rate.Limiter
}

// New creates a Limiter allowing r packets per second with the given
// burst capacity.
func New(r float64, burst int) *Limiter {
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(r), burst)}
}

// Allow reports whether a packet may be sent now, consuming a token if
// so.
func (l *Limiter) Allow() error {
	if !l.limiter.Allow() {
		return fmt.Errorf("ratelimit: outbound packet: %w", protoerr.ErrIO)
	}
	return nil
}
