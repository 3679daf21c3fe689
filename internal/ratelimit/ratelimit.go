// Package ratelimit provides client-side request pacing for the Coinbase
// Advanced Trade API.
//
// The documented limits are roughly 10 requests/second for public REST
// endpoints and 30 requests/second for authenticated ones. Limiters are
// applied by the REST client before each request goes on the wire so the
// caller never sees a 429 under normal load.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Documented per-second request rates.
const (
	PublicRESTRate  = 10
	PrivateRESTRate = 30
)

// Limiter gates requests with a token bucket. The zero value is not usable;
// use one of the constructors.
type Limiter struct {
	limiter *rate.Limiter
}

// New creates a limiter that admits rps requests per second with a burst of
// the same size.
func New(rps int) *Limiter {
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(rps), rps)}
}

// NewPublic creates a limiter sized for unauthenticated REST endpoints.
func NewPublic() *Limiter {
	return New(PublicRESTRate)
}

// NewPrivate creates a limiter sized for authenticated REST endpoints.
func NewPrivate() *Limiter {
	return New(PrivateRESTRate)
}

// Wait blocks until a token is available or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	return l.limiter.Wait(ctx)
}

// Allow reports whether a request may proceed immediately, consuming a token
// if so.
func (l *Limiter) Allow() bool {
	if l == nil {
		return true
	}
	return l.limiter.Allow()
}
