package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// TokenLimiter is a plain request-count limiter for venues that express
// their limits as "N requests per second/minute" rather than Binance's
// per-endpoint weight table (Bybit, OKX, Backpack, Paradex).
// Every call to Wait counts as one request regardless of the weight
// argument, so it satisfies the same Limiter interface as WeightedLimiter.
type TokenLimiter struct {
	limiter   *rate.Limiter
	maxWeight int
}

// NewTokenLimiter creates a limiter allowing requestsPerSecond sustained
// throughput with a burst of the same size.
func NewTokenLimiter(requestsPerSecond int) *TokenLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 10
	}
	return &TokenLimiter{
		limiter:   rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		maxWeight: requestsPerSecond,
	}
}

// Wait blocks until a single request slot is available or ctx is done.
// The weight argument is ignored; every request counts as one.
func (tl *TokenLimiter) Wait(ctx context.Context, _ int) error {
	return tl.limiter.Wait(ctx)
}

// Allow reports whether a request can proceed immediately.
func (tl *TokenLimiter) Allow() bool {
	return tl.limiter.Allow()
}

// Stats returns current statistics about the limiter. CurrentWeight is
// always 0 since TokenLimiter does not track server-reported usage.
func (tl *TokenLimiter) Stats() LimiterStats {
	r := tl.limiter.ReserveN(time.Now(), 1)
	wait := time.Duration(0)
	if !r.OK() {
		wait = -1
	} else {
		wait = r.DelayFrom(time.Now())
		r.Cancel()
	}
	return LimiterStats{
		CurrentWeight: 0,
		MaxWeight:     tl.maxWeight,
		Available:     tl.maxWeight,
		WaitTime:      wait,
	}
}
