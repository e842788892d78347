package ratelimit

import "context"

// Limiter is the common shape kernel/rest.Client needs from a rate
// limiter: block until a request of the given weight can proceed. The
// Binance drivers and Hyperliquid use WeightedLimiter; Bybit, OKX, Backpack
// and Paradex use TokenLimiter, which counts every request as 1.
type Limiter interface {
	Wait(ctx context.Context, weight int) error
	Stats() LimiterStats
}

var (
	_ Limiter = (*WeightedLimiter)(nil)
	_ Limiter = (*TokenLimiter)(nil)
)
