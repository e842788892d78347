package rest

import (
	"context"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"

	connerrors "github.com/exactkit/exact/pkg/errors"
)

// RetryConfig controls GetWithRetry's backoff.
type RetryConfig struct {
	// Attempts is the maximum number of tries, including the first.
	// Defaults to 3.
	Attempts uint

	// BaseDelay is the first retry's delay; subsequent delays double,
	// capped at MaxDelay. Defaults to 500ms.
	BaseDelay time.Duration

	// MaxDelay caps the exponential backoff. Defaults to 60s.
	MaxDelay time.Duration
}

func (cfg RetryConfig) withDefaults() RetryConfig {
	if cfg.Attempts == 0 {
		cfg.Attempts = 3
	}
	if cfg.BaseDelay == 0 {
		cfg.BaseDelay = 500 * time.Millisecond
	}
	if cfg.MaxDelay == 0 {
		cfg.MaxDelay = 60 * time.Second
	}
	return cfg
}

// GetWithRetry issues a GET request, retrying transient failures with
// exponential backoff. GET is idempotent by construction, so this is safe
// to use for any read endpoint; it must never be used for POST/DELETE
// order-mutation calls, which retry-go is deliberately not wired into here.
func (c *Client) GetWithRetry(ctx context.Context, endpoint string, query url.Values, result any, cfg RetryConfig) error {
	cfg = cfg.withDefaults()

	return retry.Do(
		func() error {
			return c.Get(ctx, endpoint, query, result)
		},
		retry.Context(ctx),
		retry.Attempts(cfg.Attempts),
		retry.Delay(cfg.BaseDelay),
		retry.MaxDelay(cfg.MaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(func(err error) bool {
			return connerrors.IsRetryable(err)
		}),
		retry.LastErrorOnly(true),
	)
}
