// Package rest provides a venue-agnostic REST client generalizing the
// signing, rate-limiting and error-decoding middleware every venue driver
// needs, so each driver supplies only its base URL, Signer and Limiter.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"resty.dev/v3"

	"github.com/exactkit/exact/internal/circuit"
	"github.com/exactkit/exact/internal/ratelimit"
	syncutil "github.com/exactkit/exact/internal/sync"
	"github.com/exactkit/exact/pkg/errors"
	"github.com/exactkit/exact/pkg/kernel/signer"
)

// WeightFunc returns the rate-limit weight of a request to endpoint.
// Venues without a weighted schedule return 1 for every endpoint.
type WeightFunc func(endpoint string) int

// ErrorDecoder parses a non-2xx response body into a venue-specific error.
// It receives the already-classified APIError so it only needs to inspect
// Body for venue error codes and return a more specific error (AuthError,
// RateLimitError, ValidationError, ...) or nil to keep the APIError as-is.
type ErrorDecoder func(apiErr *errors.APIError) error

// Config configures a Client.
type Config struct {
	// Exchange is the venue name, used to tag every error this client
	// produces (e.g. "binance", "bybit-perp").
	Exchange string

	// BaseURL is the API host, e.g. "https://api.binance.com".
	BaseURL string

	// Timeout bounds each request. Defaults to 30s.
	Timeout time.Duration

	// Signer authenticates requests. signer.Noop{} if the client only
	// ever hits public endpoints.
	Signer signer.Signer

	// Limiter paces outbound requests. Required.
	Limiter ratelimit.Limiter

	// NeedsSigning decides whether a given endpoint must be signed.
	// Defaults to "always sign" if nil.
	NeedsSigning func(endpoint string) bool

	// Weight returns a request's rate-limit weight. Defaults to a
	// constant 1 if nil.
	Weight WeightFunc

	// DecodeError lets a driver recognize venue-specific error codes in
	// a failed response body. Optional.
	DecodeError ErrorDecoder

	// Headers are sent with every request (e.g. User-Agent).
	Headers map[string]string

	// Breaker, if set, wraps every request so repeated failures trip the
	// circuit instead of hammering an unhealthy venue. Shared across a
	// Client's requests since gobreaker's counters are meant to track
	// one venue's health, not one endpoint's.
	Breaker *circuit.Breaker

	// Clock, if set, supplies the timestamp passed to Signer.Sign instead
	// of time.Now(), correcting for drift against the venue's clock.
	// Required by venues (Binance, Bybit) that reject signed requests
	// outside a tight recvWindow.
	Clock *syncutil.ClockSync
}

// Client is a signed, rate-limited REST client shared by every venue
// driver. Per resty v3's contract, Close must be called when done.
type Client struct {
	http         *resty.Client
	exchange     string
	baseURL      string
	signer       signer.Signer
	limiter      ratelimit.Limiter
	needsSigning func(string) bool
	weight       WeightFunc
	decodeError  ErrorDecoder
	breaker      *circuit.Breaker
	clock        *syncutil.ClockSync
	closed       atomic.Bool
}

// New constructs a Client from cfg.
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Signer == nil {
		cfg.Signer = signer.Noop{}
	}
	if cfg.NeedsSigning == nil {
		cfg.NeedsSigning = func(string) bool { return true }
	}
	if cfg.Weight == nil {
		cfg.Weight = func(string) int { return 1 }
	}

	h := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	for k, v := range cfg.Headers {
		h.SetHeader(k, v)
	}

	c := &Client{
		http:         h,
		exchange:     cfg.Exchange,
		baseURL:      cfg.BaseURL,
		signer:       cfg.Signer,
		limiter:      cfg.Limiter,
		needsSigning: cfg.NeedsSigning,
		weight:       cfg.Weight,
		decodeError:  cfg.DecodeError,
		breaker:      cfg.Breaker,
		clock:        cfg.Clock,
	}
	return c
}

// SetClock attaches a ClockSync after construction, for venues whose
// server-time endpoint is itself fetched through this same Client (the
// ClockSync's TimeProvider closes over c, so it can't be built before c
// exists).
func (c *Client) SetClock(cs *syncutil.ClockSync) {
	c.clock = cs
}

// Close releases the underlying transport. Required by resty v3.
func (c *Client) Close() {
	if c.closed.CompareAndSwap(false, true) {
		c.http.Close()
	}
}

// Get issues a GET request. query is signed if the endpoint requires it.
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values, result any) error {
	return c.do(ctx, http.MethodGet, endpoint, query, nil, result)
}

// Post issues a POST request with a JSON-encoded body.
func (c *Client) Post(ctx context.Context, endpoint string, query url.Values, body any, result any) error {
	raw, err := encodeBody(c.exchange, endpoint, body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, endpoint, query, raw, result)
}

// Put issues a PUT request with a JSON-encoded body.
func (c *Client) Put(ctx context.Context, endpoint string, query url.Values, body any, result any) error {
	raw, err := encodeBody(c.exchange, endpoint, body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, endpoint, query, raw, result)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, endpoint string, query url.Values, result any) error {
	return c.do(ctx, http.MethodDelete, endpoint, query, nil, result)
}

// SignedRequest is the escape hatch for venues whose request shape does
// not fit Get/Post/Put/Delete cleanly (raw body signing, nonstandard
// methods). body is always signed as if the endpoint required it.
func (c *Client) SignedRequest(ctx context.Context, method, endpoint string, query url.Values, body []byte, result any) error {
	return c.sendRequest(ctx, method, endpoint, query, body, result, true)
}

func encodeBody(exchange, endpoint string, body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, errors.NewSerializationError(exchange, endpoint+" request body", err)
	}
	return raw, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body []byte, result any) error {
	return c.sendRequest(ctx, method, endpoint, query, body, result, c.needsSigning(endpoint))
}

func (c *Client) sendRequest(ctx context.Context, method, endpoint string, query url.Values, body []byte, result any, sign bool) error {
	if c.closed.Load() {
		return errors.NewConnectionError(c.exchange, endpoint, "client is closed", false)
	}

	if err := c.limiter.Wait(ctx, c.weight(endpoint)); err != nil {
		return errors.NewConnectionError(c.exchange, endpoint, "rate limit wait: "+err.Error(), true)
	}

	if query == nil {
		query = url.Values{}
	}

	req := c.http.R().SetContext(ctx)

	if sign {
		headers, signedQuery, err := c.signer.Sign(method, endpoint, query, body, c.timestampMs())
		if err != nil {
			return errors.NewSignatureError(c.exchange, endpoint, err.Error())
		}
		for k, v := range headers {
			req.SetHeader(k, v)
		}
		query = signedQuery
	}

	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := c.execute(req, method, endpoint)
	if err != nil {
		return err
	}

	if !resp.IsSuccess() {
		return c.handleErrorResponse(resp, endpoint)
	}
	return nil
}

// timestampMs returns the timestamp a signed request should carry. When a
// Clock is configured it corrects for drift against the venue's server
// time; otherwise it falls back to the local wall clock.
func (c *Client) timestampMs() int64 {
	if c.clock != nil {
		return c.clock.UnixMilli()
	}
	return time.Now().UnixMilli()
}

// execute runs req through the circuit breaker when one is configured, so
// a venue tripping into repeated failures fails fast instead of queuing
// more requests behind a dead connection.
func (c *Client) execute(req *resty.Request, method, endpoint string) (*resty.Response, error) {
	if c.breaker == nil {
		resp, err := req.Execute(method, endpoint)
		if err != nil {
			return nil, errors.NewConnectionError(c.exchange, endpoint, err.Error(), true)
		}
		return resp, nil
	}

	result, err := c.breaker.ExecuteWithResult(func() (any, error) {
		resp, err := req.Execute(method, endpoint)
		if err != nil {
			return nil, errors.NewConnectionError(c.exchange, endpoint, err.Error(), true)
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*resty.Response), nil
}

func (c *Client) handleErrorResponse(resp *resty.Response, endpoint string) error {
	statusCode := resp.StatusCode()
	body := resp.String()

	apiErr := errors.NewAPIError(c.exchange, endpoint, statusCode, "", fmt.Sprintf("HTTP %d", statusCode), body)

	if statusCode == http.StatusTooManyRequests {
		retryAfter := time.Second
		if ra := resp.Header().Get("Retry-After"); ra != "" {
			if secs, err := strconv.Atoi(ra); err == nil {
				retryAfter = time.Duration(secs) * time.Second
			}
		}
		return errors.NewRateLimitError(c.exchange, retryAfter, 0)
	}
	if statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		return errors.NewAuthError(c.exchange, strconv.Itoa(statusCode), body)
	}

	if c.decodeError != nil {
		if decoded := c.decodeError(apiErr); decoded != nil {
			return decoded
		}
	}
	return apiErr
}
