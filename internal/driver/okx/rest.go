package okx

import (
	"context"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/exactkit/exact/internal/circuit"
	"github.com/exactkit/exact/internal/ratelimit"
	"github.com/exactkit/exact/pkg/config"
	"github.com/exactkit/exact/pkg/domain"
	"github.com/exactkit/exact/pkg/errors"
	"github.com/exactkit/exact/pkg/kernel/rest"
	"github.com/exactkit/exact/pkg/kernel/signer"
)

// restClient is OKX's signed, rate-limited v5 REST surface. OKX requires a
// passphrase alongside the usual key/secret pair, so credentials that lack
// one fail HMACOKX.ValidateCredentials rather than silently signing
// without it.
type restClient struct {
	http *rest.Client
}

func newRESTClient(cfg config.ExchangeConfig) (*restClient, error) {
	var sgn signer.Signer = signer.Noop{}
	if cfg.HasCredentials() {
		s := signer.NewHMACOKX(cfg.APIKey, cfg.SecretKey, cfg.Passphrase)
		if err := s.ValidateCredentials(); err != nil {
			return nil, err
		}
		sgn = s
	}

	c := rest.New(rest.Config{
		Exchange: exchange,
		BaseURL:  restURL(cfg.BaseURL),
		Signer:   sgn,
		Limiter:  ratelimit.NewTokenLimiter(20),
		NeedsSigning: func(endpoint string) bool {
			return endpoint == endpointOrder || endpoint == endpointCancelOrder ||
				endpoint == endpointOrdersPend || endpoint == endpointBalance
		},
		DecodeError: decodeError,
		Breaker:     circuit.NewBreaker(exchange, circuit.DefaultConfig()),
	})
	return &restClient{http: c}, nil
}

func (rc *restClient) Close() { rc.http.Close() }

// decodeError maps OKX's v5 error codes to library error types:
// 50001-50005 and the account codes 51200-51202 become AuthError, and
// 50006-50008 become RateLimitError. Any other code (including the
// 51000-51011 parameter/order and 51100-51103 market-state ranges) is not
// mapped by code; it falls back to the HTTP status (401/403 → AuthError,
// 429 → RateLimitError), and otherwise nil keeps the APIError as-is.
func decodeError(apiErr *errors.APIError) error {
	code := apiErr.Code
	switch code {
	case "50001", "50002", "50003", "50004", "50005":
		return errors.NewAuthError(exchange, code, apiErr.Message)
	case "50006", "50007", "50008":
		return errors.NewRateLimitError(exchange, 0, 1)
	case "51200", "51201", "51202":
		return errors.NewAuthError(exchange, code, apiErr.Message)
	}
	switch apiErr.StatusCode {
	case 401, 403:
		return errors.NewAuthError(exchange, code, apiErr.Message)
	case 429:
		return errors.NewRateLimitError(exchange, 0, 1)
	default:
		return nil
	}
}

func (rc *restClient) GetMarkets(ctx context.Context) ([]domain.Market, error) {
	var resp envelope[[]instrument]
	q := url.Values{"instType": {instType}}
	if err := rc.http.GetWithRetry(ctx, endpointInstruments, q, &resp, rest.RetryConfig{}); err != nil {
		return nil, err
	}
	out := make([]domain.Market, 0, len(resp.Data))
	for _, in := range resp.Data {
		if in.State != "live" {
			continue
		}
		out = append(out, instrumentToDomain(in))
	}
	return out, nil
}

func (rc *restClient) GetTicker(ctx context.Context, symbol domain.Symbol) (*domain.Ticker, error) {
	var resp envelope[[]ticker]
	q := url.Values{"instId": {okxInstID(symbol)}}
	if err := rc.http.Get(ctx, endpointTicker, q, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, errors.NewValidationError("symbol", symbol.String(), "no ticker data returned")
	}
	return tickerToDomain(resp.Data[0]), nil
}

func (rc *restClient) GetOrderBook(ctx context.Context, symbol domain.Symbol, depth int) (*domain.OrderBook, error) {
	q := url.Values{"instId": {okxInstID(symbol)}}
	if depth > 0 {
		q.Set("sz", strconv.Itoa(depth))
	}
	var resp envelope[[]orderBook]
	if err := rc.http.Get(ctx, endpointOrderBook, q, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, errors.NewValidationError("symbol", symbol.String(), "no order book data returned")
	}
	return orderBookToDomain(symbol, resp.Data[0]), nil
}

func (rc *restClient) GetTrades(ctx context.Context, symbol domain.Symbol, limit int) ([]domain.Trade, error) {
	q := url.Values{"instId": {okxInstID(symbol)}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var resp envelope[[]trade]
	if err := rc.http.Get(ctx, endpointTrades, q, &resp); err != nil {
		return nil, err
	}
	out := make([]domain.Trade, 0, len(resp.Data))
	for _, t := range resp.Data {
		out = append(out, *tradeToDomain(t))
	}
	return out, nil
}

// GetKlines fetches candles from /api/v5/market/candles. OKX paginates by
// timestamp rather than an offset: "before" returns records newer than the
// given ts, "after" returns records older than it. start/end map onto that
// pair the same way binanceperp's GetKlines maps them onto startTime/
// endTime, so callers get one uniform (symbol, interval, limit, start, end)
// contract across venues despite OKX's inverted pagination naming.
func (rc *restClient) GetKlines(ctx context.Context, symbol domain.Symbol, interval domain.KlineInterval, limit int, start, end int64) ([]domain.Kline, error) {
	q := url.Values{
		"instId": {okxInstID(symbol)},
		"bar":    {okxBar(interval)},
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if start > 0 {
		q.Set("before", strconv.FormatInt(start, 10))
	}
	if end > 0 {
		q.Set("after", strconv.FormatInt(end, 10))
	}
	var resp envelope[[]candle]
	if err := rc.http.GetWithRetry(ctx, endpointCandles, q, &resp, rest.RetryConfig{}); err != nil {
		return nil, err
	}
	out := make([]domain.Kline, 0, len(resp.Data))
	for _, row := range resp.Data {
		out = append(out, candleToDomain(symbol, string(interval), [9]string(row)))
	}
	return out, nil
}

// PlaceOrder defaults tdMode to "cash" (spot, no margin) and assigns a
// client order id via google/uuid when the caller didn't supply one.
func (rc *restClient) PlaceOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
	clientID := req.ClientOrderID
	if clientID == "" {
		clientID = uuid.NewString()
	}

	body := orderRequestBody{
		InstID:  req.Symbol,
		TdMode:  "cash",
		Side:    orderSideWire(req.Side),
		OrdType: orderTypeWire(req.Type, req.TimeInForce),
		Sz:      domain.String(req.Quantity),
		ClOrdID: clientID,
	}
	if !domain.IsZero(req.Price) {
		body.Px = domain.String(req.Price)
	}

	var resp envelope[[]orderResult]
	if err := rc.http.Post(ctx, endpointOrder, nil, []orderRequestBody{body}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, errors.NewValidationError("order", req.Symbol, "no order data returned")
	}
	placed := resp.Data[0]
	if placed.SCode != "" && placed.SCode != "0" {
		return nil, errors.NewAuthError(exchange, placed.SCode, placed.SMsg)
	}

	return &domain.Order{
		Exchange:      exchange,
		Symbol:        req.Symbol,
		ID:            placed.OrdID,
		ClientOrderID: placed.ClOrdID,
		Side:          req.Side,
		Type:          req.Type,
		Status:        domain.OrderStatusNew,
		Price:         req.Price,
		Quantity:      req.Quantity,
	}, nil
}

func (rc *restClient) CancelOrder(ctx context.Context, symbol domain.Symbol, orderID string) error {
	body := orderCancelBody{InstID: okxInstID(symbol), OrdID: orderID}
	var resp envelope[[]orderResult]
	return rc.http.Post(ctx, endpointCancelOrder, nil, []orderCancelBody{body}, &resp)
}

func (rc *restClient) GetOpenOrders(ctx context.Context, symbol domain.Symbol) ([]domain.Order, error) {
	q := url.Values{"instType": {instType}}
	if !symbol.IsZero() {
		q.Set("instId", okxInstID(symbol))
	}
	var resp envelope[[]pendingOrder]
	if err := rc.http.Get(ctx, endpointOrdersPend, q, &resp); err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(resp.Data))
	for _, p := range resp.Data {
		out = append(out, *pendingOrderToDomain(p))
	}
	return out, nil
}

func (rc *restClient) GetAccountBalance(ctx context.Context) ([]domain.Balance, error) {
	var resp envelope[[]balanceAccount]
	if err := rc.http.Get(ctx, endpointBalance, nil, &resp); err != nil {
		return nil, err
	}
	var out []domain.Balance
	for _, acct := range resp.Data {
		for _, d := range acct.Details {
			out = append(out, balanceDetailToDomain(d))
		}
	}
	return out, nil
}
