package backpack

import (
	"context"
	"net/url"
	"strconv"

	"github.com/exactkit/exact/internal/circuit"
	"github.com/exactkit/exact/internal/ratelimit"
	"github.com/exactkit/exact/pkg/config"
	"github.com/exactkit/exact/pkg/domain"
	"github.com/exactkit/exact/pkg/errors"
	"github.com/exactkit/exact/pkg/kernel/rest"
	"github.com/exactkit/exact/pkg/kernel/signer"
)

// restClient is Backpack's signed REST surface. Private endpoints are
// signed over an instruction name rather than the URL path, so each
// private call passes its instruction (e.g. "orderExecute") as the
// endpoint argument to rest.Client, matching how signer.Ed25519 builds its
// payload.
type restClient struct {
	http *rest.Client
}

func newRESTClient(cfg config.ExchangeConfig) (*restClient, error) {
	var sgn signer.Signer = signer.Noop{}
	if cfg.HasCredentials() {
		var err error
		sgn, err = signer.NewEd25519(cfg.APIKey, cfg.SecretKey, 5000)
		if err != nil {
			return nil, err
		}
	}

	c := rest.New(rest.Config{
		Exchange: exchange,
		BaseURL:  restURL(cfg.BaseURL),
		Signer:   sgn,
		Limiter:  ratelimit.NewTokenLimiter(10),
		NeedsSigning: func(endpoint string) bool {
			return endpoint == instructionOrderExecute || endpoint == instructionOrderCancel ||
				endpoint == instructionBalanceQuery || endpoint == instructionPositionQuery
		},
		DecodeError: decodeError,
		Breaker:     circuit.NewBreaker(exchange, circuit.DefaultConfig()),
	})
	return &restClient{http: c}, nil
}

func (rc *restClient) Close() { rc.http.Close() }

func decodeError(apiErr *errors.APIError) error {
	switch apiErr.StatusCode {
	case 401, 403:
		return errors.NewAuthError(exchange, apiErr.Code, apiErr.Message)
	case 429:
		return errors.NewRateLimitError(exchange, 0, 1)
	default:
		return nil
	}
}

func (rc *restClient) GetMarkets(ctx context.Context) ([]domain.Market, error) {
	var raw []market
	if err := rc.http.GetWithRetry(ctx, endpointMarkets, nil, &raw, rest.RetryConfig{}); err != nil {
		return nil, err
	}
	out := make([]domain.Market, 0, len(raw))
	for _, m := range raw {
		out = append(out, marketToDomain(m))
	}
	return out, nil
}

func (rc *restClient) GetKlines(ctx context.Context, symbol domain.Symbol, interval domain.KlineInterval, limit int, start, end int64) ([]domain.Kline, error) {
	q := url.Values{
		"symbol":   {symbolWire(symbol)},
		"interval": {bpInterval(interval)},
	}
	if start > 0 {
		q.Set("startTime", strconv.FormatInt(start/1000, 10))
	}
	if end > 0 {
		q.Set("endTime", strconv.FormatInt(end/1000, 10))
	}

	var raw []klineResponse
	if err := rc.http.GetWithRetry(ctx, endpointKlines, q, &raw, rest.RetryConfig{}); err != nil {
		return nil, err
	}
	if limit > 0 && len(raw) > limit {
		raw = raw[len(raw)-limit:]
	}
	out := make([]domain.Kline, 0, len(raw))
	for _, k := range raw {
		out = append(out, klineResponseToDomain(symbol, string(interval), k))
	}
	return out, nil
}

func (rc *restClient) GetTicker(ctx context.Context, symbol domain.Symbol) (*domain.Ticker, error) {
	q := url.Values{"symbol": {symbolWire(symbol)}}
	var t tickerResponse
	if err := rc.http.Get(ctx, endpointTicker, q, &t); err != nil {
		return nil, err
	}
	return tickerResponseToDomain(t), nil
}

func (rc *restClient) GetOrderBook(ctx context.Context, symbol domain.Symbol) (*domain.OrderBook, error) {
	q := url.Values{"symbol": {symbolWire(symbol)}}
	var d depthResponse
	if err := rc.http.Get(ctx, endpointDepth, q, &d); err != nil {
		return nil, err
	}
	return depthResponseToDomain(symbol, d), nil
}

func (rc *restClient) PlaceOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
	body := orderRequest{
		Symbol:    req.Symbol,
		Side:      orderSideWire(req.Side),
		OrderType: orderTypeWire(req.Type),
	}
	if !domain.IsZero(req.Quantity) {
		body.Quantity = domain.String(req.Quantity)
	}
	if !domain.IsZero(req.Price) {
		body.Price = domain.String(req.Price)
	}
	if req.TimeInForce != "" {
		body.TimeInForce = req.TimeInForce
	}

	var result orderResponse
	if err := rc.http.Post(ctx, instructionOrderExecute, nil, body, &result); err != nil {
		return nil, err
	}
	return orderResponseToDomain(req, result), nil
}

func (rc *restClient) CancelOrder(ctx context.Context, symbol domain.Symbol, orderID string) error {
	q := url.Values{"symbol": {symbolWire(symbol)}, "orderId": {orderID}}
	return rc.http.Delete(ctx, instructionOrderCancel, q, nil)
}

func (rc *restClient) GetAccountBalance(ctx context.Context) ([]domain.Balance, error) {
	var raw map[string]balanceEntry
	if err := rc.http.Get(ctx, instructionBalanceQuery, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Balance, 0, len(raw))
	for asset, b := range raw {
		out = append(out, domain.Balance{
			Exchange: exchange,
			Asset:    asset,
			Free:     domain.StringToDecimal(b.Available),
			Locked:   domain.StringToDecimal(b.Locked),
		})
	}
	return out, nil
}

func (rc *restClient) GetPositions(ctx context.Context) ([]domain.Position, error) {
	var raw []position
	if err := rc.http.Get(ctx, instructionPositionQuery, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Position, 0, len(raw))
	for _, p := range raw {
		pos := positionToDomain(p)
		if pos.IsFlat() {
			continue
		}
		out = append(out, pos)
	}
	return out, nil
}

// GetFundingRates uses /api/v1/markPrices, the only place Backpack surfaces
// a live estimated funding rate outside of perp WebSocket pushes.
func (rc *restClient) GetFundingRates(ctx context.Context, symbols []domain.Symbol) ([]domain.FundingRate, error) {
	all, err := rc.GetAllFundingRates(ctx)
	if err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		return all, nil
	}
	want := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		want[symbolWire(s)] = true
	}
	out := make([]domain.FundingRate, 0, len(symbols))
	for _, fr := range all {
		if want[symbolWire(fr.Symbol)] {
			out = append(out, fr)
		}
	}
	return out, nil
}

func (rc *restClient) GetAllFundingRates(ctx context.Context) ([]domain.FundingRate, error) {
	var raw []markPrice
	if err := rc.http.Get(ctx, endpointMarkPrice, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.FundingRate, 0, len(raw))
	for _, m := range raw {
		out = append(out, markPriceToFundingRate(m))
	}
	return out, nil
}

func (rc *restClient) GetFundingRateHistory(ctx context.Context, symbol domain.Symbol, start, end int64, limit int) ([]domain.FundingRate, error) {
	q := url.Values{"symbol": {symbolWire(symbol)}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if start > 0 {
		q.Set("startTime", strconv.FormatInt(start, 10))
	}
	if end > 0 {
		q.Set("endTime", strconv.FormatInt(end, 10))
	}

	var raw []fundingRateEntry
	if err := rc.http.Get(ctx, endpointFundingHist, q, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.FundingRate, 0, len(raw))
	for _, f := range raw {
		out = append(out, fundingRateEntryToDomain(f))
	}
	return out, nil
}
