package bybit

import (
	"context"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/exactkit/exact/internal/circuit"
	"github.com/exactkit/exact/internal/ratelimit"
	syncutil "github.com/exactkit/exact/internal/sync"
	"github.com/exactkit/exact/pkg/config"
	"github.com/exactkit/exact/pkg/domain"
	"github.com/exactkit/exact/pkg/errors"
	"github.com/exactkit/exact/pkg/kernel/rest"
	"github.com/exactkit/exact/pkg/kernel/signer"
)

// restClient is Bybit's signed, rate-limited v5 REST surface, built on the
// shared kernel/rest.Client rather than a bespoke resty wrapper, since this
// driver has no pre-existing bespoke implementation to carry forward.
type restClient struct {
	http  *rest.Client
	clock *syncutil.ClockSync
}

func newRESTClient(cfg config.ExchangeConfig) (*restClient, error) {
	var sgn signer.Signer = signer.Noop{}
	if cfg.HasCredentials() {
		sgn = signer.NewHMACBybit(cfg.APIKey, cfg.SecretKey, 5000)
	}

	base := cfg.BaseURL
	if base == "" {
		base = restURL(cfg.Testnet)
	}

	c := rest.New(rest.Config{
		Exchange: exchange,
		BaseURL:  base,
		Signer:   sgn,
		Limiter:  ratelimit.NewTokenLimiter(10),
		NeedsSigning: func(endpoint string) bool {
			return endpoint == endpointOrderCreate || endpoint == endpointOrderCancel || endpoint == endpointWalletBal
		},
		DecodeError: decodeBybitError,
		Breaker:     circuit.NewBreaker(exchange, circuit.DefaultConfig()),
	})

	rc := &restClient{http: c}

	clock := syncutil.NewClockSync(exchange, syncutil.ClockConfig{
		TimeProvider: rc.GetServerTime,
	})
	c.SetClock(clock)
	rc.clock = clock
	go func() {
		if err := clock.Start(); err != nil {
			log.Error().Err(err).Str("exchange", exchange).Msg("clock sync failed")
		}
	}()

	return rc, nil
}

func (rc *restClient) Close() {
	rc.clock.Stop()
	rc.http.Close()
}

// GetServerTime fetches Bybit's current time for this client's ClockSync.
// Bybit reports seconds as a string; timeNano is the sub-second part.
func (rc *restClient) GetServerTime(ctx context.Context) (int64, error) {
	var env envelope[struct {
		TimeSecond string `json:"timeSecond"`
		TimeNano   string `json:"timeNano"`
	}]
	if err := rc.http.Get(ctx, endpointServerTime, nil, &env); err != nil {
		return 0, err
	}
	sec, err := strconv.ParseInt(env.Result.TimeSecond, 10, 64)
	if err != nil {
		return 0, err
	}
	return sec * 1000, nil
}

// decodeBybitError covers transport-level failures (non-2xx HTTP); Bybit's
// own retCode/retMsg errors arrive inside 200 responses and are handled
// where the envelope is decoded (PlaceOrder, CancelOrder).
func decodeBybitError(apiErr *errors.APIError) error {
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
	q := url.Values{"category": {category}}
	var env envelope[instrumentsResult]
	if err := rc.http.GetWithRetry(ctx, endpointInstruments, q, &env, rest.RetryConfig{}); err != nil {
		return nil, err
	}
	markets := make([]domain.Market, 0, len(env.Result.List))
	for _, in := range env.Result.List {
		markets = append(markets, instrumentToMarket(in))
	}
	return markets, nil
}

func (rc *restClient) GetKlines(ctx context.Context, symbol domain.Symbol, interval domain.KlineInterval, limit int, start, end int64) ([]domain.Kline, error) {
	q := url.Values{
		"category": {category},
		"symbol":   {symbol.Base + symbol.Quote},
		"interval": {bybitInterval(interval)},
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if start > 0 {
		q.Set("start", strconv.FormatInt(start, 10))
	}
	if end > 0 {
		q.Set("end", strconv.FormatInt(end, 10))
	}

	var env envelope[klineResult]
	if err := rc.http.GetWithRetry(ctx, endpointKline, q, &env, rest.RetryConfig{}); err != nil {
		return nil, err
	}
	klines := make([]domain.Kline, 0, len(env.Result.List))
	for _, row := range env.Result.List {
		klines = append(klines, klineRowToDomain(symbol, string(interval), row))
	}
	return klines, nil
}

func (rc *restClient) PlaceOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
	body := map[string]any{
		"category": category,
		"symbol":   req.Symbol,
		"side":     orderSideWire(req.Side),
		"orderType": orderTypeWire(req.Type),
		"qty":      domain.String(req.Quantity),
	}
	if !domain.IsZero(req.Price) {
		body["price"] = domain.String(req.Price)
	}
	if req.TimeInForce != "" {
		body["timeInForce"] = req.TimeInForce
	}
	if req.ClientOrderID != "" {
		body["orderLinkId"] = req.ClientOrderID
	}

	var env envelope[orderCreateResult]
	if err := rc.http.Post(ctx, endpointOrderCreate, nil, body, &env); err != nil {
		return nil, err
	}
	if env.RetCode != 0 {
		return nil, errors.NewAPIError(exchange, endpointOrderCreate, 200, strconv.Itoa(env.RetCode), env.RetMsg, "")
	}
	return &domain.Order{
		Exchange:      exchange,
		Symbol:        req.Symbol,
		ID:            env.Result.OrderID,
		ClientOrderID: env.Result.OrderLinkID,
		Side:          req.Side,
		Type:          req.Type,
		Status:        domain.OrderStatusNew,
		Price:         req.Price,
		Quantity:      req.Quantity,
	}, nil
}

func (rc *restClient) CancelOrder(ctx context.Context, symbol domain.Symbol, orderID string) error {
	body := map[string]any{
		"category": category,
		"symbol":   symbol.Base + symbol.Quote,
		"orderId":  orderID,
	}
	var env envelope[orderCreateResult]
	if err := rc.http.Post(ctx, endpointOrderCancel, nil, body, &env); err != nil {
		return err
	}
	if env.RetCode != 0 {
		return errors.NewAPIError(exchange, endpointOrderCancel, 200, strconv.Itoa(env.RetCode), env.RetMsg, "")
	}
	return nil
}

func (rc *restClient) GetAccountBalance(ctx context.Context) ([]domain.Balance, error) {
	q := url.Values{"accountType": {"UNIFIED"}}
	var env envelope[walletBalanceResult]
	if err := rc.http.Get(ctx, endpointWalletBal, q, &env); err != nil {
		return nil, err
	}
	var out []domain.Balance
	for _, acct := range env.Result.List {
		for _, c := range acct.Coin {
			out = append(out, domain.Balance{
				Exchange: exchange,
				Asset:    c.Coin,
				Free:     domain.StringToDecimal(c.AvailableToWithdraw),
				Locked:   domain.Sub(domain.StringToDecimal(c.WalletBalance), domain.StringToDecimal(c.AvailableToWithdraw)),
			})
		}
	}
	return out, nil
}
