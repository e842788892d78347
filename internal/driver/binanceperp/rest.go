package binanceperp

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
	"github.com/exactkit/exact/pkg/kernel/rest"
	"github.com/exactkit/exact/pkg/kernel/signer"
)

type restClient struct {
	http  *rest.Client
	clock *syncutil.ClockSync
}

func newRESTClient(cfg config.ExchangeConfig) (*restClient, error) {
	var sgn signer.Signer = signer.Noop{}
	if cfg.HasCredentials() {
		sgn = signer.NewHMACBinance(cfg.APIKey, cfg.SecretKey, 5000)
	}

	base := cfg.BaseURL
	if base == "" {
		base = restURL(cfg.Testnet)
	}

	c := rest.New(rest.Config{
		Exchange: exchange,
		BaseURL:  base,
		Signer:   sgn,
		Limiter:  ratelimit.NewWeightedLimiter(2400),
		NeedsSigning: func(endpoint string) bool {
			return endpoint == endpointOrder || endpoint == endpointAccountV2 || endpoint == endpointPositionRisk
		},
		Headers: map[string]string{"X-MBX-APIKEY": cfg.APIKey},
		Breaker: circuit.NewBreaker(exchange, circuit.DefaultConfig()),
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

// GetServerTime fetches the venue's current time, used as the TimeProvider
// for this client's ClockSync. It deliberately calls the unsigned, public
// /fapi/v1/time endpoint through the same *rest.Client the signed requests
// use, so the offset it measures matches what signing will see.
func (rc *restClient) GetServerTime(ctx context.Context) (int64, error) {
	var result struct {
		ServerTime int64 `json:"serverTime"`
	}
	if err := rc.http.Get(ctx, endpointServerTime, nil, &result); err != nil {
		return 0, err
	}
	return result.ServerTime, nil
}

func (rc *restClient) GetMarkets(ctx context.Context) ([]domain.Market, error) {
	var info exchangeInfo
	if err := rc.http.GetWithRetry(ctx, endpointExchangeInfo, nil, &info, rest.RetryConfig{}); err != nil {
		return nil, err
	}
	markets := make([]domain.Market, 0, len(info.Symbols))
	for _, s := range info.Symbols {
		markets = append(markets, symbolInfoToMarket(s))
	}
	return markets, nil
}

func (rc *restClient) GetKlines(ctx context.Context, symbol domain.Symbol, interval domain.KlineInterval, limit int, start, end int64) ([]domain.Kline, error) {
	q := url.Values{
		"symbol":   {symbol.Base + symbol.Quote},
		"interval": {binanceInterval(interval)},
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if start > 0 {
		q.Set("startTime", strconv.FormatInt(start, 10))
	}
	if end > 0 {
		q.Set("endTime", strconv.FormatInt(end, 10))
	}

	var raw []wireKline
	if err := rc.http.GetWithRetry(ctx, endpointKline, q, &raw, rest.RetryConfig{}); err != nil {
		return nil, err
	}
	klines := make([]domain.Kline, 0, len(raw))
	for _, k := range raw {
		klines = append(klines, wireKlineToDomain(symbol, string(interval), k))
	}
	return klines, nil
}

func (rc *restClient) PlaceOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
	q := url.Values{
		"symbol": {req.Symbol},
		"side":   {string(req.Side)},
		"type":   {orderTypeWire(req.Type)},
	}
	if !domain.IsZero(req.Quantity) {
		q.Set("quantity", domain.String(req.Quantity))
	}
	if !domain.IsZero(req.Price) {
		q.Set("price", domain.String(req.Price))
	}
	if req.TimeInForce != "" {
		q.Set("timeInForce", req.TimeInForce)
	} else if req.Type == domain.OrderTypeLimit {
		q.Set("timeInForce", "GTC")
	}
	if req.ClientOrderID != "" {
		q.Set("newClientOrderId", req.ClientOrderID)
	}
	if !domain.IsZero(req.StopPrice) {
		q.Set("stopPrice", domain.String(req.StopPrice))
	}

	var result orderResponse
	if err := rc.http.Post(ctx, endpointOrder, q, nil, &result); err != nil {
		return nil, err
	}
	return result.toDomain(), nil
}

func (rc *restClient) CancelOrder(ctx context.Context, symbol domain.Symbol, orderID string) error {
	q := url.Values{
		"symbol":  {symbol.Base + symbol.Quote},
		"orderId": {orderID},
	}
	return rc.http.Delete(ctx, endpointOrder, q, nil)
}

func (rc *restClient) GetAccountBalance(ctx context.Context) ([]domain.Balance, error) {
	var acct accountV2
	if err := rc.http.Get(ctx, endpointAccountV2, nil, &acct); err != nil {
		return nil, err
	}
	out := make([]domain.Balance, 0, len(acct.Assets))
	for _, a := range acct.Assets {
		out = append(out, domain.Balance{
			Exchange: exchange,
			Asset:    a.Asset,
			Free:     domain.StringToDecimal(a.AvailableBalance),
			Locked:   domain.Sub(domain.StringToDecimal(a.WalletBalance), domain.StringToDecimal(a.AvailableBalance)),
		})
	}
	return out, nil
}

func (rc *restClient) GetPositions(ctx context.Context) ([]domain.Position, error) {
	var raw []positionRisk
	if err := rc.http.Get(ctx, endpointPositionRisk, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Position, 0, len(raw))
	for _, p := range raw {
		pos := positionRiskToDomain(p)
		if pos.IsFlat() {
			continue
		}
		out = append(out, pos)
	}
	return out, nil
}

func (rc *restClient) GetFundingRates(ctx context.Context, symbols []domain.Symbol) ([]domain.FundingRate, error) {
	out := make([]domain.FundingRate, 0, len(symbols))
	for _, sym := range symbols {
		q := url.Values{"symbol": {sym.Base + sym.Quote}}
		var p premiumIndex
		if err := rc.http.Get(ctx, endpointPremiumIndex, q, &p); err != nil {
			return nil, err
		}
		out = append(out, premiumIndexToFundingRate(p))
	}
	return out, nil
}

func (rc *restClient) GetAllFundingRates(ctx context.Context) ([]domain.FundingRate, error) {
	var raw []premiumIndex
	if err := rc.http.Get(ctx, endpointPremiumIndex, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.FundingRate, 0, len(raw))
	for _, p := range raw {
		out = append(out, premiumIndexToFundingRate(p))
	}
	return out, nil
}

func (rc *restClient) GetFundingRateHistory(ctx context.Context, symbol domain.Symbol, start, end int64, limit int) ([]domain.FundingRate, error) {
	q := url.Values{"symbol": {symbol.Base + symbol.Quote}}
	if start > 0 {
		q.Set("startTime", strconv.FormatInt(start, 10))
	}
	if end > 0 {
		q.Set("endTime", strconv.FormatInt(end, 10))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var raw []fundingRateEntry
	if err := rc.http.Get(ctx, endpointFundingRate, q, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.FundingRate, 0, len(raw))
	for _, e := range raw {
		out = append(out, fundingRateEntryToDomain(symbol, e))
	}
	return out, nil
}
