package hyperliquid

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/exactkit/exact/internal/circuit"
	"github.com/exactkit/exact/internal/ratelimit"
	syncutil "github.com/exactkit/exact/internal/sync"
	"github.com/exactkit/exact/pkg/config"
	"github.com/exactkit/exact/pkg/domain"
	"github.com/exactkit/exact/pkg/errors"
	"github.com/exactkit/exact/pkg/kernel/rest"
)

// restClient is Hyperliquid's REST surface. Every read goes through a
// single "/info" POST with a discriminated body; every write goes
// through "/exchange" with an EIP-712-signed action. Hyperliquid's
// signing scheme doesn't fit pkg/kernel/signer.Signer (it signs a
// msgpack-encoded action body, not a query/header pair), so this driver
// signs its own requests with walletSigner and posts through the shared
// rest.Client purely for its connection pooling, rate limiting and error
// decoding.
type restClient struct {
	http    *rest.Client
	wallet  *walletSigner
	vault   string
	nonceGen *syncutil.NonceGenerator
}

func newRESTClient(cfg config.ExchangeConfig) (*restClient, error) {
	var wallet *walletSigner
	if !cfg.SecretKey.IsEmpty() {
		var err error
		wallet, err = newWalletSigner(cfg.SecretKey, cfg.Testnet)
		if err != nil {
			return nil, err
		}
	}

	c := rest.New(rest.Config{
		Exchange:     exchange,
		BaseURL:      restURL(cfg.BaseURL, cfg.Testnet),
		Limiter:      ratelimit.NewWeightedLimiter(1200),
		NeedsSigning: func(string) bool { return false },
		DecodeError:  decodeError,
		Breaker:      circuit.NewBreaker(exchange, circuit.DefaultConfig()),
	})

	return &restClient{
		http:     c,
		wallet:   wallet,
		vault:    cfg.APIKey,
		nonceGen: syncutil.NewNonceGenerator(),
	}, nil
}

func (rc *restClient) Close() { rc.http.Close() }

// nextNonce returns a strictly increasing nonce for signed actions.
// Hyperliquid only requires monotonicity, which GenerateInt64's
// timestamp-high/counter-low packing already guarantees without the
// CAS retry loop a hand-rolled monotonic clock would need.
func (rc *restClient) nextNonce() int64 {
	return rc.nonceGen.GenerateInt64()
}

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

func (rc *restClient) postInfo(ctx context.Context, req infoRequest, result any) error {
	return rc.http.Post(ctx, endpointInfo, nil, req, result)
}

func (rc *restClient) GetMarkets(ctx context.Context) ([]domain.Market, error) {
	var u universe
	if err := rc.postInfo(ctx, infoRequest{Type: "meta"}, &u); err != nil {
		return nil, err
	}
	out := make([]domain.Market, 0, len(u.Universe))
	for _, a := range u.Universe {
		out = append(out, assetToMarket(a))
	}
	return out, nil
}

// metaAndAssetCtxs calls Hyperliquid's two-element tuple response:
// [{"universe": [...]}, [assetCtx, ...]].
func (rc *restClient) metaAndAssetCtxs(ctx context.Context) ([]assetInfo, []assetCtx, error) {
	var raw [2]json.RawMessage
	if err := rc.postInfo(ctx, infoRequest{Type: "metaAndAssetCtxs"}, &raw); err != nil {
		return nil, nil, err
	}

	var u universe
	if err := json.Unmarshal(raw[0], &u); err != nil {
		return nil, nil, errors.NewDeserializationError(exchange, "metaAndAssetCtxs.universe", err)
	}
	var ctxs []assetCtx
	if err := json.Unmarshal(raw[1], &ctxs); err != nil {
		return nil, nil, errors.NewDeserializationError(exchange, "metaAndAssetCtxs.assetCtxs", err)
	}
	return u.Universe, ctxs, nil
}

func (rc *restClient) GetKlines(ctx context.Context, symbol domain.Symbol, interval domain.KlineInterval, limit int, start, end int64) ([]domain.Kline, error) {
	req := infoRequest{
		Type:      "candleSnapshot",
		Coin:      coin(symbol),
		Interval:  hlInterval(interval),
		StartTime: start,
		EndTime:   end,
	}
	var candles []candle
	if err := rc.postInfo(ctx, req, &candles); err != nil {
		return nil, err
	}
	if limit > 0 && len(candles) > limit {
		candles = candles[len(candles)-limit:]
	}
	out := make([]domain.Kline, 0, len(candles))
	for _, c := range candles {
		out = append(out, candleToKline(symbol, string(interval), c))
	}
	return out, nil
}

func (rc *restClient) GetOrderBook(ctx context.Context, symbol domain.Symbol) (*domain.OrderBook, error) {
	var book l2Book
	if err := rc.postInfo(ctx, infoRequest{Type: "l2Book", Coin: coin(symbol)}, &book); err != nil {
		return nil, err
	}
	return l2BookToDomain(symbol, book), nil
}

func (rc *restClient) PlaceOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
	if rc.wallet == nil {
		return nil, errors.NewAuthError(exchange, "", "wallet private key required to place orders")
	}

	order := toHyperliquidOrder(req)
	action := orderAction{Type: "order", Orders: []orderRequest{order}}
	nonce := rc.nextNonce()

	signature, err := rc.wallet.signAction(action, nonce, rc.vault)
	if err != nil {
		return nil, errors.NewSignatureError(exchange, "sign_order", err.Error())
	}

	body := signedAction{Action: action, Nonce: nonce, Signature: signature, Vault: rc.vault}
	var resp exchangeResponse
	if err := rc.http.Post(ctx, endpointExchange, nil, body, &resp); err != nil {
		return nil, err
	}
	return exchangeResponseToOrder(req, resp), nil
}

func (rc *restClient) CancelOrder(ctx context.Context, symbol domain.Symbol, orderID string) error {
	if rc.wallet == nil {
		return errors.NewAuthError(exchange, "", "wallet private key required to cancel orders")
	}

	oid, err := strconv.ParseUint(orderID, 10, 64)
	if err != nil {
		return errors.NewValidationError("order_id", orderID, "hyperliquid order ids must be numeric")
	}

	action := cancelAction{Type: "cancel", Cancels: []cancelRequest{{Coin: coin(symbol), Oid: oid}}}
	nonce := rc.nextNonce()

	signature, err := rc.wallet.signAction(action, nonce, rc.vault)
	if err != nil {
		return errors.NewSignatureError(exchange, "sign_cancel", err.Error())
	}

	body := signedAction{Action: action, Nonce: nonce, Signature: signature, Vault: rc.vault}
	var resp exchangeResponse
	return rc.http.Post(ctx, endpointExchange, nil, body, &resp)
}

func (rc *restClient) GetAccountBalance(ctx context.Context) ([]domain.Balance, error) {
	if rc.wallet == nil {
		return nil, errors.NewAuthError(exchange, "", "wallet address required to query balances")
	}
	var state userState
	if err := rc.postInfo(ctx, infoRequest{Type: "userState", User: rc.wallet.walletAddress()}, &state); err != nil {
		return nil, err
	}
	return userStateToBalances(state), nil
}

func (rc *restClient) GetPositions(ctx context.Context) ([]domain.Position, error) {
	if rc.wallet == nil {
		return nil, errors.NewAuthError(exchange, "", "wallet address required to query positions")
	}
	var state userState
	if err := rc.postInfo(ctx, infoRequest{Type: "userState", User: rc.wallet.walletAddress()}, &state); err != nil {
		return nil, err
	}
	out := make([]domain.Position, 0, len(state.AssetPositions))
	for _, pos := range userStateToPositions(state) {
		if pos.IsFlat() {
			continue
		}
		out = append(out, pos)
	}
	return out, nil
}

func (rc *restClient) GetFundingRates(ctx context.Context, symbols []domain.Symbol) ([]domain.FundingRate, error) {
	assets, ctxs, err := rc.metaAndAssetCtxs(ctx)
	if err != nil {
		return nil, err
	}
	want := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		want[coin(s)] = true
	}
	out := make([]domain.FundingRate, 0, len(symbols))
	for i, a := range assets {
		if i >= len(ctxs) || !want[a.Name] {
			continue
		}
		out = append(out, assetCtxToFundingRate(symbolFromCoin(a.Name), ctxs[i]))
	}
	return out, nil
}

func (rc *restClient) GetAllFundingRates(ctx context.Context) ([]domain.FundingRate, error) {
	assets, ctxs, err := rc.metaAndAssetCtxs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.FundingRate, 0, len(assets))
	for i, a := range assets {
		if i >= len(ctxs) {
			break
		}
		out = append(out, assetCtxToFundingRate(symbolFromCoin(a.Name), ctxs[i]))
	}
	return out, nil
}

func (rc *restClient) GetFundingRateHistory(ctx context.Context, symbol domain.Symbol, start, end int64, limit int) ([]domain.FundingRate, error) {
	req := infoRequest{Type: "fundingHistory", Coin: coin(symbol), StartTime: start, EndTime: end}
	var entries []fundingHistoryEntry
	if err := rc.postInfo(ctx, req, &entries); err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	out := make([]domain.FundingRate, 0, len(entries))
	for _, e := range entries {
		out = append(out, fundingHistoryEntryToDomain(e))
	}
	return out, nil
}
