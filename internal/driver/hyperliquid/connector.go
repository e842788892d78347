package hyperliquid

import (
	"context"
	"sync/atomic"

	"github.com/exactkit/exact/pkg/config"
	"github.com/exactkit/exact/pkg/domain"
	"github.com/exactkit/exact/pkg/kernel/ws"
)

const marketDataChanCapacity = 1000

// Connector composes Hyperliquid's /info+/exchange REST surface and a
// reconnecting public WebSocket into MarketDataSource, OrderPlacer,
// AccountInfo and FundingRateSource.
type Connector struct {
	rest *restClient
	ws   *ws.ReconnectSession[domain.MarketDataType]
	cfg  config.ExchangeConfig
}

func NewConnector(cfg config.ExchangeConfig) (*Connector, error) {
	rc, err := newRESTClient(cfg)
	if err != nil {
		return nil, err
	}

	codec := NewCodec()
	url := wsURL(cfg.Testnet)

	session := ws.NewReconnectSession[domain.MarketDataType](exchange, func() ws.Session[domain.MarketDataType] {
		return ws.NewGWSSession[domain.MarketDataType](ws.GWSConfig[domain.MarketDataType]{
			Exchange: exchange,
			URL:      url,
			Codec:    codec,
		})
	}, ws.ReconnectConfig{AutoResubscribe: true})

	return &Connector{rest: rc, ws: session, cfg: cfg}, nil
}

func (c *Connector) GetWebSocketURL() string {
	return wsURL(c.cfg.Testnet)
}

func (c *Connector) GetMarkets(ctx context.Context) ([]domain.Market, error) {
	return c.rest.GetMarkets(ctx)
}

func (c *Connector) GetKlines(ctx context.Context, symbol domain.Symbol, interval domain.KlineInterval, limit int, start, end int64) ([]domain.Kline, error) {
	return c.rest.GetKlines(ctx, symbol, interval, limit, start, end)
}

// PlaceOrder requires a wallet private key, not an API key/secret pair;
// RequireCredentials only checks APIKey+SecretKey are set, which this
// driver repurposes as vault address (optional) + wallet private key.
func (c *Connector) PlaceOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
	return c.rest.PlaceOrder(ctx, req)
}

func (c *Connector) CancelOrder(ctx context.Context, symbol domain.Symbol, orderID string) error {
	return c.rest.CancelOrder(ctx, symbol, orderID)
}

func (c *Connector) GetAccountBalance(ctx context.Context) ([]domain.Balance, error) {
	return c.rest.GetAccountBalance(ctx)
}

func (c *Connector) GetPositions(ctx context.Context) ([]domain.Position, error) {
	return c.rest.GetPositions(ctx)
}

func (c *Connector) GetFundingRates(ctx context.Context, symbols []domain.Symbol) ([]domain.FundingRate, error) {
	return c.rest.GetFundingRates(ctx, symbols)
}

func (c *Connector) GetAllFundingRates(ctx context.Context) ([]domain.FundingRate, error) {
	return c.rest.GetAllFundingRates(ctx)
}

func (c *Connector) GetFundingRateHistory(ctx context.Context, symbol domain.Symbol, start, end int64, limit int) ([]domain.FundingRate, error) {
	return c.rest.GetFundingRateHistory(ctx, symbol, start, end, limit)
}

func (c *Connector) SubscribeMarketData(ctx context.Context, symbols []domain.Symbol, types []domain.SubscriptionType) (<-chan domain.MarketDataType, error) {
	out := make(chan domain.MarketDataType, marketDataChanCapacity)
	var closed atomic.Bool

	c.ws.SetHandler(func(msg domain.MarketDataType) {
		if closed.Load() {
			return
		}
		select {
		case out <- msg:
		default:
		}
	})

	if !c.ws.IsConnected() {
		if err := c.ws.Connect(ctx); err != nil {
			return nil, err
		}
	}

	for _, sym := range symbols {
		for _, sub := range types {
			if err := c.ws.Subscribe(sub, sym); err != nil {
				return nil, err
			}
		}
	}

	go func() {
		<-ctx.Done()
		closed.Store(true)
		close(out)
		c.ws.Close()
	}()

	return out, nil
}

func (c *Connector) Close() error {
	c.rest.Close()
	return c.ws.Close()
}
