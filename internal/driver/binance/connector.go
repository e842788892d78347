package binance

import (
	"context"
	"sync/atomic"

	"github.com/exactkit/exact/pkg/config"
	"github.com/exactkit/exact/pkg/domain"
)

// marketDataChanCapacity bounds how far SubscribeMarketData's consumer can
// lag before updates are dropped rather than blocking the read loop.
const marketDataChanCapacity = 1000

// Connector composes the REST and WebSocket clients into the capability
// surface pkg/connector's factory expects. It embeds *RESTClient so
// GetMarkets, GetKlines, PlaceOrder, CancelOrder and GetAccountBalance
// (defined in trading.go) satisfy MarketDataSource/OrderPlacer/AccountInfo
// without being redeclared here.
type Connector struct {
	*RESTClient
	ws  *WSClient
	cfg config.ExchangeConfig
}

// NewConnector builds the Binance spot connector from venue-agnostic
// configuration.
func NewConnector(cfg config.ExchangeConfig) (*Connector, error) {
	rest, err := NewRESTClient(Config{
		BaseURL:   cfg.BaseURL,
		APIKey:    cfg.APIKey,
		APISecret: cfg.SecretKey.Expose(),
		Testnet:   cfg.Testnet,
	})
	if err != nil {
		return nil, err
	}

	wsCfg := DefaultWSConfig()
	wsCfg.Testnet = cfg.Testnet

	return &Connector{
		RESTClient: rest,
		ws:         NewWSClient(wsCfg),
		cfg:        cfg,
	}, nil
}

// GetWebSocketURL returns the combined-stream endpoint this connector dials.
func (c *Connector) GetWebSocketURL() string {
	return c.ws.wsBaseURL()
}

// GetPositions always returns an empty slice: Binance spot carries no
// margin or derivatives positions.
func (c *Connector) GetPositions(ctx context.Context) ([]domain.Position, error) {
	return []domain.Position{}, nil
}

// SubscribeMarketData dials (or reuses) the combined WebSocket stream for
// every (symbol, subscription) pair and decodes incoming frames onto the
// returned channel. The channel is buffered and lossy under backpressure: a
// slow consumer misses updates rather than stalling the connection's read
// loop.
func (c *Connector) SubscribeMarketData(ctx context.Context, symbols []domain.Symbol, types []domain.SubscriptionType) (<-chan domain.MarketDataType, error) {
	for _, sym := range symbols {
		for _, t := range types {
			stream := streamFor(t, sym)
			if stream == "" {
				continue
			}
			if err := c.ws.Subscribe(stream); err != nil {
				return nil, err
			}
		}
	}

	out := make(chan domain.MarketDataType, marketDataChanCapacity)
	var closed atomic.Bool
	send := func(v domain.MarketDataType) {
		if closed.Load() {
			return
		}
		select {
		case out <- v:
		default:
		}
	}

	c.ws.OnTicker(func(t *domain.Ticker) { send(domain.MarketDataType{Ticker: t}) })
	c.ws.OnOrderBook(func(ob *domain.OrderBook) { send(domain.MarketDataType{OrderBook: ob}) })
	c.ws.OnTrade(func(tr *domain.Trade) { send(domain.MarketDataType{Trade: tr}) })
	c.ws.OnKline(func(k *domain.Kline) { send(domain.MarketDataType{Kline: k}) })

	if !c.ws.IsConnected() {
		if err := c.ws.Connect(); err != nil {
			return nil, err
		}
	}

	go func() {
		<-ctx.Done()
		closed.Store(true)
		_ = c.ws.Close()
		close(out)
	}()

	return out, nil
}

// Close releases both the REST and WebSocket clients.
func (c *Connector) Close() error {
	c.RESTClient.Close()
	return c.ws.Close()
}
