// Package connector defines the capability traits every venue driver
// exposes and the configuration/factory surface callers use to build one.
package connector

import (
	"context"

	"github.com/exactkit/exact/pkg/domain"
)

// MarketDataSource is implemented by every venue; it is the minimal
// surface a caller needs to discover instruments and stream market data.
type MarketDataSource interface {
	// GetMarkets returns the venue's tradable instruments.
	GetMarkets(ctx context.Context) ([]domain.Market, error)

	// GetKlines returns historical candles for symbol at interval.
	// start/end are Unix milliseconds; zero means unbounded.
	GetKlines(ctx context.Context, symbol domain.Symbol, interval domain.KlineInterval, limit int, start, end int64) ([]domain.Kline, error)

	// SubscribeMarketData opens (or reuses) a WebSocket session and
	// streams decoded events for every (symbol, subscription) pair onto
	// the returned channel. The channel is closed when ctx is canceled.
	SubscribeMarketData(ctx context.Context, symbols []domain.Symbol, types []domain.SubscriptionType) (<-chan domain.MarketDataType, error)

	// GetWebSocketURL returns the venue's public market-data WS endpoint,
	// for callers that want to inspect or log it.
	GetWebSocketURL() string
}

// OrderPlacer is implemented by venues that accept trading requests.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error)
	CancelOrder(ctx context.Context, symbol domain.Symbol, orderID string) error
}

// AccountInfo is implemented by venues that expose authenticated account
// state.
type AccountInfo interface {
	GetAccountBalance(ctx context.Context) ([]domain.Balance, error)
	GetPositions(ctx context.Context) ([]domain.Position, error)
}

// FundingRateSource is implemented only by perpetual-futures venues; spot
// venues (Binance spot, Bybit spot) do not implement it.
type FundingRateSource interface {
	GetFundingRates(ctx context.Context, symbols []domain.Symbol) ([]domain.FundingRate, error)
	GetAllFundingRates(ctx context.Context) ([]domain.FundingRate, error)
	GetFundingRateHistory(ctx context.Context, symbol domain.Symbol, start, end int64, limit int) ([]domain.FundingRate, error)
}
