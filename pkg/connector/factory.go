package connector

import (
	"fmt"

	"github.com/exactkit/exact/internal/driver/backpack"
	"github.com/exactkit/exact/internal/driver/binance"
	"github.com/exactkit/exact/internal/driver/binanceperp"
	"github.com/exactkit/exact/internal/driver/bybit"
	"github.com/exactkit/exact/internal/driver/bybitperp"
	"github.com/exactkit/exact/internal/driver/hyperliquid"
	"github.com/exactkit/exact/internal/driver/okx"
	"github.com/exactkit/exact/internal/driver/paradex"
)

// Venue names accepted by New.
const (
	Binance     = "binance"
	BinancePerp = "binance-perp"
	Bybit       = "bybit"
	BybitPerp   = "bybit-perp"
	Backpack    = "backpack"
	Hyperliquid = "hyperliquid"
	Paradex     = "paradex"
	OKX         = "okx"
)

// New builds the connector for venue. The concrete return value always
// implements MarketDataSource; callers type-assert to OrderPlacer,
// AccountInfo, or FundingRateSource to discover what else the venue
// supports, since not every venue implements every capability (spot
// venues don't implement FundingRateSource, for instance).
func New(venue string, cfg ExchangeConfig) (any, error) {
	switch venue {
	case Binance:
		return binance.NewConnector(cfg)
	case BinancePerp:
		return binanceperp.NewConnector(cfg)
	case Bybit:
		return bybit.NewConnector(cfg)
	case BybitPerp:
		return bybitperp.NewConnector(cfg)
	case Backpack:
		return backpack.NewConnector(cfg)
	case Hyperliquid:
		return hyperliquid.NewConnector(cfg)
	case Paradex:
		return paradex.NewConnector(cfg)
	case OKX:
		return okx.NewConnector(cfg)
	default:
		return nil, fmt.Errorf("connector: unknown venue %q", venue)
	}
}
