package backpack

import (
	"strconv"
	"strings"
	"time"

	"github.com/exactkit/exact/pkg/domain"
)

func symbolWire(s domain.Symbol) string {
	return s.Base + "_" + s.Quote
}

func symbolFromWire(sym string) domain.Symbol {
	base, quote, ok := strings.Cut(sym, "_")
	if !ok {
		return domain.NewSymbol(sym, "")
	}
	return domain.NewSymbol(base, quote)
}

func marketToDomain(m market) domain.Market {
	out := domain.Market{
		Exchange:       exchange,
		Symbol:         domain.NewSymbol(m.BaseSymbol, m.QuoteSymbol),
		Status:         m.OrderBookState,
		BasePrecision:  8,
		QuotePrecision: 8,
	}
	if m.Filters != nil {
		if m.Filters.Quantity != nil {
			out.MinQuantity = domain.StringToDecimal(m.Filters.Quantity.MinQuantity)
			out.MaxQuantity = domain.StringToDecimal(m.Filters.Quantity.MaxQuantity)
		}
		if m.Filters.Price != nil {
			out.MinPrice = domain.StringToDecimal(m.Filters.Price.MinPrice)
			out.MaxPrice = domain.StringToDecimal(m.Filters.Price.MaxPrice)
		}
	}
	return out
}

func klineResponseToDomain(symbol domain.Symbol, interval string, k klineResponse) domain.Kline {
	startSec, _ := strconv.ParseInt(k.Start, 10, 64)
	endSec, _ := strconv.ParseInt(k.End, 10, 64)
	trades, _ := strconv.ParseInt(k.Trades, 10, 64)
	return domain.Kline{
		Exchange:   exchange,
		Symbol:     symbol.String(),
		Interval:   interval,
		OpenTime:   time.Unix(startSec, 0),
		CloseTime:  time.Unix(endSec, 0),
		Open:       domain.StringToDecimal(k.Open),
		High:       domain.StringToDecimal(k.High),
		Low:        domain.StringToDecimal(k.Low),
		Close:      domain.StringToDecimal(k.Close),
		Volume:     domain.StringToDecimal(k.Volume),
		TradeCount: trades,
		IsClosed:   true,
	}
}

func tickerResponseToDomain(t tickerResponse) *domain.Ticker {
	return &domain.Ticker{
		Exchange:           exchange,
		Symbol:             symbolFromWire(t.Symbol).String(),
		LastPrice:          domain.StringToDecimal(t.LastPrice),
		PriceChange:        domain.StringToDecimal(t.PriceChange),
		PriceChangePercent: domain.StringToDecimal(t.PriceChangePercent),
		HighPrice:          domain.StringToDecimal(t.High),
		LowPrice:           domain.StringToDecimal(t.Low),
		Volume:             domain.StringToDecimal(t.Volume),
		QuoteVolume:        domain.StringToDecimal(t.QuoteVolume),
		Timestamp:          time.Now(),
	}
}

func depthResponseToDomain(symbol domain.Symbol, d depthResponse) *domain.OrderBook {
	lastUpdate, _ := strconv.ParseInt(d.LastUpdateID, 10, 64)
	return &domain.OrderBook{
		Exchange:     exchange,
		Symbol:       symbol.String(),
		Bids:         levelsFromWire(d.Bids),
		Asks:         levelsFromWire(d.Asks),
		LastUpdateID: lastUpdate,
		Timestamp:    time.Now(),
	}
}

func levelsFromWire(raw [][2]string) []domain.OrderBookLevel {
	out := make([]domain.OrderBookLevel, 0, len(raw))
	for _, lvl := range raw {
		out = append(out, domain.OrderBookLevel{
			Price:    domain.StringToDecimal(lvl[0]),
			Quantity: domain.StringToDecimal(lvl[1]),
		})
	}
	return out
}

func markPriceToFundingRate(m markPrice) domain.FundingRate {
	var next *time.Time
	if m.NextFundingTimestamp > 0 {
		n := time.UnixMilli(m.NextFundingTimestamp)
		next = &n
	}
	return domain.FundingRate{
		Exchange:        exchange,
		Symbol:          symbolFromWire(m.Symbol),
		FundingRate:     domain.StringToDecimal(m.FundingRate),
		MarkPrice:       domain.StringToDecimal(m.MarkPrice),
		IndexPrice:      domain.StringToDecimal(m.IndexPrice),
		NextFundingTime: next,
		Timestamp:       time.Now(),
	}
}

func fundingRateEntryToDomain(f fundingRateEntry) domain.FundingRate {
	t := time.UnixMilli(f.IntervalEndTimestamp)
	return domain.FundingRate{
		Exchange:    exchange,
		Symbol:      symbolFromWire(f.Symbol),
		FundingRate: domain.StringToDecimal(f.FundingRate),
		FundingTime: &t,
		Timestamp:   time.Now(),
	}
}

func positionToDomain(p position) domain.Position {
	side := domain.PositionSideFlat
	switch p.PositionSide {
	case "Long":
		side = domain.PositionSideLong
	case "Short":
		side = domain.PositionSideShort
	}
	return domain.Position{
		Exchange:         exchange,
		Symbol:           symbolFromWire(p.Symbol),
		Side:             side,
		Size:             domain.StringToDecimal(p.NetQuantity),
		EntryPrice:       domain.StringToDecimal(p.EntryPrice),
		MarkPrice:        domain.StringToDecimal(p.MarkPrice),
		UnrealizedPnL:    domain.StringToDecimal(p.PnlUnrealized),
		LiquidationPrice: domain.StringToDecimal(p.LiquidationPrice),
		Timestamp:        time.Now(),
	}
}

func orderResponseToDomain(req domain.OrderRequest, o orderResponse) *domain.Order {
	return &domain.Order{
		Exchange: exchange,
		Symbol:   req.Symbol,
		ID:       o.ID,
		Side:     req.Side,
		Type:     req.Type,
		Status:   orderStatusFromWire(o.Status),
		Price:    req.Price,
		Quantity: req.Quantity,
	}
}

func orderStatusFromWire(s string) domain.OrderStatus {
	switch s {
	case "Filled":
		return domain.OrderStatusFilled
	case "PartiallyFilled":
		return domain.OrderStatusPartiallyFilled
	case "Cancelled":
		return domain.OrderStatusCanceled
	case "Expired":
		return domain.OrderStatusExpired
	default:
		return domain.OrderStatusNew
	}
}

func orderSideWire(s domain.OrderSide) string {
	if s == domain.OrderSideSell {
		return "Ask"
	}
	return "Bid"
}

func orderTypeWire(t domain.OrderType) string {
	switch t {
	case domain.OrderTypeMarket:
		return "Market"
	default:
		return "Limit"
	}
}

func wsTickerToDomain(t wsTicker) *domain.Ticker {
	return &domain.Ticker{
		Exchange:    exchange,
		Symbol:      symbolFromWire(t.Symbol).String(),
		LastPrice:   domain.StringToDecimal(t.Close),
		HighPrice:   domain.StringToDecimal(t.High),
		LowPrice:    domain.StringToDecimal(t.Low),
		Volume:      domain.StringToDecimal(t.Volume),
		QuoteVolume: domain.StringToDecimal(t.QuoteVolume),
		OpenPrice:   domain.StringToDecimal(t.Open),
		Timestamp:   time.UnixMicro(t.Time),
	}
}

func wsTradeToDomain(t wsTrade) *domain.Trade {
	side := domain.OrderSideBuy
	if t.IsBuyerMaker {
		side = domain.OrderSideSell
	}
	return &domain.Trade{
		Exchange:  exchange,
		Symbol:    symbolFromWire(t.Symbol).String(),
		ID:        strconv.FormatInt(t.TradeID, 10),
		Price:     domain.StringToDecimal(t.Price),
		Quantity:  domain.StringToDecimal(t.Quantity),
		Side:      side,
		Timestamp: time.UnixMicro(t.Timestamp),
	}
}

func wsKlineToDomain(k wsKline, interval string) *domain.Kline {
	return &domain.Kline{
		Exchange:   exchange,
		Symbol:     symbolFromWire(k.Symbol).String(),
		Interval:   interval,
		OpenTime:   time.UnixMilli(k.Start),
		CloseTime:  time.UnixMilli(k.End),
		Open:       domain.StringToDecimal(k.Open),
		High:       domain.StringToDecimal(k.High),
		Low:        domain.StringToDecimal(k.Low),
		Close:      domain.StringToDecimal(k.Close),
		Volume:     domain.StringToDecimal(k.Volume),
		TradeCount: k.Trades,
		IsClosed:   k.IsClosed,
	}
}

func wsDepthToDomain(d wsDepth) *domain.OrderBook {
	return &domain.OrderBook{
		Exchange:     exchange,
		Symbol:       symbolFromWire(d.Symbol).String(),
		Bids:         levelsFromWire(d.Bids),
		Asks:         levelsFromWire(d.Asks),
		LastUpdateID: d.LastUpdateID,
		Timestamp:    time.UnixMicro(d.Timestamp),
	}
}

func wsMarkPriceToFundingRate(m wsMarkPrice) domain.FundingRate {
	var next *time.Time
	if m.NextFundingTimestamp > 0 {
		n := time.UnixMicro(m.NextFundingTimestamp)
		next = &n
	}
	return domain.FundingRate{
		Exchange:        exchange,
		Symbol:          symbolFromWire(m.Symbol),
		FundingRate:     domain.StringToDecimal(m.FundingRate),
		MarkPrice:       domain.StringToDecimal(m.MarkPrice),
		IndexPrice:      domain.StringToDecimal(m.IndexPrice),
		NextFundingTime: next,
		Timestamp:       time.UnixMicro(m.Time),
	}
}

func bpInterval(i domain.KlineInterval) string {
	switch i {
	case domain.Interval1m:
		return "1m"
	case domain.Interval3m:
		return "3m"
	case domain.Interval5m:
		return "5m"
	case domain.Interval15m:
		return "15m"
	case domain.Interval30m:
		return "30m"
	case domain.Interval1h:
		return "1h"
	case domain.Interval2h:
		return "2h"
	case domain.Interval4h:
		return "4h"
	case domain.Interval6h:
		return "6h"
	case domain.Interval8h:
		return "8h"
	case domain.Interval12h:
		return "12h"
	case domain.Interval1d:
		return "1d"
	case domain.Interval3d:
		return "3d"
	case domain.Interval1w:
		return "1w"
	case domain.Interval1M:
		return "1month"
	default:
		return "1m"
	}
}
