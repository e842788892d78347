package binanceperp

import (
	"strconv"
	"time"

	"github.com/exactkit/exact/pkg/domain"
)

func symbolInfoToMarket(s symbolInfo) domain.Market {
	m := domain.Market{
		Exchange:       exchange,
		Symbol:         domain.Symbol{Base: s.BaseAsset, Quote: s.QuoteAsset},
		Status:         s.Status,
		BasePrecision:  s.QuantityPrecision,
		QuotePrecision: s.PricePrecision,
	}
	for _, f := range s.Filters {
		kind, _ := f["filterType"].(string)
		switch kind {
		case "LOT_SIZE":
			if v, ok := f["minQty"].(string); ok {
				m.MinQuantity = domain.StringToDecimal(v)
			}
			if v, ok := f["maxQty"].(string); ok {
				m.MaxQuantity = domain.StringToDecimal(v)
			}
		case "PRICE_FILTER":
			if v, ok := f["minPrice"].(string); ok {
				m.MinPrice = domain.StringToDecimal(v)
			}
			if v, ok := f["maxPrice"].(string); ok {
				m.MaxPrice = domain.StringToDecimal(v)
			}
		}
	}
	return m
}

func wireKlineToDomain(symbol domain.Symbol, interval string, k wireKline) domain.Kline {
	str := func(v any) string { s, _ := v.(string); return s }
	num := func(v any) int64 { f, _ := v.(float64); return int64(f) }
	return domain.Kline{
		Exchange:    exchange,
		Symbol:      symbol.String(),
		Interval:    interval,
		OpenTime:    time.UnixMilli(num(k[0])),
		CloseTime:   time.UnixMilli(num(k[6])),
		Open:        domain.StringToDecimal(str(k[1])),
		High:        domain.StringToDecimal(str(k[2])),
		Low:         domain.StringToDecimal(str(k[3])),
		Close:       domain.StringToDecimal(str(k[4])),
		Volume:      domain.StringToDecimal(str(k[5])),
		QuoteVolume: domain.StringToDecimal(str(k[7])),
		TradeCount:  num(k[8]),
		IsClosed:    true,
	}
}

func orderTypeWire(t domain.OrderType) string {
	switch t {
	case domain.OrderTypeMarket:
		return "MARKET"
	case domain.OrderTypeStopLoss:
		return "STOP_MARKET"
	case domain.OrderTypeStopLossLimit:
		return "STOP"
	case domain.OrderTypeTakeProfit:
		return "TAKE_PROFIT_MARKET"
	case domain.OrderTypeTakeProfitLimit:
		return "TAKE_PROFIT"
	default:
		return "LIMIT"
	}
}

func (r *orderResponse) toDomain() *domain.Order {
	return &domain.Order{
		Exchange:       exchange,
		Symbol:         domain.NormalizeSymbol(r.Symbol),
		ID:             strconv.FormatInt(r.OrderID, 10),
		ClientOrderID:  r.ClientOrderID,
		Side:           domain.OrderSide(r.Side),
		Type:           domain.OrderType(r.Type),
		Status:         wireStatusToDomain(r.Status),
		Price:          domain.StringToDecimal(r.Price),
		Quantity:       domain.StringToDecimal(r.OrigQty),
		FilledQuantity: domain.StringToDecimal(r.ExecutedQty),
		CreatedAt:      time.UnixMilli(r.UpdateTime),
		UpdatedAt:      time.UnixMilli(r.UpdateTime),
	}
}

func wireStatusToDomain(s string) domain.OrderStatus {
	switch s {
	case "NEW":
		return domain.OrderStatusNew
	case "PARTIALLY_FILLED":
		return domain.OrderStatusPartiallyFilled
	case "FILLED":
		return domain.OrderStatusFilled
	case "CANCELED":
		return domain.OrderStatusCanceled
	case "PENDING_CANCEL":
		return domain.OrderStatusCanceling
	case "REJECTED":
		return domain.OrderStatusRejected
	case "EXPIRED":
		return domain.OrderStatusExpired
	default:
		return domain.OrderStatusNew
	}
}

func positionRiskToDomain(p positionRisk) domain.Position {
	amt := domain.StringToDecimal(p.PositionAmt)
	side := domain.PositionSideFlat
	if !domain.IsZero(amt) {
		if amt.Sign() > 0 {
			side = domain.PositionSideLong
		} else {
			side = domain.PositionSideShort
		}
	}
	return domain.Position{
		Exchange:         exchange,
		Symbol:           domain.NewSymbol(domain.NormalizeSymbol(p.Symbol), ""),
		Side:             side,
		Size:             amt,
		EntryPrice:       domain.StringToDecimal(p.EntryPrice),
		MarkPrice:        domain.StringToDecimal(p.MarkPrice),
		UnrealizedPnL:    domain.StringToDecimal(p.UnRealizedProfit),
		Leverage:         domain.StringToDecimal(p.Leverage),
		LiquidationPrice: domain.StringToDecimal(p.LiquidationPrice),
		Timestamp:        time.Now(),
	}
}

func premiumIndexToFundingRate(p premiumIndex) domain.FundingRate {
	next := time.UnixMilli(p.NextFundingTime)
	return domain.FundingRate{
		Exchange:        exchange,
		Symbol:          domain.NewSymbol(domain.NormalizeSymbol(p.Symbol), ""),
		FundingRate:     domain.StringToDecimal(p.LastFundingRate),
		MarkPrice:       domain.StringToDecimal(p.MarkPrice),
		IndexPrice:      domain.StringToDecimal(p.IndexPrice),
		NextFundingTime: &next,
		Timestamp:       time.Now(),
	}
}

func fundingRateEntryToDomain(symbol domain.Symbol, e fundingRateEntry) domain.FundingRate {
	t := time.UnixMilli(e.FundingTime)
	return domain.FundingRate{
		Exchange:    exchange,
		Symbol:      symbol,
		FundingRate: domain.StringToDecimal(e.FundingRate),
		FundingTime: &t,
		Timestamp:   time.Now(),
	}
}

func wsTickerToDomain(symbol domain.Symbol, t wsTicker) *domain.Ticker {
	return &domain.Ticker{
		Exchange:    exchange,
		Symbol:      symbol.String(),
		BidPrice:    domain.StringToDecimal(t.BidPrice),
		BidQuantity: domain.StringToDecimal(t.BidQty),
		AskPrice:    domain.StringToDecimal(t.AskPrice),
		AskQuantity: domain.StringToDecimal(t.AskQty),
		HighPrice:   domain.StringToDecimal(t.HighPrice),
		LowPrice:    domain.StringToDecimal(t.LowPrice),
		Volume:      domain.StringToDecimal(t.Volume),
		QuoteVolume: domain.StringToDecimal(t.QuoteVolume),
		Timestamp:   time.UnixMilli(t.EventTime),
	}
}

func wsAggTradeToDomain(symbol domain.Symbol, t wsAggTrade) *domain.Trade {
	side := domain.OrderSideBuy
	if t.IsBuyerMM {
		side = domain.OrderSideSell
	}
	return &domain.Trade{
		Exchange:  exchange,
		Symbol:    symbol.String(),
		ID:        strconv.FormatInt(t.TradeID, 10),
		Price:     domain.StringToDecimal(t.Price),
		Quantity:  domain.StringToDecimal(t.Quantity),
		Side:      side,
		Timestamp: time.UnixMilli(t.TradeTime),
	}
}

func wsKlineToDomain(symbol domain.Symbol, k wsKline) *domain.Kline {
	p := k.Kline
	return &domain.Kline{
		Exchange:  exchange,
		Symbol:    symbol.String(),
		Interval:  p.Interval,
		OpenTime:  time.UnixMilli(p.StartTime),
		CloseTime: time.UnixMilli(p.EndTime),
		Open:      domain.StringToDecimal(p.Open),
		High:      domain.StringToDecimal(p.High),
		Low:       domain.StringToDecimal(p.Low),
		Close:     domain.StringToDecimal(p.Close),
		Volume:    domain.StringToDecimal(p.Volume),
		QuoteVolume: domain.StringToDecimal(p.QuoteVol),
		IsClosed:  p.IsClosed,
	}
}

func wsDepthToDomain(symbol domain.Symbol, d wsDepthUpdate) *domain.OrderBook {
	toLevels := func(raw [][2]string) []domain.OrderBookLevel {
		out := make([]domain.OrderBookLevel, 0, len(raw))
		for _, lvl := range raw {
			out = append(out, domain.OrderBookLevel{
				Price:    domain.StringToDecimal(lvl[0]),
				Quantity: domain.StringToDecimal(lvl[1]),
			})
		}
		return out
	}
	return &domain.OrderBook{
		Exchange:     exchange,
		Symbol:       symbol.String(),
		Bids:         toLevels(d.Bids),
		Asks:         toLevels(d.Asks),
		LastUpdateID: d.FinalUpdateID,
		Timestamp:    time.UnixMilli(d.EventTime),
	}
}

func wsMarkPriceToFundingRate(symbol domain.Symbol, m wsMarkPrice) *domain.FundingRate {
	next := time.UnixMilli(m.NextFundingTime)
	return &domain.FundingRate{
		Exchange:        exchange,
		Symbol:          symbol,
		FundingRate:     domain.StringToDecimal(m.FundingRate),
		MarkPrice:       domain.StringToDecimal(m.MarkPrice),
		IndexPrice:      domain.StringToDecimal(m.IndexPrice),
		NextFundingTime: &next,
		Timestamp:       time.UnixMilli(m.EventTime),
	}
}

func binanceInterval(i domain.KlineInterval) string {
	switch i {
	case domain.Interval1w:
		return "1w"
	case domain.Interval1M:
		return "1M"
	default:
		return string(i)
	}
}
