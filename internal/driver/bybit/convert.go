package bybit

import (
	"strconv"
	"time"

	"github.com/exactkit/exact/pkg/domain"
)

func instrumentToMarket(in instrument) domain.Market {
	return domain.Market{
		Exchange:       exchange,
		Symbol:         domain.NewSymbol(in.BaseCoin, in.QuoteCoin),
		Status:         in.Status,
		MinQuantity:    domain.StringToDecimal(in.LotSizeFilter.MinOrderQty),
		MaxQuantity:    domain.StringToDecimal(in.LotSizeFilter.MaxOrderQty),
		MinPrice:       domain.StringToDecimal(in.PriceFilter.TickSize),
		BasePrecision:  precisionOf(in.LotSizeFilter.BasePrecision),
		QuotePrecision: 8,
	}
}

// precisionOf derives a decimal-places count from a step-size string like
// "0.001" since Bybit reports precision as a step rather than an integer.
func precisionOf(step string) int {
	for i, c := range step {
		if c == '.' {
			return len(step) - i - 1
		}
	}
	return 0
}

func klineRowToDomain(symbol domain.Symbol, interval string, row [7]string) domain.Kline {
	startMs, _ := strconv.ParseInt(row[0], 10, 64)
	return domain.Kline{
		Exchange:  exchange,
		Symbol:    symbol.String(),
		Interval:  interval,
		OpenTime:  time.UnixMilli(startMs),
		CloseTime: time.UnixMilli(startMs),
		Open:      domain.StringToDecimal(row[1]),
		High:      domain.StringToDecimal(row[2]),
		Low:       domain.StringToDecimal(row[3]),
		Close:     domain.StringToDecimal(row[4]),
		Volume:    domain.StringToDecimal(row[5]),
		QuoteVolume: domain.StringToDecimal(row[6]),
		IsClosed:  true,
	}
}

func wsTickerToDomain(symbol domain.Symbol, t wsTicker) *domain.Ticker {
	return &domain.Ticker{
		Exchange:    exchange,
		Symbol:      symbol.String(),
		BidPrice:    domain.StringToDecimal(t.Bid1Price),
		BidQuantity: domain.StringToDecimal(t.Bid1Size),
		AskPrice:    domain.StringToDecimal(t.Ask1Price),
		AskQuantity: domain.StringToDecimal(t.Ask1Size),
		HighPrice:   domain.StringToDecimal(t.HighPrice24h),
		LowPrice:    domain.StringToDecimal(t.LowPrice24h),
		Volume:      domain.StringToDecimal(t.Volume24h),
		QuoteVolume: domain.StringToDecimal(t.Turnover24h),
		Timestamp:   time.Now(),
	}
}

func wsTradeToDomain(symbol domain.Symbol, t wsTrade) *domain.Trade {
	side := domain.OrderSideBuy
	if t.Side == "Sell" {
		side = domain.OrderSideSell
	}
	return &domain.Trade{
		Exchange:  exchange,
		Symbol:    symbol.String(),
		ID:        t.ID,
		Price:     domain.StringToDecimal(t.Price),
		Quantity:  domain.StringToDecimal(t.Size),
		Side:      side,
		Timestamp: time.UnixMilli(t.Time),
	}
}

func wsKlineToDomain(symbol domain.Symbol, interval string, k wsKline) *domain.Kline {
	return &domain.Kline{
		Exchange:  exchange,
		Symbol:    symbol.String(),
		Interval:  interval,
		OpenTime:  time.UnixMilli(k.Start),
		CloseTime: time.UnixMilli(k.End),
		Open:      domain.StringToDecimal(k.Open),
		High:      domain.StringToDecimal(k.High),
		Low:       domain.StringToDecimal(k.Low),
		Close:     domain.StringToDecimal(k.Close),
		Volume:    domain.StringToDecimal(k.Volume),
		IsClosed:  k.Confirm,
	}
}

func wsOrderBookToDomain(symbol domain.Symbol, ob wsOrderBook) *domain.OrderBook {
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
		Bids:         toLevels(ob.Bids),
		Asks:         toLevels(ob.Asks),
		LastUpdateID: ob.UpdateID,
		Timestamp:    time.Now(),
	}
}

func orderSideWire(s domain.OrderSide) string {
	if s == domain.OrderSideSell {
		return "Sell"
	}
	return "Buy"
}

func orderTypeWire(t domain.OrderType) string {
	switch t {
	case domain.OrderTypeMarket:
		return "Market"
	case domain.OrderTypeStopLoss:
		return "StopMarket"
	case domain.OrderTypeStopLossLimit:
		return "StopLimit"
	case domain.OrderTypeTakeProfit:
		return "TakeProfit"
	case domain.OrderTypeTakeProfitLimit:
		return "TakeProfitLimit"
	default:
		return "Limit"
	}
}

func bybitInterval(i domain.KlineInterval) string {
	switch i {
	case domain.Interval1m:
		return "1"
	case domain.Interval3m:
		return "3"
	case domain.Interval5m:
		return "5"
	case domain.Interval15m:
		return "15"
	case domain.Interval30m:
		return "30"
	case domain.Interval1h:
		return "60"
	case domain.Interval2h:
		return "120"
	case domain.Interval4h:
		return "240"
	case domain.Interval6h:
		return "360"
	case domain.Interval8h:
		return "480"
	case domain.Interval12h:
		return "720"
	case domain.Interval1d:
		return "D"
	case domain.Interval3d:
		return "3D"
	case domain.Interval1w:
		return "W"
	case domain.Interval1M:
		return "M"
	default:
		return "1"
	}
}
