package paradex

import (
	"strings"
	"time"

	"github.com/exactkit/exact/pkg/domain"
)

// paradexSymbol renders a domain.Symbol in Paradex's dash-separated
// perpetual market naming, e.g. "BTC-USD-PERP".
func paradexSymbol(s domain.Symbol) string {
	return s.Base + "-" + s.Quote + "-PERP"
}

// symbolFromParadex parses "BTC-USD-PERP" back into a domain.Symbol.
func symbolFromParadex(market string) domain.Symbol {
	parts := strings.Split(market, "-")
	if len(parts) >= 2 {
		return domain.NewSymbol(parts[0], parts[1])
	}
	return domain.NewSymbol(market, "")
}

func marketToDomain(m market) domain.Market {
	return domain.Market{
		Exchange:       exchange,
		Symbol:         domain.NewSymbol(m.BaseCurrency, m.QuoteCurrency),
		Status:         m.Status,
		BasePrecision:  decimalPlaces(m.OrderSizeIncrement),
		QuotePrecision: decimalPlaces(m.PriceTickSize),
		MinQuantity:    domain.StringToDecimal(m.MinOrderSize),
		MaxQuantity:    domain.StringToDecimal(m.MaxOrderSize),
		MinPrice:       domain.StringToDecimal(m.PriceTickSize),
	}
}

// decimalPlaces derives a decimal-places count from a step-size string
// like "0.001", matching the teacher's precisionOf convention for venues
// that report precision as a step rather than an integer.
func decimalPlaces(step string) int {
	for i, c := range step {
		if c == '.' {
			return len(step) - i - 1
		}
	}
	return 0
}

func klineRowToDomain(symbol domain.Symbol, interval string, row klineRow) domain.Kline {
	return domain.Kline{
		Exchange:  exchange,
		Symbol:    symbol.String(),
		Interval:  interval,
		OpenTime:  time.UnixMilli(row.OpenTime),
		CloseTime: time.UnixMilli(row.OpenTime),
		Open:      domain.StringToDecimal(row.Open),
		High:      domain.StringToDecimal(row.High),
		Low:       domain.StringToDecimal(row.Low),
		Close:     domain.StringToDecimal(row.Close),
		Volume:    domain.StringToDecimal(row.Volume),
		IsClosed:  true,
	}
}

func orderSideWire(s domain.OrderSide) string {
	if s == domain.OrderSideSell {
		return "SELL"
	}
	return "BUY"
}

func orderTypeWire(t domain.OrderType) string {
	if t == domain.OrderTypeMarket {
		return "MARKET"
	}
	return "LIMIT"
}

func orderSideFromWire(s string) domain.OrderSide {
	if s == "SELL" {
		return domain.OrderSideSell
	}
	return domain.OrderSideBuy
}

func orderTypeFromWire(t string) domain.OrderType {
	if t == "MARKET" {
		return domain.OrderTypeMarket
	}
	return domain.OrderTypeLimit
}

func orderStatusFromWire(s string) domain.OrderStatus {
	switch strings.ToUpper(s) {
	case "OPEN", "NEW":
		return domain.OrderStatusNew
	case "CLOSED", "FILLED":
		return domain.OrderStatusFilled
	case "CANCELLED", "CANCELED":
		return domain.OrderStatusCanceled
	case "REJECTED":
		return domain.OrderStatusRejected
	default:
		return domain.OrderStatusNew
	}
}

func orderResponseToDomain(resp orderResponse) *domain.Order {
	return &domain.Order{
		Exchange:      exchange,
		Symbol:        symbolFromParadex(resp.Market).String(),
		ID:            resp.ID,
		ClientOrderID: resp.ClientID,
		Side:          orderSideFromWire(resp.Side),
		Type:          orderTypeFromWire(resp.Type),
		Status:        orderStatusFromWire(resp.Status),
		Price:         domain.StringToDecimal(resp.Price),
		Quantity:      domain.StringToDecimal(resp.Size),
	}
}

func balanceEntryToDomain(b balanceEntry) domain.Balance {
	return domain.Balance{
		Exchange: exchange,
		Asset:    b.Token,
		Free:     domain.StringToDecimal(b.Available),
		Locked:   domain.Sub(domain.StringToDecimal(b.Total), domain.StringToDecimal(b.Available)),
	}
}

func positionEntryToDomain(p positionEntry) domain.Position {
	side := domain.PositionSideLong
	if strings.EqualFold(p.Side, "SHORT") {
		side = domain.PositionSideShort
	}
	return domain.Position{
		Exchange:         exchange,
		Symbol:           symbolFromParadex(p.Market),
		Side:             side,
		Size:             domain.StringToDecimal(p.Size),
		EntryPrice:       domain.StringToDecimal(p.AverageEntryPrice),
		MarkPrice:        domain.StringToDecimal(p.MarkPrice),
		UnrealizedPnL:    domain.StringToDecimal(p.UnrealizedPnl),
		Leverage:         domain.StringToDecimal(p.Leverage),
		LiquidationPrice: domain.StringToDecimal(p.LiquidationPrice),
		Timestamp:        time.Now(),
	}
}

func fundingDataEntryToDomain(f fundingDataEntry) domain.FundingRate {
	t := time.UnixMilli(f.CreatedAt)
	return domain.FundingRate{
		Exchange:    exchange,
		Symbol:      symbolFromParadex(f.Market),
		FundingRate: domain.StringToDecimal(f.FundingRate),
		MarkPrice:   domain.StringToDecimal(f.MarkPrice),
		IndexPrice:  domain.StringToDecimal(f.OraclePrice),
		Timestamp:   t,
	}
}

func wsTickerToDomain(symbol domain.Symbol, t wsTicker) *domain.Ticker {
	return &domain.Ticker{
		Exchange:           exchange,
		Symbol:             symbol.String(),
		BidPrice:           domain.StringToDecimal(t.BidPrice),
		BidQuantity:        domain.StringToDecimal(t.BidQuantity),
		AskPrice:           domain.StringToDecimal(t.AskPrice),
		AskQuantity:        domain.StringToDecimal(t.AskQuantity),
		LastPrice:          domain.StringToDecimal(t.LastPrice),
		HighPrice:          domain.StringToDecimal(t.HighPrice),
		LowPrice:           domain.StringToDecimal(t.LowPrice),
		Volume:             domain.StringToDecimal(t.Volume),
		QuoteVolume:        domain.StringToDecimal(t.QuoteVolume),
		PriceChangePercent: domain.StringToDecimal(t.PriceChangePercent),
		Timestamp:          time.Now(),
	}
}

func wsOrderBookToDomain(symbol domain.Symbol, ob wsOrderBook) *domain.OrderBook {
	toLevels := func(raw []wsOrderBookLevel) []domain.OrderBookLevel {
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
		LastUpdateID: ob.LastUpdateID,
		Timestamp:    time.Now(),
	}
}

func wsTradeToDomain(symbol domain.Symbol, t wsTrade) *domain.Trade {
	side := domain.OrderSideBuy
	if t.Side == "SELL" {
		side = domain.OrderSideSell
	}
	return &domain.Trade{
		Exchange:  exchange,
		Symbol:    symbol.String(),
		ID:        t.ID,
		Price:     domain.StringToDecimal(t.Price),
		Quantity:  domain.StringToDecimal(t.Size),
		Side:      side,
		Timestamp: time.UnixMilli(t.Timestamp),
	}
}

func wsKlineToDomain(symbol domain.Symbol, interval string, k wsKline) *domain.Kline {
	return &domain.Kline{
		Exchange:  exchange,
		Symbol:    symbol.String(),
		Interval:  interval,
		OpenTime:  time.UnixMilli(k.OpenTime),
		CloseTime: time.UnixMilli(k.CloseTime),
		Open:      domain.StringToDecimal(k.Open),
		High:      domain.StringToDecimal(k.High),
		Low:       domain.StringToDecimal(k.Low),
		Close:     domain.StringToDecimal(k.Close),
		Volume:    domain.StringToDecimal(k.Volume),
		IsClosed:  k.Final,
	}
}

func paradexInterval(i domain.KlineInterval) string {
	return string(i)
}
