package okx

import (
	"strconv"
	"strings"
	"time"

	"github.com/exactkit/exact/pkg/domain"
)

// okxInstID renders a domain.Symbol in OKX's dash-separated instrument ID
// format, e.g. "BTC-USDT".
func okxInstID(s domain.Symbol) string {
	return s.Base + "-" + s.Quote
}

// symbolFromInstID parses "BTC-USDT" back into a domain.Symbol.
func symbolFromInstID(instID string) domain.Symbol {
	parts := strings.SplitN(instID, "-", 2)
	if len(parts) == 2 {
		return domain.NewSymbol(parts[0], parts[1])
	}
	return domain.NewSymbol(instID, "")
}

// okxBar maps a domain.KlineInterval to OKX's candle bar format: minute
// and second bars stay lowercase, hour/day/week/month bars are uppercase.
func okxBar(i domain.KlineInterval) string {
	switch i {
	case domain.Interval1s:
		return "1s"
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
		return "1H"
	case domain.Interval2h:
		return "2H"
	case domain.Interval4h:
		return "4H"
	case domain.Interval6h:
		return "6H"
	case domain.Interval8h:
		return "8H"
	case domain.Interval12h:
		return "12H"
	case domain.Interval1d:
		return "1D"
	case domain.Interval3d:
		return "3D"
	case domain.Interval1w:
		return "1W"
	case domain.Interval1M:
		return "1M"
	default:
		return "1m"
	}
}

// decimalPlaces derives a decimal-places count from a step-size string
// like "0.001"; OKX reports both tick size and lot size this way.
func decimalPlaces(step string) int {
	for i, c := range step {
		if c == '.' {
			return len(step) - i - 1
		}
	}
	return 0
}

func instrumentToDomain(in instrument) domain.Market {
	return domain.Market{
		Exchange:       exchange,
		Symbol:         domain.NewSymbol(in.BaseCcy, in.QuoteCcy),
		Status:         in.State,
		BasePrecision:  decimalPlaces(in.LotSz),
		QuotePrecision: decimalPlaces(in.TickSz),
		MinQuantity:    domain.StringToDecimal(in.MinSz),
		MinPrice:       domain.StringToDecimal(in.TickSz),
	}
}

func tickerToDomain(t ticker) *domain.Ticker {
	last := domain.StringToDecimal(t.Last)
	open := domain.StringToDecimal(t.Open24h)
	change := domain.Sub(last, open)
	symbol := symbolFromInstID(t.InstID)
	return &domain.Ticker{
		Exchange:           exchange,
		Symbol:             symbol.String(),
		BidPrice:           domain.StringToDecimal(t.BidPx),
		BidQuantity:        domain.StringToDecimal(t.BidSz),
		AskPrice:           domain.StringToDecimal(t.AskPx),
		AskQuantity:        domain.StringToDecimal(t.AskSz),
		LastPrice:          last,
		HighPrice:          domain.StringToDecimal(t.High24h),
		LowPrice:           domain.StringToDecimal(t.Low24h),
		Volume:             domain.StringToDecimal(t.Vol24h),
		QuoteVolume:        domain.StringToDecimal(t.VolCcy24h),
		OpenPrice:          open,
		PriceChange:        change,
		Timestamp:          tsToTime(t.Ts),
	}
}

func orderBookToDomain(symbol domain.Symbol, ob orderBook) *domain.OrderBook {
	return &domain.OrderBook{
		Exchange:  exchange,
		Symbol:    symbol.String(),
		Bids:      levelsFromRows(ob.Bids),
		Asks:      levelsFromRows(ob.Asks),
		Timestamp: tsToTime(ob.Ts),
	}
}

func levelsFromRows(rows [][]string) []domain.OrderBookLevel {
	out := make([]domain.OrderBookLevel, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		out = append(out, domain.OrderBookLevel{
			Price:    domain.StringToDecimal(row[0]),
			Quantity: domain.StringToDecimal(row[1]),
		})
	}
	return out
}

func tradeToDomain(t trade) *domain.Trade {
	side := domain.OrderSideBuy
	if t.Side == "sell" {
		side = domain.OrderSideSell
	}
	symbol := symbolFromInstID(t.InstID)
	return &domain.Trade{
		Exchange:  exchange,
		Symbol:    symbol.String(),
		ID:        t.TradeID,
		Price:     domain.StringToDecimal(t.Px),
		Quantity:  domain.StringToDecimal(t.Sz),
		Side:      side,
		Timestamp: tsToTime(t.Ts),
	}
}

// candleToDomain reads OKX's raw [ts,o,h,l,c,vol,volCcy,volCcyQuote,confirm]
// array by index, matching the original client's defensive row parsing
// rather than trusting a named-field candle object OKX never actually sends.
func candleToDomain(symbol domain.Symbol, interval string, row [9]string) domain.Kline {
	openTime := tsToTime(row[0])
	return domain.Kline{
		Exchange:  exchange,
		Symbol:    symbol.String(),
		Interval:  interval,
		OpenTime:  openTime,
		CloseTime: openTime,
		Open:      domain.StringToDecimal(row[1]),
		High:      domain.StringToDecimal(row[2]),
		Low:       domain.StringToDecimal(row[3]),
		Close:     domain.StringToDecimal(row[4]),
		Volume:    domain.StringToDecimal(row[5]),
		IsClosed:  row[8] == "1",
	}
}

func orderSideWire(s domain.OrderSide) string {
	if s == domain.OrderSideSell {
		return "sell"
	}
	return "buy"
}

// orderTypeWire folds the requested time-in-force into OKX's ordType, the
// same way the original client encodes IOC/FOK/post-only as distinct order
// types rather than a separate field.
func orderTypeWire(t domain.OrderType, timeInForce string) string {
	if t == domain.OrderTypeMarket {
		return "market"
	}
	switch strings.ToUpper(timeInForce) {
	case "IOC":
		return "ioc"
	case "FOK":
		return "fok"
	case "POST_ONLY", "POSTONLY":
		return "post_only"
	default:
		return "limit"
	}
}

func orderStateFromWire(state string) domain.OrderStatus {
	switch state {
	case "live":
		return domain.OrderStatusNew
	case "partially_filled":
		return domain.OrderStatusNew
	case "filled":
		return domain.OrderStatusFilled
	case "canceled":
		return domain.OrderStatusCanceled
	default:
		return domain.OrderStatusRejected
	}
}

func pendingOrderToDomain(p pendingOrder) *domain.Order {
	symbol := symbolFromInstID(p.InstID)
	side := domain.OrderSideBuy
	if p.Side == "sell" {
		side = domain.OrderSideSell
	}
	orderType := domain.OrderTypeLimit
	if p.OrdType == "market" {
		orderType = domain.OrderTypeMarket
	}
	return &domain.Order{
		Exchange:      exchange,
		Symbol:        symbol.String(),
		ID:            p.OrdID,
		ClientOrderID: p.ClOrdID,
		Side:          side,
		Type:          orderType,
		Status:        orderStateFromWire(p.State),
		Price:         domain.StringToDecimal(p.Px),
		Quantity:      domain.StringToDecimal(p.Sz),
	}
}

func balanceDetailToDomain(d balanceDetail) domain.Balance {
	return domain.Balance{
		Exchange: exchange,
		Asset:    d.Ccy,
		Free:     domain.StringToDecimal(d.AvailBal),
		Locked:   domain.StringToDecimal(d.FrozenBal),
	}
}

func tsToTime(ts string) time.Time {
	ms, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
