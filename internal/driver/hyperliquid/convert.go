package hyperliquid

import (
	"strconv"
	"time"

	"github.com/exactkit/exact/pkg/domain"
)

// coin returns the wire symbol for a domain.Symbol. Hyperliquid perpetuals
// are quoted in a synthetic "USD", so only the base asset travels on the
// wire; symbolFromCoin reattaches the synthetic quote on the way back.
func coin(s domain.Symbol) string { return s.Base }

func symbolFromCoin(c string) domain.Symbol { return domain.NewSymbol(c, quoteAsset) }

// hlInterval maps a canonical interval to Hyperliquid's candle interval
// string. Hyperliquid's own wire format already matches every value this
// connector enumerates, so this is an identity map kept explicit so a
// future interval this connector adds doesn't silently pass through
// unchecked.
func hlInterval(i domain.KlineInterval) string {
	switch i {
	case domain.Interval1m, domain.Interval3m, domain.Interval5m, domain.Interval15m,
		domain.Interval30m, domain.Interval1h, domain.Interval2h, domain.Interval4h,
		domain.Interval6h, domain.Interval8h, domain.Interval12h, domain.Interval1d,
		domain.Interval3d, domain.Interval1w, domain.Interval1M:
		return string(i)
	default:
		return "1m"
	}
}

func assetToMarket(a assetInfo) domain.Market {
	return domain.Market{
		Exchange:       exchange,
		Symbol:         symbolFromCoin(a.Name),
		Status:         "TRADING",
		BasePrecision:  a.SzDecimals,
		QuotePrecision: 6,
		MinQuantity:    domain.StringToDecimal("0" + zeros(a.SzDecimals, true) + "1"),
	}
}

// zeros returns "." followed by n-1 zeros ("" for n <= 0); assetToMarket
// wraps it as "0"+zeros(n)+"1" to build the smallest representable size
// step at the asset's declared decimal precision (0.001 for n=3). invert
// is ignored.
func zeros(n int, invert bool) string {
	if n <= 0 {
		return ""
	}
	buf := make([]byte, 0, n+1)
	buf = append(buf, '.')
	for i := 0; i < n-1; i++ {
		buf = append(buf, '0')
	}
	_ = invert
	return string(buf)
}

func candleToKline(symbol domain.Symbol, interval string, c candle) domain.Kline {
	return domain.Kline{
		Exchange:    exchange,
		Symbol:      symbol.String(),
		Interval:    interval,
		OpenTime:    time.UnixMilli(c.OpenTime),
		CloseTime:   time.UnixMilli(c.CloseTime),
		Open:        domain.StringToDecimal(c.Open),
		High:        domain.StringToDecimal(c.High),
		Low:         domain.StringToDecimal(c.Low),
		Close:       domain.StringToDecimal(c.Close),
		Volume:      domain.StringToDecimal(c.Volume),
		TradeCount:  c.NumTrades,
		IsClosed:    true,
	}
}

func l2BookToDomain(symbol domain.Symbol, b l2Book) *domain.OrderBook {
	ob := &domain.OrderBook{
		Exchange:     exchange,
		Symbol:       symbol.String(),
		LastUpdateID: b.Time,
		Timestamp:    time.UnixMilli(b.Time),
	}
	if len(b.Levels) > 0 {
		ob.Bids = levelsToDomain(b.Levels[0])
	}
	if len(b.Levels) > 1 {
		ob.Asks = levelsToDomain(b.Levels[1])
	}
	return ob
}

func levelsToDomain(levels []l2Level) []domain.OrderBookLevel {
	out := make([]domain.OrderBookLevel, 0, len(levels))
	for _, l := range levels {
		out = append(out, domain.OrderBookLevel{
			Price:    domain.StringToDecimal(l.Px),
			Quantity: domain.StringToDecimal(l.Sz),
		})
	}
	return out
}

func userStateToBalances(u userState) []domain.Balance {
	return []domain.Balance{{
		Exchange: exchange,
		Asset:    "USDC",
		Free:     domain.StringToDecimal(u.Withdrawable),
		Locked:   domain.Sub(domain.StringToDecimal(u.MarginSummary.AccountValue), domain.StringToDecimal(u.Withdrawable)),
	}}
}

func userStateToPositions(u userState) []domain.Position {
	out := make([]domain.Position, 0, len(u.AssetPositions))
	for _, ap := range u.AssetPositions {
		out = append(out, positionToDomain(ap.Position))
	}
	return out
}

func positionToDomain(p positionInfo) domain.Position {
	side := domain.PositionSideFlat
	sz := domain.StringToDecimal(p.Szi)
	if domain.IsPositive(sz) {
		side = domain.PositionSideLong
	} else if domain.IsNegative(sz) {
		side = domain.PositionSideShort
	}

	entry := "0"
	if p.EntryPx != nil {
		entry = *p.EntryPx
	}
	pos := domain.Position{
		Exchange:      exchange,
		Symbol:        symbolFromCoin(p.Coin),
		Side:          side,
		Size:          domain.Abs(sz),
		EntryPrice:    domain.StringToDecimal(entry),
		UnrealizedPnL: domain.StringToDecimal(p.UnrealizedPnl),
		Leverage:      domain.NewDecimalFromInt(int64(p.Leverage.Value)),
	}
	if p.LiquidationPx != nil {
		pos.LiquidationPrice = domain.StringToDecimal(*p.LiquidationPx)
	}
	return pos
}

func assetCtxToFundingRate(symbol domain.Symbol, ctx assetCtx) domain.FundingRate {
	return domain.FundingRate{
		Exchange:    exchange,
		Symbol:      symbol,
		FundingRate: domain.StringToDecimal(ctx.Funding),
		MarkPrice:   domain.StringToDecimal(ctx.MarkPx),
		IndexPrice:  domain.StringToDecimal(ctx.OraclePx),
		Timestamp:   time.Now(),
	}
}

func fundingHistoryEntryToDomain(entry fundingHistoryEntry) domain.FundingRate {
	t := time.UnixMilli(entry.Time)
	return domain.FundingRate{
		Exchange:    exchange,
		Symbol:      symbolFromCoin(entry.Coin),
		FundingRate: domain.StringToDecimal(entry.FundingRate),
		FundingTime: &t,
		Timestamp:   t,
	}
}

// toHyperliquidOrder converts a domain order request to Hyperliquid's
// wire shape. Market orders have no real concept on Hyperliquid: they are
// submitted as IOC limit orders at a sentinel price far enough through
// the book to guarantee an immediate marketable fill — "999999999" for
// buys, "0.000001" for sells.
func toHyperliquidOrder(req domain.OrderRequest) orderRequest {
	isBuy := req.Side == domain.OrderSideBuy

	tif := "Gtc"
	switch req.TimeInForce {
	case "IOC", "FOK":
		tif = "Ioc"
	}

	price := domain.String(req.Price)
	if req.Type == domain.OrderTypeMarket {
		tif = "Ioc"
		if isBuy {
			price = "999999999"
		} else {
			price = "0.000001"
		}
	}

	return orderRequest{
		Coin:      req.Symbol,
		IsBuy:     isBuy,
		Sz:        domain.String(req.Quantity),
		LimitPx:   price,
		OrderType: orderType{Limit: &limitOrder{Tif: tif}},
	}
}

func exchangeResponseToOrder(req domain.OrderRequest, resp exchangeResponse) *domain.Order {
	order := &domain.Order{
		Exchange:  exchange,
		Symbol:    req.Symbol,
		Side:      req.Side,
		Type:      req.Type,
		Price:     req.Price,
		Quantity:  req.Quantity,
		Status:    domain.OrderStatusRejected,
		CreatedAt: time.Now(),
	}
	if resp.Status != "ok" || resp.Response.Data == nil || len(resp.Response.Data.Statuses) == 0 {
		return order
	}

	status := resp.Response.Data.Statuses[0]
	switch {
	case status.Resting != nil:
		order.ID = strconv.FormatUint(status.Resting.Oid, 10)
		order.Status = domain.OrderStatusNew
	case status.Filled != nil:
		order.ID = strconv.FormatUint(status.Filled.Oid, 10)
		order.Status = domain.OrderStatusFilled
		order.FilledQuantity = domain.StringToDecimal(status.Filled.TotalSz)
	default:
		order.Status = domain.OrderStatusRejected
	}
	return order
}

func wsTradeToDomain(symbol domain.Symbol, t wsTrade) *domain.Trade {
	side := domain.OrderSideBuy
	if t.Side == "A" {
		side = domain.OrderSideSell
	}
	return &domain.Trade{
		Exchange:  exchange,
		Symbol:    symbol.String(),
		ID:        strconv.FormatInt(t.Tid, 10),
		Price:     domain.StringToDecimal(t.Px),
		Quantity:  domain.StringToDecimal(t.Sz),
		Side:      side,
		Timestamp: time.UnixMilli(t.Time),
	}
}

func wsBookToDomain(symbol domain.Symbol, b wsBook) *domain.OrderBook {
	return l2BookToDomain(symbol, l2Book{Coin: b.Coin, Levels: b.Levels, Time: b.Time})
}

func wsAllMidsToTicker(c string, mid string) *domain.Ticker {
	return &domain.Ticker{
		Exchange:  exchange,
		Symbol:    symbolFromCoin(c).String(),
		LastPrice: domain.StringToDecimal(mid),
		Timestamp: time.Now(),
	}
}
