package okx

import (
	"testing"

	"github.com/exactkit/exact/pkg/domain"
)

func TestOkxInstIDRoundTrip(t *testing.T) {
	symbol := domain.NewSymbol("BTC", "USDT")
	instID := okxInstID(symbol)
	if instID != "BTC-USDT" {
		t.Fatalf("okxInstID = %q, want BTC-USDT", instID)
	}

	back := symbolFromInstID(instID)
	if !back.Equal(symbol) {
		t.Errorf("symbolFromInstID(%q) = %+v, want %+v", instID, back, symbol)
	}
}

func TestOkxBarMapping(t *testing.T) {
	cases := map[domain.KlineInterval]string{
		domain.Interval1m:  "1m",
		domain.Interval1h:  "1H",
		domain.Interval1d:  "1D",
		domain.Interval1w:  "1W",
		domain.Interval1M:  "1M",
	}
	for interval, want := range cases {
		if got := okxBar(interval); got != want {
			t.Errorf("okxBar(%v) = %q, want %q", interval, got, want)
		}
	}
}

func TestDecimalPlaces(t *testing.T) {
	cases := map[string]int{
		"0.001": 3,
		"0.1":   1,
		"1":     0,
		"":      0,
	}
	for step, want := range cases {
		if got := decimalPlaces(step); got != want {
			t.Errorf("decimalPlaces(%q) = %d, want %d", step, got, want)
		}
	}
}

func TestInstrumentToDomain(t *testing.T) {
	in := instrument{
		InstID:   "BTC-USDT",
		BaseCcy:  "BTC",
		QuoteCcy: "USDT",
		TickSz:   "0.01",
		LotSz:    "0.0001",
		MinSz:    "0.0001",
		State:    "live",
	}
	m := instrumentToDomain(in)

	if m.Exchange != exchange {
		t.Errorf("Exchange = %q, want %q", m.Exchange, exchange)
	}
	if !m.Symbol.Equal(domain.NewSymbol("BTC", "USDT")) {
		t.Errorf("Symbol = %+v, want BTC/USDT", m.Symbol)
	}
	if m.QuotePrecision != 2 {
		t.Errorf("QuotePrecision = %d, want 2", m.QuotePrecision)
	}
	if m.BasePrecision != 4 {
		t.Errorf("BasePrecision = %d, want 4", m.BasePrecision)
	}
}

func TestTickerToDomain(t *testing.T) {
	tk := ticker{
		InstID:  "ETH-USDT",
		Last:    "2000.5",
		BidPx:   "2000.0",
		AskPx:   "2001.0",
		Open24h: "1950.0",
		Ts:      "1700000000000",
	}
	d := tickerToDomain(tk)

	if domain.String(d.LastPrice) != "2000.5" {
		t.Errorf("LastPrice = %s, want 2000.5", domain.String(d.LastPrice))
	}
	if !domain.IsPositive(d.PriceChange) {
		t.Errorf("PriceChange should be positive when last > open24h")
	}
	if d.Timestamp.UnixMilli() != 1700000000000 {
		t.Errorf("Timestamp = %v, want unix ms 1700000000000", d.Timestamp)
	}
}

func TestOrderBookToDomainFiltersShortRows(t *testing.T) {
	ob := orderBook{
		Bids: [][]string{{"100", "1"}, {"bad"}},
		Asks: [][]string{{"101", "2"}},
		Ts:   "1700000000000",
	}
	d := orderBookToDomain(domain.NewSymbol("BTC", "USDT"), ob)

	if len(d.Bids) != 1 {
		t.Fatalf("expected malformed bid row to be dropped, got %d bids", len(d.Bids))
	}
	if len(d.Asks) != 1 {
		t.Fatalf("expected 1 ask, got %d", len(d.Asks))
	}
}

func TestCandleToDomainConfirmedFlag(t *testing.T) {
	row := [9]string{"1700000000000", "100", "110", "90", "105", "10", "1000", "1000", "1"}
	k := candleToDomain(domain.NewSymbol("BTC", "USDT"), "1m", row)

	if !k.IsClosed {
		t.Error("expected IsClosed true when confirm flag is \"1\"")
	}
	if domain.String(k.Close) != "105" {
		t.Errorf("Close = %s, want 105", domain.String(k.Close))
	}
}

func TestOrderTypeWireTimeInForce(t *testing.T) {
	if got := orderTypeWire(domain.OrderTypeMarket, "IOC"); got != "market" {
		t.Errorf("market order should ignore time-in-force, got %q", got)
	}
	if got := orderTypeWire(domain.OrderTypeLimit, "IOC"); got != "ioc" {
		t.Errorf("limit+IOC = %q, want ioc", got)
	}
	if got := orderTypeWire(domain.OrderTypeLimit, ""); got != "limit" {
		t.Errorf("limit with no TIF = %q, want limit", got)
	}
}

func TestOrderStateFromWire(t *testing.T) {
	cases := map[string]domain.OrderStatus{
		"live":             domain.OrderStatusNew,
		"partially_filled": domain.OrderStatusNew,
		"filled":           domain.OrderStatusFilled,
		"canceled":         domain.OrderStatusCanceled,
		"unknown":          domain.OrderStatusRejected,
	}
	for state, want := range cases {
		if got := orderStateFromWire(state); got != want {
			t.Errorf("orderStateFromWire(%q) = %v, want %v", state, got, want)
		}
	}
}
