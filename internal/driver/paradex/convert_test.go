package paradex

import (
	"testing"

	"github.com/exactkit/exact/pkg/domain"
)

func TestParadexSymbolRoundTrip(t *testing.T) {
	symbol := domain.NewSymbol("BTC", "USD")
	market := paradexSymbol(symbol)
	if market != "BTC-USD-PERP" {
		t.Fatalf("paradexSymbol = %q, want BTC-USD-PERP", market)
	}

	back := symbolFromParadex(market)
	if !back.Equal(symbol) {
		t.Errorf("symbolFromParadex(%q) = %+v, want %+v", market, back, symbol)
	}
}

func TestParadexIntervalIsIdentity(t *testing.T) {
	if got := paradexInterval(domain.Interval1h); got != "1h" {
		t.Errorf("paradexInterval(1h) = %q, want 1h", got)
	}
}

func TestDecimalPlacesStepSize(t *testing.T) {
	cases := map[string]int{"0.001": 3, "1": 0, "0.1": 1}
	for step, want := range cases {
		if got := decimalPlaces(step); got != want {
			t.Errorf("decimalPlaces(%q) = %d, want %d", step, got, want)
		}
	}
}

func TestOrderStatusFromWire(t *testing.T) {
	cases := map[string]domain.OrderStatus{
		"OPEN":      domain.OrderStatusNew,
		"NEW":       domain.OrderStatusNew,
		"CLOSED":    domain.OrderStatusFilled,
		"FILLED":    domain.OrderStatusFilled,
		"CANCELLED": domain.OrderStatusCanceled,
		"CANCELED":  domain.OrderStatusCanceled,
		"REJECTED":  domain.OrderStatusRejected,
	}
	for wire, want := range cases {
		if got := orderStatusFromWire(wire); got != want {
			t.Errorf("orderStatusFromWire(%q) = %v, want %v", wire, got, want)
		}
	}
}

func TestOrderResponseToDomain(t *testing.T) {
	resp := orderResponse{
		ID:       "abc123",
		ClientID: "client-1",
		Market:   "ETH-USD-PERP",
		Side:     "BUY",
		Type:     "LIMIT",
		Status:   "OPEN",
		Price:    "2000",
		Size:     "1.5",
	}
	order := orderResponseToDomain(resp)

	if order.Side != domain.OrderSideBuy {
		t.Errorf("Side = %v, want buy", order.Side)
	}
	if order.Status != domain.OrderStatusNew {
		t.Errorf("Status = %v, want new", order.Status)
	}
	if domain.String(order.Quantity) != "1.5" {
		t.Errorf("Quantity = %s, want 1.5", domain.String(order.Quantity))
	}
}

func TestPositionEntryToDomainSide(t *testing.T) {
	p := positionEntry{Market: "BTC-USD-PERP", Side: "short", Size: "0.5"}
	pos := positionEntryToDomain(p)
	if pos.Side != domain.PositionSideShort {
		t.Errorf("Side = %v, want short", pos.Side)
	}

	pLong := positionEntry{Market: "BTC-USD-PERP", Side: "LONG", Size: "0.5"}
	posLong := positionEntryToDomain(pLong)
	if posLong.Side != domain.PositionSideLong {
		t.Errorf("Side = %v, want long", posLong.Side)
	}
}

func TestBalanceEntryToDomainComputesLocked(t *testing.T) {
	b := balanceEntry{Token: "USDC", Available: "80", Total: "100"}
	bal := balanceEntryToDomain(b)

	if domain.String(bal.Free) != "80" {
		t.Errorf("Free = %s, want 80", domain.String(bal.Free))
	}
	if domain.String(bal.Locked) != "20" {
		t.Errorf("Locked = %s, want 20", domain.String(bal.Locked))
	}
}
