package paradex

import (
	"encoding/json"
	"testing"

	"github.com/exactkit/exact/pkg/domain"
)

func TestEncodeSubscriptionChannelNaming(t *testing.T) {
	c := NewCodec()
	symbol := domain.NewSymbol("BTC", "USD")

	cases := []struct {
		sub  domain.SubscriptionType
		want string
	}{
		{domain.TickerSubscription{}, "ticker@BTC-USD-PERP"},
		{domain.TradesSubscription{}, "trade@BTC-USD-PERP"},
		{domain.OrderBookSubscription{}, "depth@BTC-USD-PERP"},
		{domain.KlinesSubscription{Interval: domain.Interval1m}, "kline_1m@BTC-USD-PERP"},
	}

	for _, tc := range cases {
		raw, err := c.EncodeSubscription(tc.sub, symbol)
		if err != nil {
			t.Fatalf("EncodeSubscription error: %v", err)
		}
		var frame wsSubscribeFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			t.Fatalf("invalid JSON frame: %v", err)
		}
		if frame.Method != "SUBSCRIBE" {
			t.Errorf("Method = %q, want SUBSCRIBE", frame.Method)
		}
		if len(frame.Params) != 1 || frame.Params[0] != tc.want {
			t.Errorf("Params = %v, want [%s]", frame.Params, tc.want)
		}
	}
}

func TestEncodeUnsubscriptionMethod(t *testing.T) {
	c := NewCodec()
	raw, _ := c.EncodeUnsubscription(domain.TickerSubscription{}, domain.NewSymbol("BTC", "USD"))
	var frame wsSubscribeFrame
	json.Unmarshal(raw, &frame)
	if frame.Method != "UNSUBSCRIBE" {
		t.Errorf("Method = %q, want UNSUBSCRIBE", frame.Method)
	}
}

func TestDecodeMessageAckHasNoChannel(t *testing.T) {
	c := NewCodec()
	_, ok, err := c.DecodeMessage([]byte(`{"result":null,"id":1}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("subscription ack should decode to ok=false")
	}
}

func TestDecodeMessageTicker(t *testing.T) {
	c := NewCodec()
	raw := []byte(`{"channel":"ticker@BTC-USD-PERP","data":{"last_price":"50000","bid_price":"49999","ask_price":"50001"}}`)

	msg, ok, err := c.DecodeMessage(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || msg.Ticker == nil {
		t.Fatalf("expected decoded ticker, got ok=%v", ok)
	}
	if domain.String(msg.Ticker.LastPrice) != "50000" {
		t.Errorf("LastPrice = %s, want 50000", domain.String(msg.Ticker.LastPrice))
	}
}

func TestDecodeMessageKlineParsesIntervalFromChannel(t *testing.T) {
	c := NewCodec()
	raw := []byte(`{"channel":"kline_5m@ETH-USD-PERP","data":{"open":"100","close":"105","final":true}}`)

	msg, ok, err := c.DecodeMessage(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || msg.Kline == nil {
		t.Fatalf("expected decoded kline, got ok=%v", ok)
	}
	if msg.Kline.Interval != "5m" {
		t.Errorf("Interval = %q, want 5m", msg.Kline.Interval)
	}
	if !msg.Kline.IsClosed {
		t.Error("expected IsClosed true when final=true")
	}
}
