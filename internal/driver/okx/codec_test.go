package okx

import (
	"encoding/json"
	"testing"

	"github.com/exactkit/exact/pkg/domain"
)

func TestEncodeSubscriptionTicker(t *testing.T) {
	c := NewCodec()
	raw, err := c.EncodeSubscription(domain.TickerSubscription{}, domain.NewSymbol("BTC", "USDT"))
	if err != nil {
		t.Fatalf("EncodeSubscription returned error: %v", err)
	}

	var frame wsSubscribeFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		t.Fatalf("encoded frame is not valid JSON: %v", err)
	}
	if frame.Op != "subscribe" {
		t.Errorf("Op = %q, want subscribe", frame.Op)
	}
	if len(frame.Args) != 1 || frame.Args[0].Channel != "tickers" || frame.Args[0].InstID != "BTC-USDT" {
		t.Errorf("unexpected args: %+v", frame.Args)
	}
}

func TestEncodeSubscriptionCandleUsesRequestedInterval(t *testing.T) {
	c := NewCodec()
	raw, _ := c.EncodeSubscription(domain.KlinesSubscription{Interval: domain.Interval5m}, domain.NewSymbol("BTC", "USDT"))

	var frame wsSubscribeFrame
	json.Unmarshal(raw, &frame)
	if frame.Args[0].Channel != "candle5m" {
		t.Errorf("Channel = %q, want candle5m", frame.Args[0].Channel)
	}
}

func TestDecodeMessageIgnoresEventFrames(t *testing.T) {
	c := NewCodec()
	_, ok, err := c.DecodeMessage([]byte(`{"event":"subscribe","arg":{"channel":"tickers","instId":"BTC-USDT"}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("event frames should not decode to a market data message")
	}
}

func TestDecodeMessageIgnoresPong(t *testing.T) {
	c := NewCodec()
	_, ok, err := c.DecodeMessage([]byte("pong"))
	if err != nil || ok {
		t.Errorf("pong should decode to ok=false, nil error; got ok=%v err=%v", ok, err)
	}
}

func TestDecodeMessageTicker(t *testing.T) {
	c := NewCodec()
	raw := []byte(`{"arg":{"channel":"tickers","instId":"BTC-USDT"},"data":[{"instId":"BTC-USDT","last":"50000","askPx":"50001","bidPx":"49999","ts":"1700000000000"}]}`)

	msg, ok, err := c.DecodeMessage(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || msg.Ticker == nil {
		t.Fatalf("expected decoded ticker, got ok=%v msg=%+v", ok, msg)
	}
	if domain.String(msg.Ticker.LastPrice) != "50000" {
		t.Errorf("LastPrice = %s, want 50000", domain.String(msg.Ticker.LastPrice))
	}
}

func TestDecodeMessageCandleUsesChannelSuffixAsInterval(t *testing.T) {
	c := NewCodec()
	raw := []byte(`{"arg":{"channel":"candle15m","instId":"BTC-USDT"},"data":[["1700000000000","100","110","90","105","10","1000","1000","1"]]}`)

	msg, ok, err := c.DecodeMessage(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || msg.Kline == nil {
		t.Fatalf("expected decoded kline, got ok=%v", ok)
	}
	if msg.Kline.Interval != "15m" {
		t.Errorf("Interval = %q, want 15m", msg.Kline.Interval)
	}
}

func TestDecodeMessageUnknownChannel(t *testing.T) {
	c := NewCodec()
	raw := []byte(`{"arg":{"channel":"mystery","instId":"BTC-USDT"},"data":[{}]}`)
	_, ok, err := c.DecodeMessage(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("unknown channel should decode to ok=false")
	}
}
