package paradex

import (
	"encoding/json"
	"strings"

	"github.com/exactkit/exact/pkg/domain"
)

// Codec adapts Paradex's channel@symbol WebSocket protocol — the
// convention original_source/src/exchanges/paradex/{codec,websocket}.rs
// both build subscription frames and channel routing around — to
// wscodec.Codec[domain.MarketDataType].
type Codec struct{}

// NewCodec constructs the Paradex market-data codec.
func NewCodec() *Codec { return &Codec{} }

func (c *Codec) EncodeSubscription(sub domain.SubscriptionType, symbol domain.Symbol) ([]byte, error) {
	return encodeFrame("SUBSCRIBE", sub, symbol)
}

func (c *Codec) EncodeUnsubscription(sub domain.SubscriptionType, symbol domain.Symbol) ([]byte, error) {
	return encodeFrame("UNSUBSCRIBE", sub, symbol)
}

func encodeFrame(method string, sub domain.SubscriptionType, symbol domain.Symbol) ([]byte, error) {
	channel := channelFor(sub, symbol)
	if channel == "" {
		return nil, nil
	}
	return json.Marshal(wsSubscribeFrame{Method: method, Params: []string{channel}, ID: 1})
}

// channelFor names the channel for one (subscription, symbol) pair:
// "ticker@BTC-USD-PERP", "depth@BTC-USD-PERP", "trade@BTC-USD-PERP",
// "kline_1m@BTC-USD-PERP".
func channelFor(sub domain.SubscriptionType, symbol domain.Symbol) string {
	sym := paradexSymbol(symbol)
	switch s := sub.(type) {
	case domain.TickerSubscription:
		return "ticker@" + sym
	case domain.TradesSubscription:
		return "trade@" + sym
	case domain.KlinesSubscription:
		return "kline_" + paradexInterval(s.Interval) + "@" + sym
	case domain.OrderBookSubscription:
		return "depth@" + sym
	default:
		return ""
	}
}

// DecodeMessage parses one inbound frame. Subscription acks
// ({"result":...,"id":1}) carry no channel and decode to ok=false.
func (c *Codec) DecodeMessage(raw []byte) (domain.MarketDataType, bool, error) {
	var env wsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Channel == "" {
		return domain.MarketDataType{}, false, nil
	}

	at := strings.LastIndex(env.Channel, "@")
	if at < 0 {
		return domain.MarketDataType{}, false, nil
	}
	kind, sym := env.Channel[:at], env.Channel[at+1:]
	symbol := symbolFromParadex(sym)

	switch {
	case kind == "ticker":
		var t wsTicker
		if err := json.Unmarshal(env.Data, &t); err != nil {
			return domain.MarketDataType{}, false, err
		}
		return domain.MarketDataType{Ticker: wsTickerToDomain(symbol, t)}, true, nil

	case kind == "depth":
		var ob wsOrderBook
		if err := json.Unmarshal(env.Data, &ob); err != nil {
			return domain.MarketDataType{}, false, err
		}
		return domain.MarketDataType{OrderBook: wsOrderBookToDomain(symbol, ob)}, true, nil

	case kind == "trade":
		var t wsTrade
		if err := json.Unmarshal(env.Data, &t); err != nil {
			return domain.MarketDataType{}, false, err
		}
		return domain.MarketDataType{Trade: wsTradeToDomain(symbol, t)}, true, nil

	case strings.HasPrefix(kind, "kline_"):
		interval := strings.TrimPrefix(kind, "kline_")
		var k wsKline
		if err := json.Unmarshal(env.Data, &k); err != nil {
			return domain.MarketDataType{}, false, err
		}
		return domain.MarketDataType{Kline: wsKlineToDomain(symbol, interval, k)}, true, nil
	}

	return domain.MarketDataType{}, false, nil
}
