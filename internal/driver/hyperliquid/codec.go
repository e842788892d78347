package hyperliquid

import (
	"encoding/json"

	"github.com/exactkit/exact/pkg/domain"
)

// Codec adapts Hyperliquid's public WebSocket to
// wscodec.Codec[domain.MarketDataType]. Hyperliquid pushes wrap every
// message in {"channel": "...", "data": ...}; ticker updates arrive on
// the venue-wide "allMids" channel rather than per-symbol. Filtering those
// pushes down to the subscribed coin would need per-symbol state this
// stateless codec doesn't keep, so each allMids push decodes to a single
// Ticker for one entry of the mids map, picked in Go's unspecified map
// iteration order; the other mids in that push are not surfaced.
type Codec struct{}

func NewCodec() *Codec { return &Codec{} }

func (c *Codec) EncodeSubscription(sub domain.SubscriptionType, symbol domain.Symbol) ([]byte, error) {
	return encodeFrame("subscribe", sub, symbol)
}

func (c *Codec) EncodeUnsubscription(sub domain.SubscriptionType, symbol domain.Symbol) ([]byte, error) {
	return encodeFrame("unsubscribe", sub, symbol)
}

func encodeFrame(method string, sub domain.SubscriptionType, symbol domain.Symbol) ([]byte, error) {
	s, ok := subscriptionFor(sub, symbol)
	if !ok {
		return nil, nil
	}
	return json.Marshal(wsFrame{Method: method, Subscription: s})
}

func subscriptionFor(sub domain.SubscriptionType, symbol domain.Symbol) (wsSubscription, bool) {
	c := coin(symbol)
	switch s := sub.(type) {
	case domain.TickerSubscription:
		return wsSubscription{Type: "allMids"}, true
	case domain.OrderBookSubscription:
		return wsSubscription{Type: "l2Book", Coin: c}, true
	case domain.TradesSubscription:
		return wsSubscription{Type: "trades", Coin: c}, true
	case domain.KlinesSubscription:
		return wsSubscription{Type: "candle", Coin: c, Interval: hlInterval(s.Interval)}, true
	default:
		return wsSubscription{}, false
	}
}

func (c *Codec) DecodeMessage(raw []byte) (domain.MarketDataType, bool, error) {
	var env wsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return domain.MarketDataType{}, false, nil
	}

	var payload struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.MarketDataType{}, false, err
	}

	switch env.Channel {
	case "allMids":
		var mids wsAllMids
		if err := json.Unmarshal(payload.Data, &mids); err != nil {
			return domain.MarketDataType{}, false, err
		}
		for coinName, px := range mids.Mids {
			return domain.MarketDataType{Ticker: wsAllMidsToTicker(coinName, px)}, true, nil
		}
		return domain.MarketDataType{}, false, nil

	case "l2Book":
		var b wsBook
		if err := json.Unmarshal(payload.Data, &b); err != nil {
			return domain.MarketDataType{}, false, err
		}
		return domain.MarketDataType{OrderBook: wsBookToDomain(symbolFromCoin(b.Coin), b)}, true, nil

	case "trades":
		var trades []wsTrade
		if err := json.Unmarshal(payload.Data, &trades); err != nil {
			return domain.MarketDataType{}, false, err
		}
		if len(trades) == 0 {
			return domain.MarketDataType{}, false, nil
		}
		last := trades[len(trades)-1]
		return domain.MarketDataType{Trade: wsTradeToDomain(symbolFromCoin(last.Coin), last)}, true, nil

	case "candle":
		var cdl candle
		if err := json.Unmarshal(payload.Data, &cdl); err != nil {
			return domain.MarketDataType{}, false, err
		}
		k := candleToKline(symbolFromCoin(cdl.Coin), cdl.Interval, cdl)
		return domain.MarketDataType{Kline: &k}, true, nil
	}

	return domain.MarketDataType{}, false, nil
}
