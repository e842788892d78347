package backpack

import (
	"encoding/json"

	"github.com/exactkit/exact/pkg/domain"
)

// Codec adapts Backpack's public WebSocket to wscodec.Codec[domain.MarketDataType].
// Unlike Binance/Bybit, a Backpack push carries no stream envelope: each
// frame IS the event, discriminated by its own "e" field.
type Codec struct{}

func NewCodec() *Codec { return &Codec{} }

func (c *Codec) EncodeSubscription(sub domain.SubscriptionType, symbol domain.Symbol) ([]byte, error) {
	return encodeFrame("SUBSCRIBE", sub, symbol)
}

func (c *Codec) EncodeUnsubscription(sub domain.SubscriptionType, symbol domain.Symbol) ([]byte, error) {
	return encodeFrame("UNSUBSCRIBE", sub, symbol)
}

func encodeFrame(method string, sub domain.SubscriptionType, symbol domain.Symbol) ([]byte, error) {
	param := streamFor(sub, symbol)
	if param == "" {
		return nil, nil
	}
	return json.Marshal(subscribeFrame{Method: method, Params: []string{param}, ID: 1})
}

func streamFor(sub domain.SubscriptionType, symbol domain.Symbol) string {
	sym := symbolWire(symbol)
	switch s := sub.(type) {
	case domain.TickerSubscription:
		return "ticker." + sym
	case domain.OrderBookSubscription:
		return "depth." + sym
	case domain.TradesSubscription:
		return "trade." + sym
	case domain.KlinesSubscription:
		return "kline." + bpInterval(s.Interval) + "." + sym
	default:
		return ""
	}
}

func (c *Codec) DecodeMessage(raw []byte) (domain.MarketDataType, bool, error) {
	var tag struct {
		Event string `json:"e"`
	}
	if err := json.Unmarshal(raw, &tag); err != nil || tag.Event == "" {
		return domain.MarketDataType{}, false, nil
	}

	switch tag.Event {
	case "ticker":
		var t wsTicker
		if err := json.Unmarshal(raw, &t); err != nil {
			return domain.MarketDataType{}, false, err
		}
		return domain.MarketDataType{Ticker: wsTickerToDomain(t)}, true, nil

	case "trade":
		var t wsTrade
		if err := json.Unmarshal(raw, &t); err != nil {
			return domain.MarketDataType{}, false, err
		}
		return domain.MarketDataType{Trade: wsTradeToDomain(t)}, true, nil

	case "kline":
		var k wsKline
		if err := json.Unmarshal(raw, &k); err != nil {
			return domain.MarketDataType{}, false, err
		}
		// The event carries no interval; callers that need it should key
		// off the subscription they made, not this decoded Kline.
		return domain.MarketDataType{Kline: wsKlineToDomain(k, "")}, true, nil

	case "depth":
		var d wsDepth
		if err := json.Unmarshal(raw, &d); err != nil {
			return domain.MarketDataType{}, false, err
		}
		return domain.MarketDataType{OrderBook: wsDepthToDomain(d)}, true, nil

	case "markPrice":
		var m wsMarkPrice
		if err := json.Unmarshal(raw, &m); err != nil {
			return domain.MarketDataType{}, false, err
		}
		fr := wsMarkPriceToFundingRate(m)
		return domain.MarketDataType{FundingRate: &fr}, true, nil
	}

	return domain.MarketDataType{}, false, nil
}
