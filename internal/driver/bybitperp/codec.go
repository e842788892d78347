package bybitperp

import (
	"encoding/json"
	"strings"

	"github.com/exactkit/exact/pkg/domain"
)

// Codec adapts Bybit v5's linear-category public WebSocket to
// wscodec.Codec[domain.MarketDataType], identical in shape to the spot
// driver's codec except that a "tickers." push also carries funding-rate
// fields, surfaced as a FundingRate alongside the Ticker in the same
// MarketDataType.
type Codec struct{}

func NewCodec() *Codec { return &Codec{} }

type subscribeFrame struct {
	Op   string   `json:"op"`
	Args []string `json:"args"`
}

func (c *Codec) EncodeSubscription(sub domain.SubscriptionType, symbol domain.Symbol) ([]byte, error) {
	return encodeFrame("subscribe", sub, symbol)
}

func (c *Codec) EncodeUnsubscription(sub domain.SubscriptionType, symbol domain.Symbol) ([]byte, error) {
	return encodeFrame("unsubscribe", sub, symbol)
}

func encodeFrame(op string, sub domain.SubscriptionType, symbol domain.Symbol) ([]byte, error) {
	topic := topicFor(sub, symbol)
	if topic == "" {
		return nil, nil
	}
	return json.Marshal(subscribeFrame{Op: op, Args: []string{topic}})
}

func topicFor(sub domain.SubscriptionType, symbol domain.Symbol) string {
	sym := symbol.Base + symbol.Quote
	switch s := sub.(type) {
	case domain.TickerSubscription:
		return "tickers." + sym
	case domain.TradesSubscription:
		return "publicTrade." + sym
	case domain.KlinesSubscription:
		return "kline." + bybitInterval(s.Interval) + "." + sym
	case domain.OrderBookSubscription:
		depth := s.Depth
		if depth == 0 {
			depth = 50
		}
		return "orderbook." + itoa(depth) + "." + sym
	default:
		return ""
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// DecodeMessage parses one inbound frame. A "tickers." push that carries
// funding-rate fields decodes to a message with both Ticker and FundingRate
// set, so callers subscribed to Ticker on a perp venue receive
// funding updates on the same channel without a dedicated subscription
// kind — matching how Bybit itself folds funding into the ticker stream.
func (c *Codec) DecodeMessage(raw []byte) (domain.MarketDataType, bool, error) {
	var env wsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Topic == "" {
		return domain.MarketDataType{}, false, nil
	}

	switch {
	case strings.HasPrefix(env.Topic, "tickers."):
		symbol := symbolFromTopic(env.Topic, "tickers.")
		var t wsTicker
		if err := json.Unmarshal(env.Data, &t); err != nil {
			return domain.MarketDataType{}, false, err
		}
		if fr := wsTickerToFundingRate(symbol, t); fr != nil {
			return domain.MarketDataType{Ticker: wsTickerToDomain(symbol, t), FundingRate: fr}, true, nil
		}
		return domain.MarketDataType{Ticker: wsTickerToDomain(symbol, t)}, true, nil

	case strings.HasPrefix(env.Topic, "publicTrade."):
		symbol := symbolFromTopic(env.Topic, "publicTrade.")
		var trades []wsTrade
		if err := json.Unmarshal(env.Data, &trades); err != nil {
			return domain.MarketDataType{}, false, err
		}
		if len(trades) == 0 {
			return domain.MarketDataType{}, false, nil
		}
		return domain.MarketDataType{Trade: wsTradeToDomain(symbol, trades[len(trades)-1])}, true, nil

	case strings.HasPrefix(env.Topic, "kline."):
		parts := strings.SplitN(env.Topic, ".", 3)
		if len(parts) != 3 {
			return domain.MarketDataType{}, false, nil
		}
		symbol := symbolFromConcat(parts[2])
		var klines []wsKline
		if err := json.Unmarshal(env.Data, &klines); err != nil {
			return domain.MarketDataType{}, false, err
		}
		if len(klines) == 0 {
			return domain.MarketDataType{}, false, nil
		}
		return domain.MarketDataType{Kline: wsKlineToDomain(symbol, parts[1], klines[len(klines)-1])}, true, nil

	case strings.HasPrefix(env.Topic, "orderbook."):
		parts := strings.SplitN(env.Topic, ".", 3)
		if len(parts) != 3 {
			return domain.MarketDataType{}, false, nil
		}
		symbol := symbolFromConcat(parts[2])
		var ob wsOrderBook
		if err := json.Unmarshal(env.Data, &ob); err != nil {
			return domain.MarketDataType{}, false, err
		}
		return domain.MarketDataType{OrderBook: wsOrderBookToDomain(symbol, ob)}, true, nil
	}

	return domain.MarketDataType{}, false, nil
}

func symbolFromTopic(topic, prefix string) domain.Symbol {
	return symbolFromConcat(strings.TrimPrefix(topic, prefix))
}
