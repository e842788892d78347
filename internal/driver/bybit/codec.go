package bybit

import (
	"encoding/json"
	"strings"

	"github.com/exactkit/exact/pkg/domain"
)

// Codec adapts Bybit's v5 public WebSocket topic protocol to
// wscodec.Codec[domain.MarketDataType]. Subscribing sends
// {"op":"subscribe","args":["tickers.BTCUSDT", ...]}; pushes arrive as
// {"topic":"tickers.BTCUSDT","type":"snapshot","ts":..,"data":{...}}.
type Codec struct{}

// NewCodec constructs the Bybit market-data codec.
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

// topicFor produces the topic name for one (subscription, symbol) pair,
// per Bybit's documented naming: "tickers.SYMBOL", "publicTrade.SYMBOL",
// "kline.INTERVAL.SYMBOL", "orderbook.DEPTH.SYMBOL".
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
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// DecodeMessage parses one inbound frame. Subscription acks
// ({"success":true,"op":"subscribe"}) and anything without a topic decode
// to ok=false so the session drops them instead of forwarding garbage.
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

// knownQuotes lets symbolFromConcat split Bybit's unseparated "BTCUSDT"
// form; Bybit quotes are drawn from a small, fixed set, so the longest
// matching suffix wins.
var knownQuotes = []string{"USDT", "USDC", "BTC", "ETH", "EUR", "DAI"}

func symbolFromConcat(sym string) domain.Symbol {
	for _, q := range knownQuotes {
		if strings.HasSuffix(sym, q) && len(sym) > len(q) {
			return domain.NewSymbol(strings.TrimSuffix(sym, q), q)
		}
	}
	return domain.NewSymbol(sym, "")
}
