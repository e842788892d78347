package binance

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/exactkit/exact/pkg/domain"
)

// Codec adapts Binance's combined-stream WebSocket envelope to
// wscodec.Codec[domain.MarketDataType]. Binance's subscription frame is a
// single JSON object {"method":"SUBSCRIBE","params":[streams...],"id":N};
// its message envelope wraps each payload as {"stream":name,"data":{...}}.
type Codec struct{}

// NewCodec constructs the Binance market-data codec.
func NewCodec() *Codec { return &Codec{} }

type subscribeFrame struct {
	Method string   `json:"method"`
	Params []string `json:"params"`
	ID     int64    `json:"id"`
}

func (c *Codec) EncodeSubscription(sub domain.SubscriptionType, symbol domain.Symbol) ([]byte, error) {
	return encodeFrame("SUBSCRIBE", sub, symbol)
}

func (c *Codec) EncodeUnsubscription(sub domain.SubscriptionType, symbol domain.Symbol) ([]byte, error) {
	return encodeFrame("UNSUBSCRIBE", sub, symbol)
}

func encodeFrame(method string, sub domain.SubscriptionType, symbol domain.Symbol) ([]byte, error) {
	stream := streamFor(sub, symbol)
	if stream == "" {
		return nil, nil
	}
	return json.Marshal(subscribeFrame{Method: method, Params: []string{stream}, ID: int64(uuid.New().ID())})
}

// streamFor produces the stream identifier for one (subscription, symbol)
// pair, per Binance's documented naming: lowercased symbol, "@ticker",
// "@depth{N}@100ms" or "@depth@100ms", "@trade", "@kline_{interval}".
func streamFor(sub domain.SubscriptionType, symbol domain.Symbol) string {
	sb := NewStreamBuilder(symbol.Base + symbol.Quote)
	switch s := sub.(type) {
	case domain.TickerSubscription:
		return sb.Ticker()
	case domain.OrderBookSubscription:
		switch s.Depth {
		case 10:
			return sb.Depth10()
		case 20:
			return sb.Depth20()
		default:
			return sb.Depth100ms()
		}
	case domain.TradesSubscription:
		return sb.Trade()
	case domain.KlinesSubscription:
		return sb.Kline(binanceInterval(s.Interval))
	default:
		return ""
	}
}

// binanceInterval maps the canonical KlineInterval to Binance's own
// encoding, which matches it exactly for every value; 1w and 1M are
// spelled out explicitly because their case is significant ("1M" is a
// month, "1m" a minute).
func binanceInterval(i domain.KlineInterval) string {
	switch i {
	case domain.Interval1w:
		return "1w"
	case domain.Interval1M:
		return "1M"
	default:
		return string(i)
	}
}

// DecodeMessage parses one inbound frame. Subscription acks ({"result":
// null,"id":N}) and anything that isn't a combined-stream payload decode
// to ok=false so the session drops them instead of forwarding garbage.
func (c *Codec) DecodeMessage(raw []byte) (domain.MarketDataType, bool, error) {
	var env WSMessage
	if err := json.Unmarshal(raw, &env); err != nil || env.Stream == "" {
		return domain.MarketDataType{}, false, nil
	}

	streamType := ParseStreamType(env.Stream)
	switch streamType {
	case "ticker", "miniTicker":
		var t WSTicker
		if err := json.Unmarshal(env.Data, &t); err != nil {
			return domain.MarketDataType{}, false, err
		}
		d, err := t.ToDomain(exchange)
		if err != nil {
			return domain.MarketDataType{}, false, nil
		}
		return domain.MarketDataType{Ticker: d}, true, nil

	case "bookTicker":
		var t WSBookTicker
		if err := json.Unmarshal(env.Data, &t); err != nil {
			return domain.MarketDataType{}, false, err
		}
		d, err := t.ToDomain(exchange)
		if err != nil {
			return domain.MarketDataType{}, false, nil
		}
		return domain.MarketDataType{Ticker: d}, true, nil

	case "depth", "depth10", "depth20":
		var d WSDepthUpdate
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return domain.MarketDataType{}, false, err
		}
		bids, asks, err := d.ToDomain()
		if err != nil {
			return domain.MarketDataType{}, false, nil
		}
		ob := &domain.OrderBook{
			Exchange:     exchange,
			Symbol:       domain.NormalizeSymbol(d.Symbol),
			Bids:         bids,
			Asks:         asks,
			LastUpdateID: d.FinalUpdateID,
			Timestamp:    time.UnixMilli(d.EventTime),
		}
		return domain.MarketDataType{OrderBook: ob}, true, nil

	case "trade":
		var t WSTrade
		if err := json.Unmarshal(env.Data, &t); err != nil {
			return domain.MarketDataType{}, false, err
		}
		d, err := t.ToDomain(exchange)
		if err != nil {
			return domain.MarketDataType{}, false, nil
		}
		return domain.MarketDataType{Trade: d}, true, nil

	case "aggTrade":
		var t WSAggTrade
		if err := json.Unmarshal(env.Data, &t); err != nil {
			return domain.MarketDataType{}, false, err
		}
		d, err := t.ToDomain(exchange)
		if err != nil {
			return domain.MarketDataType{}, false, nil
		}
		return domain.MarketDataType{Trade: d}, true, nil

	default:
		if len(streamType) > 5 && streamType[:5] == "kline" {
			var k WSKline
			if err := json.Unmarshal(env.Data, &k); err != nil {
				return domain.MarketDataType{}, false, err
			}
			d, err := k.ToDomain(exchange)
			if err != nil {
				return domain.MarketDataType{}, false, nil
			}
			return domain.MarketDataType{Kline: d}, true, nil
		}
		return domain.MarketDataType{}, false, nil
	}
}
