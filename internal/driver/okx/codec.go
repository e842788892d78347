package okx

import (
	"encoding/json"

	"github.com/exactkit/exact/pkg/domain"
)

// Codec adapts OKX's v5 public WebSocket protocol — subscribe/unsubscribe
// frames addressing a channel+instId pair, and channel-keyed data pushes —
// to wscodec.Codec[domain.MarketDataType].
type Codec struct{}

// NewCodec constructs the OKX market-data codec.
func NewCodec() *Codec { return &Codec{} }

func (c *Codec) EncodeSubscription(sub domain.SubscriptionType, symbol domain.Symbol) ([]byte, error) {
	return encodeFrame("subscribe", sub, symbol)
}

func (c *Codec) EncodeUnsubscription(sub domain.SubscriptionType, symbol domain.Symbol) ([]byte, error) {
	return encodeFrame("unsubscribe", sub, symbol)
}

func encodeFrame(op string, sub domain.SubscriptionType, symbol domain.Symbol) ([]byte, error) {
	channel := channelFor(sub)
	if channel == "" {
		return nil, nil
	}
	frame := wsSubscribeFrame{
		Op: op,
		Args: []wsSubArg{{
			Channel:  channel,
			InstType: instType,
			InstID:   okxInstID(symbol),
		}},
	}
	return json.Marshal(frame)
}

// channelFor names the channel for a subscription kind. OKX's candle
// channel is "candle<bar>", e.g. "candle1m" — unlike the original client,
// which hardcoded candle1m regardless of the requested interval, this
// driver encodes the actual requested bar.
func channelFor(sub domain.SubscriptionType) string {
	switch s := sub.(type) {
	case domain.TickerSubscription:
		return "tickers"
	case domain.TradesSubscription:
		return "trades"
	case domain.OrderBookSubscription:
		return "books"
	case domain.KlinesSubscription:
		return "candle" + okxBar(s.Interval)
	default:
		return ""
	}
}

// DecodeMessage parses one inbound frame. Event frames ("subscribe",
// "unsubscribe", "error", "login" acks) carry no arg/data and decode to
// ok=false. The literal "pong" text keepalive response also decodes to
// ok=false, matching the control-frame handling every other driver's
// codec leaves to the transport layer.
func (c *Codec) DecodeMessage(raw []byte) (domain.MarketDataType, bool, error) {
	if string(raw) == "pong" {
		return domain.MarketDataType{}, false, nil
	}

	var push wsPush
	if err := json.Unmarshal(raw, &push); err != nil {
		return domain.MarketDataType{}, false, nil
	}
	if push.Event != "" || push.Arg == nil || len(push.Data) == 0 {
		return domain.MarketDataType{}, false, nil
	}

	symbol := symbolFromInstID(push.Arg.InstID)

	switch {
	case push.Arg.Channel == "tickers":
		var rows []wsTickerData
		if err := json.Unmarshal(push.Data, &rows); err != nil || len(rows) == 0 {
			return domain.MarketDataType{}, false, err
		}
		return domain.MarketDataType{Ticker: wsTickerToDomain(symbol, rows[0])}, true, nil

	case push.Arg.Channel == "books" || push.Arg.Channel == "books5":
		var rows []wsOrderBookData
		if err := json.Unmarshal(push.Data, &rows); err != nil || len(rows) == 0 {
			return domain.MarketDataType{}, false, err
		}
		return domain.MarketDataType{OrderBook: wsOrderBookToDomain(symbol, rows[0])}, true, nil

	case push.Arg.Channel == "trades":
		var rows []wsTradeData
		if err := json.Unmarshal(push.Data, &rows); err != nil || len(rows) == 0 {
			return domain.MarketDataType{}, false, err
		}
		return domain.MarketDataType{Trade: wsTradeToDomain(symbol, rows[0])}, true, nil

	case len(push.Arg.Channel) > len("candle") && push.Arg.Channel[:6] == "candle":
		var rows []wsCandleData
		if err := json.Unmarshal(push.Data, &rows); err != nil || len(rows) == 0 {
			return domain.MarketDataType{}, false, err
		}
		interval := push.Arg.Channel[6:]
		return domain.MarketDataType{Kline: wsCandleToDomain(symbol, interval, rows[0])}, true, nil
	}

	return domain.MarketDataType{}, false, nil
}

func wsTickerToDomain(symbol domain.Symbol, t wsTickerData) *domain.Ticker {
	return tickerToDomain(ticker{
		InstID:    okxInstID(symbol),
		Last:      t.Last,
		AskPx:     t.AskPx,
		AskSz:     t.AskSz,
		BidPx:     t.BidPx,
		BidSz:     t.BidSz,
		Open24h:   t.Open24h,
		High24h:   t.High24h,
		Low24h:    t.Low24h,
		VolCcy24h: t.VolCcy24h,
		Vol24h:    t.Vol24h,
		Ts:        t.Ts,
	})
}

func wsOrderBookToDomain(symbol domain.Symbol, ob wsOrderBookData) *domain.OrderBook {
	return orderBookToDomain(symbol, orderBook{Asks: ob.Asks, Bids: ob.Bids, Ts: ob.Ts})
}

func wsTradeToDomain(symbol domain.Symbol, t wsTradeData) *domain.Trade {
	return tradeToDomain(trade{InstID: okxInstID(symbol), TradeID: t.TradeID, Px: t.Px, Sz: t.Sz, Side: t.Side, Ts: t.Ts})
}

func wsCandleToDomain(symbol domain.Symbol, interval string, row wsCandleData) *domain.Kline {
	k := candleToDomain(symbol, interval, [9]string(row))
	return &k
}
