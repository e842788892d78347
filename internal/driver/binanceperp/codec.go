package binanceperp

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/exactkit/exact/pkg/domain"
)

// Codec adapts Binance USDT-M futures' combined-stream WebSocket envelope
// to wscodec.Codec[domain.MarketDataType], mirroring binance/codec.go's
// shape. A ticker subscription also opens the "@markPrice" stream so
// FundingRateSource-style funding pushes reach the same channel as a
// FundingRate-tagged MarketDataType.
type Codec struct{}

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
	params := []string{stream}
	if _, ok := sub.(domain.TickerSubscription); ok {
		params = append(params, strings.ToLower(symbol.Base+symbol.Quote)+"@markPrice")
	}
	return json.Marshal(subscribeFrame{Method: method, Params: params, ID: int64(uuid.New().ID())})
}

func streamFor(sub domain.SubscriptionType, symbol domain.Symbol) string {
	lower := strings.ToLower(symbol.Base + symbol.Quote)
	switch s := sub.(type) {
	case domain.TickerSubscription:
		return lower + "@ticker"
	case domain.OrderBookSubscription:
		switch s.Depth {
		case 5:
			return lower + "@depth5@100ms"
		case 10:
			return lower + "@depth10@100ms"
		case 20:
			return lower + "@depth20@100ms"
		default:
			return lower + "@depth@100ms"
		}
	case domain.TradesSubscription:
		return lower + "@aggTrade"
	case domain.KlinesSubscription:
		return lower + "@kline_" + binanceInterval(s.Interval)
	default:
		return ""
	}
}

// DecodeMessage parses one combined-stream frame. Subscription acks and
// anything without a recognized suffix decode to ok=false.
func (c *Codec) DecodeMessage(raw []byte) (domain.MarketDataType, bool, error) {
	var env wsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Stream == "" {
		return domain.MarketDataType{}, false, nil
	}

	parts := strings.SplitN(env.Stream, "@", 2)
	if len(parts) != 2 {
		return domain.MarketDataType{}, false, nil
	}
	symbol := domain.NewSymbol(domain.NormalizeSymbol(parts[0]), "")
	kind := parts[1]

	switch {
	case kind == "ticker":
		var t wsTicker
		if err := json.Unmarshal(env.Data, &t); err != nil {
			return domain.MarketDataType{}, false, err
		}
		return domain.MarketDataType{Ticker: wsTickerToDomain(symbol, t)}, true, nil

	case kind == "aggTrade":
		var t wsAggTrade
		if err := json.Unmarshal(env.Data, &t); err != nil {
			return domain.MarketDataType{}, false, err
		}
		return domain.MarketDataType{Trade: wsAggTradeToDomain(symbol, t)}, true, nil

	case kind == "markPrice" || kind == "markPrice@1s":
		var m wsMarkPrice
		if err := json.Unmarshal(env.Data, &m); err != nil {
			return domain.MarketDataType{}, false, err
		}
		return domain.MarketDataType{FundingRate: wsMarkPriceToFundingRate(symbol, m)}, true, nil

	case strings.HasPrefix(kind, "kline_"):
		var k wsKline
		if err := json.Unmarshal(env.Data, &k); err != nil {
			return domain.MarketDataType{}, false, err
		}
		return domain.MarketDataType{Kline: wsKlineToDomain(symbol, k)}, true, nil

	case strings.HasPrefix(kind, "depth"):
		var d wsDepthUpdate
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return domain.MarketDataType{}, false, err
		}
		return domain.MarketDataType{OrderBook: wsDepthToDomain(symbol, d)}, true, nil
	}

	return domain.MarketDataType{}, false, nil
}
