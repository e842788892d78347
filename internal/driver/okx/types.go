package okx

import "encoding/json"

// envelope wraps every v5 REST response: {"code":"0","msg":"","data":[...]}.
// A non-"0" code signals an error even on a 200 status.
type envelope[T any] struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
	Data T      `json:"data"`
}

type instrument struct {
	InstType  string `json:"instType"`
	InstID    string `json:"instId"`
	BaseCcy   string `json:"baseCcy"`
	QuoteCcy  string `json:"quoteCcy"`
	TickSz    string `json:"tickSz"`
	LotSz     string `json:"lotSz"`
	MinSz     string `json:"minSz"`
	State     string `json:"state"`
}

type ticker struct {
	InstType  string `json:"instType"`
	InstID    string `json:"instId"`
	Last      string `json:"last"`
	LastSz    string `json:"lastSz"`
	AskPx     string `json:"askPx"`
	AskSz     string `json:"askSz"`
	BidPx     string `json:"bidPx"`
	BidSz     string `json:"bidSz"`
	Open24h   string `json:"open24h"`
	High24h   string `json:"high24h"`
	Low24h    string `json:"low24h"`
	VolCcy24h string `json:"volCcy24h"`
	Vol24h    string `json:"vol24h"`
	Ts        string `json:"ts"`
}

type orderBook struct {
	Asks [][]string `json:"asks"`
	Bids [][]string `json:"bids"`
	Ts   string     `json:"ts"`
}

type trade struct {
	InstID  string `json:"instId"`
	TradeID string `json:"tradeId"`
	Px      string `json:"px"`
	Sz      string `json:"sz"`
	Side    string `json:"side"`
	Ts      string `json:"ts"`
}

// candle is one element of /market/candles' raw array-of-arrays response:
// [ts, o, h, l, c, vol, volCcy, volCcyQuote, confirm].
type candle [9]string

type orderRequestBody struct {
	InstID  string `json:"instId"`
	TdMode  string `json:"tdMode"`
	Side    string `json:"side"`
	OrdType string `json:"ordType"`
	Sz      string `json:"sz"`
	Px      string `json:"px,omitempty"`
	ClOrdID string `json:"clOrdId,omitempty"`
}

type orderResult struct {
	OrdID   string `json:"ordId"`
	ClOrdID string `json:"clOrdId"`
	SCode   string `json:"sCode"`
	SMsg    string `json:"sMsg"`
}

type orderCancelBody struct {
	InstID string `json:"instId"`
	OrdID  string `json:"ordId,omitempty"`
}

type pendingOrder struct {
	InstID  string `json:"instId"`
	OrdID   string `json:"ordId"`
	ClOrdID string `json:"clOrdId"`
	Side    string `json:"side"`
	OrdType string `json:"ordType"`
	State   string `json:"state"`
	Px      string `json:"px"`
	Sz      string `json:"sz"`
	AccFillSz string `json:"accFillSz"`
}

type balanceDetail struct {
	Ccy       string `json:"ccy"`
	AvailBal  string `json:"availBal"`
	FrozenBal string `json:"frozenBal"`
	Bal       string `json:"bal"`
}

type balanceAccount struct {
	Details []balanceDetail `json:"details"`
}

// wsSubscribeFrame is OKX's WS subscribe/unsubscribe request envelope:
// {"op":"subscribe","args":[{"channel":...,"instType":"SPOT","instId":...}]}.
type wsSubscribeFrame struct {
	Op   string         `json:"op"`
	Args []wsSubArg     `json:"args"`
}

type wsSubArg struct {
	Channel  string `json:"channel"`
	InstType string `json:"instType,omitempty"`
	InstID   string `json:"instId,omitempty"`
}

// wsPush is the shared shape of an inbound market-data push:
// {"arg":{"channel":...,"instId":...},"data":[...]}. Event frames
// ({"event":"subscribe"|"error"|"login",...}) decode with Event non-empty
// and Arg/Data empty.
type wsPush struct {
	Event   string          `json:"event,omitempty"`
	Code    string          `json:"code,omitempty"`
	Msg     string          `json:"msg,omitempty"`
	Arg     *wsSubArg       `json:"arg,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type wsTickerData struct {
	InstID    string `json:"instId"`
	Last      string `json:"last"`
	AskPx     string `json:"askPx"`
	AskSz     string `json:"askSz"`
	BidPx     string `json:"bidPx"`
	BidSz     string `json:"bidSz"`
	Open24h   string `json:"open24h"`
	High24h   string `json:"high24h"`
	Low24h    string `json:"low24h"`
	VolCcy24h string `json:"volCcy24h"`
	Vol24h    string `json:"vol24h"`
	Ts        string `json:"ts"`
}

type wsOrderBookData struct {
	Asks [][]string `json:"asks"`
	Bids [][]string `json:"bids"`
	Ts   string     `json:"ts"`
}

type wsTradeData struct {
	InstID  string `json:"instId"`
	TradeID string `json:"tradeId"`
	Px      string `json:"px"`
	Sz      string `json:"sz"`
	Side    string `json:"side"`
	Ts      string `json:"ts"`
}

type wsCandleData [9]string
