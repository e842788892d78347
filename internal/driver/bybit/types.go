package bybit

import "encoding/json"

// envelope wraps every v5 REST response: {"retCode":0,"retMsg":"OK","result":{...}}.
type envelope[T any] struct {
	RetCode int    `json:"retCode"`
	RetMsg  string `json:"retMsg"`
	Result  T      `json:"result"`
}

type instrumentsResult struct {
	Category string       `json:"category"`
	List     []instrument `json:"list"`
}

type instrument struct {
	Symbol      string          `json:"symbol"`
	Status      string          `json:"status"`
	BaseCoin    string          `json:"baseCoin"`
	QuoteCoin   string          `json:"quoteCoin"`
	LotSizeFilter struct {
		BasePrecision string `json:"basePrecision"`
		MinOrderQty   string `json:"minOrderQty"`
		MaxOrderQty   string `json:"maxOrderQty"`
	} `json:"lotSizeFilter"`
	PriceFilter struct {
		TickSize string `json:"tickSize"`
	} `json:"priceFilter"`
}

type klineResult struct {
	Category string     `json:"category"`
	Symbol   string     `json:"symbol"`
	List     [][7]string `json:"list"`
}

type orderCreateResult struct {
	OrderID     string `json:"orderId"`
	OrderLinkID string `json:"orderLinkId"`
}

type walletBalanceResult struct {
	List []struct {
		AccountType string        `json:"accountType"`
		Coin        []coinBalance `json:"coin"`
	} `json:"list"`
}

type coinBalance struct {
	Coin            string `json:"coin"`
	WalletBalance   string `json:"walletBalance"`
	Locked          string `json:"locked"`
	AvailableToWithdraw string `json:"availableToWithdraw"`
}

// wsTicker mirrors the "tickers.<symbol>" topic's data object.
type wsTicker struct {
	Symbol       string `json:"symbol"`
	LastPrice    string `json:"lastPrice"`
	HighPrice24h string `json:"highPrice24h"`
	LowPrice24h  string `json:"lowPrice24h"`
	Volume24h    string `json:"volume24h"`
	Turnover24h  string `json:"turnover24h"`
	Bid1Price    string `json:"bid1Price"`
	Bid1Size     string `json:"bid1Size"`
	Ask1Price    string `json:"ask1Price"`
	Ask1Size     string `json:"ask1Size"`
}

// wsTrade mirrors one element of the "publicTrade.<symbol>" topic's data array.
type wsTrade struct {
	ID       string `json:"i"`
	Price    string `json:"p"`
	Size     string `json:"v"`
	Side     string `json:"S"`
	Time     int64  `json:"T"`
	BlockID  string `json:"BT,omitempty"`
}

// wsKline mirrors one element of the "kline.<interval>.<symbol>" topic's data array.
type wsKline struct {
	Start   int64  `json:"start"`
	End     int64  `json:"end"`
	Open    string `json:"open"`
	High    string `json:"high"`
	Low     string `json:"low"`
	Close   string `json:"close"`
	Volume  string `json:"volume"`
	Confirm bool   `json:"confirm"`
}

// wsOrderBook mirrors the "orderbook.<depth>.<symbol>" topic's data object.
type wsOrderBook struct {
	Symbol string     `json:"s"`
	Bids   [][2]string `json:"b"`
	Asks   [][2]string `json:"a"`
	UpdateID int64    `json:"u"`
	Seq      int64    `json:"seq"`
}

// wsEnvelope is the common shape of every public WebSocket push: a topic
// name and a JSON data payload whose shape depends on the topic.
type wsEnvelope struct {
	Topic string          `json:"topic"`
	Type  string          `json:"type"`
	TS    int64           `json:"ts"`
	Data  json.RawMessage `json:"data"`
}
