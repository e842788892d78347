package bybitperp

import "encoding/json"

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
	Symbol    string `json:"symbol"`
	Status    string `json:"status"`
	BaseCoin  string `json:"baseCoin"`
	QuoteCoin string `json:"quoteCoin"`
	LotSizeFilter struct {
		QtyStep     string `json:"qtyStep"`
		MinOrderQty string `json:"minOrderQty"`
		MaxOrderQty string `json:"maxOrderQty"`
	} `json:"lotSizeFilter"`
	PriceFilter struct {
		TickSize string `json:"tickSize"`
	} `json:"priceFilter"`
}

type klineResult struct {
	Category string      `json:"category"`
	Symbol   string      `json:"symbol"`
	List     [][7]string `json:"list"`
}

type tickersResult struct {
	Category string         `json:"category"`
	List     []tickerInfo   `json:"list"`
}

// tickerInfo is the v5 linear-category ticker, which doubles as this
// venue's funding-rate source: fundingRate/nextFundingTime ride alongside
// the regular price fields.
type tickerInfo struct {
	Symbol          string `json:"symbol"`
	LastPrice       string `json:"lastPrice"`
	HighPrice24h    string `json:"highPrice24h"`
	LowPrice24h     string `json:"lowPrice24h"`
	Volume24h       string `json:"volume24h"`
	Turnover24h     string `json:"turnover24h"`
	Bid1Price       string `json:"bid1Price"`
	Bid1Size        string `json:"bid1Size"`
	Ask1Price       string `json:"ask1Price"`
	Ask1Size        string `json:"ask1Size"`
	FundingRate     string `json:"fundingRate"`
	NextFundingTime string `json:"nextFundingTime"`
	MarkPrice       string `json:"markPrice"`
	IndexPrice      string `json:"indexPrice"`
}

type fundingHistoryResult struct {
	Category string        `json:"category"`
	List     []fundingRate `json:"list"`
}

type fundingRate struct {
	Symbol              string `json:"symbol"`
	FundingRate         string `json:"fundingRate"`
	FundingRateTimestamp string `json:"fundingRateTimestamp"`
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
	Coin                string `json:"coin"`
	WalletBalance       string `json:"walletBalance"`
	AvailableToWithdraw string `json:"availableToWithdraw"`
}

type positionListResult struct {
	List []positionInfo `json:"list"`
}

type positionInfo struct {
	Symbol         string `json:"symbol"`
	Side           string `json:"side"`
	Size           string `json:"size"`
	AvgPrice       string `json:"avgPrice"`
	MarkPrice      string `json:"markPrice"`
	UnrealisedPnl  string `json:"unrealisedPnl"`
	Leverage       string `json:"leverage"`
	LiqPrice       string `json:"liqPrice"`
}

type wsTicker struct {
	Symbol          string `json:"symbol"`
	LastPrice       string `json:"lastPrice"`
	HighPrice24h    string `json:"highPrice24h"`
	LowPrice24h     string `json:"lowPrice24h"`
	Volume24h       string `json:"volume24h"`
	Turnover24h     string `json:"turnover24h"`
	Bid1Price       string `json:"bid1Price"`
	Bid1Size        string `json:"bid1Size"`
	Ask1Price       string `json:"ask1Price"`
	Ask1Size        string `json:"ask1Size"`
	FundingRate     string `json:"fundingRate"`
	NextFundingTime string `json:"nextFundingTime"`
	MarkPrice       string `json:"markPrice"`
	IndexPrice      string `json:"indexPrice"`
}

type wsTrade struct {
	ID    string `json:"i"`
	Price string `json:"p"`
	Size  string `json:"v"`
	Side  string `json:"S"`
	Time  int64  `json:"T"`
}

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

type wsOrderBook struct {
	Symbol   string      `json:"s"`
	Bids     [][2]string `json:"b"`
	Asks     [][2]string `json:"a"`
	UpdateID int64       `json:"u"`
}

type wsEnvelope struct {
	Topic string          `json:"topic"`
	Type  string          `json:"type"`
	TS    int64           `json:"ts"`
	Data  json.RawMessage `json:"data"`
}
