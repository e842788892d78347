package binanceperp

import "encoding/json"

type exchangeInfo struct {
	Symbols []symbolInfo `json:"symbols"`
}

type symbolInfo struct {
	Symbol           string           `json:"symbol"`
	Status           string           `json:"status"`
	BaseAsset        string           `json:"baseAsset"`
	QuoteAsset       string           `json:"quoteAsset"`
	PricePrecision   int              `json:"pricePrecision"`
	QuantityPrecision int             `json:"quantityPrecision"`
	Filters          []map[string]any `json:"filters"`
}

// wireKline mirrors one element of GET /fapi/v1/klines' array-of-arrays.
type wireKline [12]any

type orderResponse struct {
	Symbol        string `json:"symbol"`
	OrderID       int64  `json:"orderId"`
	ClientOrderID string `json:"clientOrderId"`
	UpdateTime    int64  `json:"updateTime"`
	Price         string `json:"price"`
	OrigQty       string `json:"origQty"`
	ExecutedQty   string `json:"executedQty"`
	Status        string `json:"status"`
	Side          string `json:"side"`
	Type          string `json:"type"`
}

type accountV2 struct {
	Assets []accountAsset `json:"assets"`
}

type accountAsset struct {
	Asset            string `json:"asset"`
	WalletBalance    string `json:"walletBalance"`
	AvailableBalance string `json:"availableBalance"`
}

type positionRisk struct {
	Symbol           string `json:"symbol"`
	PositionAmt      string `json:"positionAmt"`
	EntryPrice       string `json:"entryPrice"`
	MarkPrice        string `json:"markPrice"`
	UnRealizedProfit string `json:"unRealizedProfit"`
	Leverage         string `json:"leverage"`
	LiquidationPrice string `json:"liquidationPrice"`
}

type premiumIndex struct {
	Symbol          string `json:"symbol"`
	MarkPrice       string `json:"markPrice"`
	IndexPrice      string `json:"indexPrice"`
	LastFundingRate string `json:"lastFundingRate"`
	NextFundingTime int64  `json:"nextFundingTime"`
}

type fundingRateEntry struct {
	Symbol      string `json:"symbol"`
	FundingRate string `json:"fundingRate"`
	FundingTime int64  `json:"fundingTime"`
}

// wsEnvelope is the combined-stream wrapper: {"stream":name,"data":{...}}.
type wsEnvelope struct {
	Stream string          `json:"stream"`
	Data   json.RawMessage `json:"data"`
}

type wsTicker struct {
	Symbol      string `json:"s"`
	LastPrice   string `json:"c"`
	BidPrice    string `json:"b"`
	BidQty      string `json:"B"`
	AskPrice    string `json:"a"`
	AskQty      string `json:"A"`
	HighPrice   string `json:"h"`
	LowPrice    string `json:"l"`
	Volume      string `json:"v"`
	QuoteVolume string `json:"q"`
	EventTime   int64  `json:"E"`
}

type wsAggTrade struct {
	Symbol    string `json:"s"`
	TradeID   int64  `json:"a"`
	Price     string `json:"p"`
	Quantity  string `json:"q"`
	TradeTime int64  `json:"T"`
	IsBuyerMM bool   `json:"m"`
}

type wsKline struct {
	Symbol string     `json:"s"`
	Kline  wsKlinePart `json:"k"`
}

type wsKlinePart struct {
	StartTime int64  `json:"t"`
	EndTime   int64  `json:"T"`
	Interval  string `json:"i"`
	Open      string `json:"o"`
	Close     string `json:"c"`
	High      string `json:"h"`
	Low       string `json:"l"`
	Volume    string `json:"v"`
	QuoteVol  string `json:"q"`
	IsClosed  bool   `json:"x"`
}

type wsDepthUpdate struct {
	Symbol        string     `json:"s"`
	FinalUpdateID int64      `json:"u"`
	Bids          [][2]string `json:"b"`
	Asks          [][2]string `json:"a"`
	EventTime     int64      `json:"E"`
}

// wsMarkPrice mirrors the "<symbol>@markPrice" stream push, the venue's
// WebSocket-delivered funding rate signal.
type wsMarkPrice struct {
	Symbol          string `json:"s"`
	MarkPrice       string `json:"p"`
	IndexPrice      string `json:"i"`
	FundingRate     string `json:"r"`
	NextFundingTime int64  `json:"T"`
	EventTime       int64  `json:"E"`
}
