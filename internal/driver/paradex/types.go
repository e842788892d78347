package paradex

import "encoding/json"

// market mirrors one element of GET /markets' response list.
type market struct {
	Symbol            string `json:"symbol"`
	BaseCurrency      string `json:"base_currency"`
	QuoteCurrency     string `json:"quote_currency"`
	Status             string `json:"status"`
	OrderSizeIncrement string `json:"order_size_increment"`
	PriceTickSize      string `json:"price_tick_size"`
	MinOrderSize       string `json:"min_order_size"`
	MaxOrderSize       string `json:"max_order_size"`
}

type marketsResponse struct {
	Results []market `json:"results"`
}

// klineRow mirrors one candle row from GET /markets/klines.
type klineRow struct {
	OpenTime int64  `json:"open_time"`
	Open     string `json:"open"`
	High     string `json:"high"`
	Low      string `json:"low"`
	Close    string `json:"close"`
	Volume   string `json:"volume"`
}

type klinesResponse struct {
	Results []klineRow `json:"results"`
}

// orderRequestBody is the POST /orders payload. Paradex identifies orders
// by a client-assigned id rather than trusting the venue to mint one, so
// every order carries a generated UUID when the caller doesn't supply its
// own (spec §5).
type orderRequestBody struct {
	Market      string `json:"market"`
	Side        string `json:"side"`
	Type        string `json:"type"`
	Size        string `json:"size"`
	Price       string `json:"price,omitempty"`
	ClientID    string `json:"client_id"`
	Instruction string `json:"instruction,omitempty"`
}

type orderResponse struct {
	ID        string `json:"id"`
	ClientID  string `json:"client_id"`
	Market    string `json:"market"`
	Side      string `json:"side"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	Price     string `json:"price"`
	Size      string `json:"size"`
}

type balanceEntry struct {
	Token     string `json:"token"`
	Available string `json:"available"`
	Total     string `json:"total"`
}

type balancesResponse struct {
	Results []balanceEntry `json:"results"`
}

type positionEntry struct {
	Market           string `json:"market"`
	Side             string `json:"side"`
	Size             string `json:"size"`
	AverageEntryPrice string `json:"average_entry_price"`
	MarkPrice         string `json:"mark_price"`
	UnrealizedPnl     string `json:"unrealized_pnl"`
	Leverage          string `json:"leverage"`
	LiquidationPrice  string `json:"liquidation_price"`
}

type positionsResponse struct {
	Results []positionEntry `json:"results"`
}

type fundingDataEntry struct {
	Market      string `json:"market"`
	FundingRate string `json:"funding_rate"`
	MarkPrice   string `json:"mark_price"`
	OraclePrice string `json:"oracle_price"`
	CreatedAt   int64  `json:"created_at"`
}

type fundingDataResponse struct {
	Results []fundingDataEntry `json:"results"`
}

// wsSubscribeFrame mirrors the channel@symbol subscription shape
// original_source's paradex module builds, e.g. {"method":"SUBSCRIBE",
// "params":["ticker@BTC-USD-PERP"],"id":1}.
type wsSubscribeFrame struct {
	Method string   `json:"method"`
	Params []string `json:"params"`
	ID     int      `json:"id"`
}

// wsEnvelope is the common shape of a market-data push:
// {"channel":"ticker@BTC-USD-PERP","data":{...}}.
type wsEnvelope struct {
	Channel string          `json:"channel"`
	Data    json.RawMessage `json:"data"`
	Result  json.RawMessage `json:"result"`
	ID      *int            `json:"id"`
}

type wsTicker struct {
	LastPrice          string `json:"last_price"`
	BidPrice           string `json:"bid_price"`
	BidQuantity        string `json:"bid_quantity"`
	AskPrice           string `json:"ask_price"`
	AskQuantity        string `json:"ask_quantity"`
	HighPrice          string `json:"high_price"`
	LowPrice           string `json:"low_price"`
	Volume             string `json:"volume"`
	QuoteVolume        string `json:"quote_volume"`
	PriceChangePercent string `json:"price_change_percent"`
}

type wsOrderBookLevel [2]string

type wsOrderBook struct {
	Bids         []wsOrderBookLevel `json:"bids"`
	Asks         []wsOrderBookLevel `json:"asks"`
	LastUpdateID int64              `json:"last_update_id"`
}

type wsTrade struct {
	ID           string `json:"id"`
	Price        string `json:"price"`
	Size         string `json:"size"`
	Side         string `json:"side"`
	Timestamp    int64  `json:"timestamp"`
}

type wsKline struct {
	OpenTime  int64  `json:"open_time"`
	CloseTime int64  `json:"close_time"`
	Open      string `json:"open"`
	High      string `json:"high"`
	Low       string `json:"low"`
	Close     string `json:"close"`
	Volume    string `json:"volume"`
	Final     bool   `json:"final"`
}
