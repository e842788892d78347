package backpack

import "encoding/json"

type market struct {
	Symbol         string `json:"symbol"`
	BaseSymbol     string `json:"baseSymbol"`
	QuoteSymbol    string `json:"quoteSymbol"`
	OrderBookState string `json:"orderBookState"`
	Filters        *struct {
		Quantity *struct {
			MinQuantity string `json:"minQuantity"`
			MaxQuantity string `json:"maxQuantity"`
		} `json:"quantity"`
		Price *struct {
			MinPrice string `json:"minPrice"`
			MaxPrice string `json:"maxPrice"`
		} `json:"price"`
	} `json:"filters"`
}

type tickerResponse struct {
	Symbol             string `json:"symbol"`
	LastPrice          string `json:"lastPrice"`
	PriceChange        string `json:"priceChange"`
	PriceChangePercent string `json:"priceChangePercent"`
	High               string `json:"high"`
	Low                string `json:"low"`
	Volume             string `json:"volume"`
	QuoteVolume        string `json:"quoteVolume"`
	Trades             string `json:"trades"`
}

type depthResponse struct {
	Bids         [][2]string `json:"bids"`
	Asks         [][2]string `json:"asks"`
	LastUpdateID string      `json:"lastUpdateId"`
}

type klineResponse struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Open   string `json:"open"`
	High   string `json:"high"`
	Low    string `json:"low"`
	Close  string `json:"close"`
	Volume string `json:"volume"`
	Trades string `json:"trades"`
}

type markPrice struct {
	Symbol              string `json:"symbol"`
	MarkPrice           string `json:"markPrice"`
	IndexPrice          string `json:"indexPrice"`
	FundingRate         string `json:"fundingRate"`
	NextFundingTimestamp int64  `json:"nextFundingTimestamp"`
}

type fundingRateEntry struct {
	Symbol              string `json:"symbol"`
	FundingRate         string `json:"fundingRate"`
	IntervalEndTimestamp int64  `json:"intervalEndTimestamp"`
}

type balanceEntry struct {
	Available string `json:"available"`
	Locked    string `json:"locked"`
}

type position struct {
	Symbol           string `json:"symbol"`
	PositionSide     string `json:"side"`
	NetQuantity      string `json:"netQuantity"`
	EntryPrice       string `json:"entryPrice"`
	MarkPrice        string `json:"markPrice"`
	PnlUnrealized    string `json:"pnlUnrealized"`
	LiquidationPrice string `json:"estLiquidationPrice"`
	Leverage         string `json:"imfFunction"`
}

type orderRequest struct {
	Symbol        string `json:"symbol"`
	Side          string `json:"side"`
	OrderType     string `json:"orderType"`
	Quantity      string `json:"quantity,omitempty"`
	Price         string `json:"price,omitempty"`
	TimeInForce   string `json:"timeInForce,omitempty"`
	ClientID      int64  `json:"clientId,omitempty"`
}

type orderResponse struct {
	ID        string `json:"id"`
	ClientID  int64  `json:"clientId,omitempty"`
	Symbol    string `json:"symbol"`
	Side      string `json:"side"`
	OrderType string `json:"orderType"`
	Quantity  string `json:"quantity"`
	Price     string `json:"price"`
	Status    string `json:"status"`
}

// wsMessage is Backpack's public push shape: unlike Binance/Bybit, each
// frame IS the payload, tagged by its own "e" field rather than wrapped in
// a stream envelope.
type wsMessage struct {
	Event  string          `json:"e"`
	Time   int64           `json:"E"`
	Symbol string          `json:"s"`
	Raw    json.RawMessage `json:"-"`
}

type wsTicker struct {
	Symbol string `json:"s"`
	Open   string `json:"o"`
	Close  string `json:"c"`
	High   string `json:"h"`
	Low    string `json:"l"`
	Volume string `json:"v"`
	QuoteVolume string `json:"V"`
	Trades int64  `json:"n"`
	Time   int64  `json:"E"`
}

type wsTrade struct {
	Symbol       string `json:"s"`
	Price        string `json:"p"`
	Quantity     string `json:"q"`
	TradeID      int64  `json:"t"`
	Timestamp    int64  `json:"T"`
	IsBuyerMaker bool   `json:"m"`
}

type wsKline struct {
	Symbol   string `json:"s"`
	Start    int64  `json:"t"`
	End      int64  `json:"T"`
	Open     string `json:"o"`
	Close    string `json:"c"`
	High     string `json:"h"`
	Low      string `json:"l"`
	Volume   string `json:"v"`
	Trades   int64  `json:"n"`
	IsClosed bool   `json:"X"`
}

type wsDepth struct {
	Symbol string      `json:"s"`
	Bids   [][2]string `json:"b"`
	Asks   [][2]string `json:"a"`
	FirstUpdateID int64 `json:"U"`
	LastUpdateID  int64 `json:"u"`
	Timestamp     int64 `json:"T"`
}

type wsMarkPrice struct {
	Symbol      string `json:"s"`
	MarkPrice   string `json:"p"`
	FundingRate string `json:"f"`
	IndexPrice  string `json:"i"`
	NextFundingTimestamp int64 `json:"n"`
	Time        int64  `json:"E"`
}

type subscribeFrame struct {
	Method string   `json:"method"`
	Params []string `json:"params"`
	ID     int64    `json:"id"`
}
