package hyperliquid

// infoRequest is the shared envelope every "/info" POST body uses; the
// "type" tag selects the variant and the rest of the fields are sent
// alongside it flat, matching Hyperliquid's untagged-by-convention wire
// format.
type infoRequest struct {
	Type      string `json:"type"`
	User      string `json:"user,omitempty"`
	Coin      string `json:"coin,omitempty"`
	Interval  string `json:"interval,omitempty"`
	StartTime int64  `json:"startTime,omitempty"`
	EndTime   int64  `json:"endTime,omitempty"`
}

type assetInfo struct {
	Name         string `json:"name"`
	SzDecimals   int    `json:"szDecimals"`
	MaxLeverage  int    `json:"maxLeverage"`
	OnlyIsolated bool   `json:"onlyIsolated"`
}

type universe struct {
	Universe []assetInfo `json:"universe"`
}

// assetCtx is the per-coin context returned alongside the universe by a
// "metaAndAssetCtxs" request: funding, mark/oracle price and open
// interest for every listed perpetual.
type assetCtx struct {
	Funding      string `json:"funding"`
	OpenInterest string `json:"openInterest"`
	OraclePx     string `json:"oraclePx"`
	MarkPx       string `json:"markPx"`
	MidPx        string `json:"midPx"`
	PrevDayPx    string `json:"prevDayPx"`
	DayNtlVlm    string `json:"dayNtlVlm"`
}

type candle struct {
	OpenTime  int64  `json:"t"`
	CloseTime int64  `json:"T"`
	Coin      string `json:"s"`
	Interval  string `json:"i"`
	Open      string `json:"o"`
	Close     string `json:"c"`
	High      string `json:"h"`
	Low       string `json:"l"`
	Volume    string `json:"v"`
	NumTrades int64  `json:"n"`
}

type l2Book struct {
	Coin   string        `json:"coin"`
	Levels [2][]l2Level  `json:"levels"`
	Time   int64         `json:"time"`
}

type l2Level struct {
	Px string `json:"px"`
	Sz string `json:"sz"`
	N  int    `json:"n"`
}

type marginSummary struct {
	AccountValue    string `json:"accountValue"`
	TotalMarginUsed string `json:"totalMarginUsed"`
	TotalNtlPos     string `json:"totalNtlPos"`
	TotalRawUsd     string `json:"totalRawUsd"`
}

type userState struct {
	AssetPositions []assetPosition `json:"assetPositions"`
	MarginSummary  marginSummary   `json:"marginSummary"`
	Withdrawable   string          `json:"withdrawable"`
}

type assetPosition struct {
	Position positionInfo `json:"position"`
	Type     string       `json:"type"`
}

type positionInfo struct {
	Coin             string   `json:"coin"`
	EntryPx          *string  `json:"entryPx"`
	Leverage         leverage `json:"leverage"`
	LiquidationPx    *string  `json:"liquidationPx"`
	MarginUsed       string   `json:"marginUsed"`
	PositionValue    string   `json:"positionValue"`
	Szi              string   `json:"szi"`
	UnrealizedPnl    string   `json:"unrealizedPnl"`
}

type leverage struct {
	Type  string `json:"type"`
	Value int    `json:"value"`
}

type fundingHistoryEntry struct {
	Coin        string `json:"coin"`
	FundingRate string `json:"fundingRate"`
	Premium     string `json:"premium"`
	Time        int64  `json:"time"`
}

// orderRequest is the per-order payload inside an "order" L1 action. The
// price is always sent as a string, including the sentinel values a
// market order substitutes to guarantee immediate (IOC) marketable fill.
type orderRequest struct {
	Coin       string    `json:"coin" msgpack:"coin"`
	IsBuy      bool      `json:"is_buy" msgpack:"is_buy"`
	Sz         string    `json:"sz" msgpack:"sz"`
	LimitPx    string    `json:"limit_px" msgpack:"limit_px"`
	OrderType  orderType `json:"order_type" msgpack:"order_type"`
	ReduceOnly bool      `json:"reduce_only" msgpack:"reduce_only"`
}

type orderType struct {
	Limit *limitOrder `json:"limit,omitempty" msgpack:"limit,omitempty"`
}

type limitOrder struct {
	Tif string `json:"tif" msgpack:"tif"`
}

type cancelRequest struct {
	Coin string `json:"coin" msgpack:"coin"`
	Oid  uint64 `json:"oid" msgpack:"oid"`
}

type orderAction struct {
	Type   string         `json:"type" msgpack:"type"`
	Orders []orderRequest `json:"orders" msgpack:"orders"`
}

type cancelAction struct {
	Type    string          `json:"type" msgpack:"type"`
	Cancels []cancelRequest `json:"cancels" msgpack:"cancels"`
}

type signedAction struct {
	Action    any    `json:"action"`
	Nonce     int64  `json:"nonce"`
	Signature sig    `json:"signature"`
	Vault     string `json:"vaultAddress,omitempty"`
}

type sig struct {
	R string `json:"r"`
	S string `json:"s"`
	V int    `json:"v"`
}

type exchangeResponseData struct {
	Type string          `json:"type"`
	Data *orderStatusSet `json:"data,omitempty"`
}

type orderStatusSet struct {
	Statuses []orderStatus `json:"statuses"`
}

type orderStatus struct {
	Resting *struct {
		Oid uint64 `json:"oid"`
	} `json:"resting,omitempty"`
	Filled *struct {
		AvgPx   string `json:"avgPx"`
		Oid     uint64 `json:"oid"`
		TotalSz string `json:"totalSz"`
	} `json:"filled,omitempty"`
	Error *string `json:"error,omitempty"`
}

type exchangeResponse struct {
	Status   string                `json:"status"`
	Response exchangeResponseData  `json:"response"`
}

// wsSubscription is the payload of a subscribe/unsubscribe control frame.
type wsSubscription struct {
	Type     string `json:"type"`
	Coin     string `json:"coin,omitempty"`
	Interval string `json:"interval,omitempty"`
}

type wsFrame struct {
	Method       string         `json:"method"`
	Subscription wsSubscription `json:"subscription"`
}

type wsEnvelope struct {
	Channel string `json:"channel"`
}

type wsAllMids struct {
	Mids map[string]string `json:"mids"`
}

type wsTrade struct {
	Coin string `json:"coin"`
	Side string `json:"side"`
	Px   string `json:"px"`
	Sz   string `json:"sz"`
	Time int64  `json:"time"`
	Tid  int64  `json:"tid"`
}

type wsBook struct {
	Coin   string       `json:"coin"`
	Levels [2][]l2Level `json:"levels"`
	Time   int64        `json:"time"`
}
