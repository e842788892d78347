// Package okx implements the OKX spot venue driver against the v5 public
// and private REST/WebSocket API.
package okx

const (
	exchange = "okx"

	// OKX has no separate testnet host; every environment, real or demo,
	// is reached through www.okx.com (a demo account is a header flag on
	// the request, not a different base URL).
	restBaseURL = "https://www.okx.com"
	wsBaseURL   = "wss://ws.okx.com:8443/ws/v5/public"

	instType = "SPOT"

	endpointTime        = "/api/v5/public/time"
	endpointInstruments = "/api/v5/public/instruments"
	endpointTicker      = "/api/v5/market/ticker"
	endpointTickers     = "/api/v5/market/tickers"
	endpointOrderBook   = "/api/v5/market/books"
	endpointTrades      = "/api/v5/market/trades"
	endpointCandles     = "/api/v5/market/candles"
	endpointOrder       = "/api/v5/trade/order"
	endpointCancelOrder = "/api/v5/trade/cancel-order"
	endpointOrdersPend  = "/api/v5/trade/orders-pending"
	endpointBalance     = "/api/v5/account/balance"
)

func restURL(override string) string {
	if override != "" {
		return override
	}
	return restBaseURL
}

func wsURL(override string) string {
	if override != "" {
		return override
	}
	return wsBaseURL
}
