// Package bybitperp implements the Bybit USDT-margined perpetual futures
// venue driver against the v5 unified API's "linear" category.
package bybitperp

const (
	exchange = "bybit-perp"

	baseRestURL    = "https://api.bybit.com"
	testnetRestURL = "https://api-testnet.bybit.com"

	baseWSURL    = "wss://stream.bybit.com/v5/public/linear"
	testnetWSURL = "wss://stream-testnet.bybit.com/v5/public/linear"

	category = "linear"

	endpointInstruments   = "/v5/market/instruments-info"
	endpointKline         = "/v5/market/kline"
	endpointTickers       = "/v5/market/tickers"
	endpointFundingHistory = "/v5/market/funding/history"
	endpointOrderCreate   = "/v5/order/create"
	endpointOrderCancel   = "/v5/order/cancel"
	endpointWalletBal     = "/v5/account/wallet-balance"
	endpointPositionList  = "/v5/position/list"
)

func restURL(testnet bool) string {
	if testnet {
		return testnetRestURL
	}
	return baseRestURL
}

func wsURL(testnet bool) string {
	if testnet {
		return testnetWSURL
	}
	return baseWSURL
}
