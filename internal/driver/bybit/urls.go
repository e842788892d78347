// Package bybit implements the Bybit spot venue driver against the v5
// unified API.
package bybit

const (
	exchange = "bybit"

	baseRestURL = "https://api.bybit.com"
	testnetRestURL = "https://api-testnet.bybit.com"

	baseWSURL    = "wss://stream.bybit.com/v5/public/spot"
	testnetWSURL = "wss://stream-testnet.bybit.com/v5/public/spot"

	category = "spot"

	endpointInstruments = "/v5/market/instruments-info"
	endpointKline        = "/v5/market/kline"
	endpointOrderCreate  = "/v5/order/create"
	endpointOrderCancel  = "/v5/order/cancel"
	endpointWalletBal    = "/v5/account/wallet-balance"
	endpointServerTime   = "/v5/market/time"
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
