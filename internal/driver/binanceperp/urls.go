// Package binanceperp implements the Binance USDT-margined perpetual
// futures venue driver against the /fapi REST and fstream WebSocket APIs.
package binanceperp

const (
	exchange = "binance-perp"

	baseRestURL    = "https://fapi.binance.com"
	testnetRestURL = "https://testnet.binancefuture.com"

	baseWSURL    = "wss://fstream.binance.com/stream"
	testnetWSURL = "wss://stream.binancefuture.com/stream"

	endpointExchangeInfo  = "/fapi/v1/exchangeInfo"
	endpointKline         = "/fapi/v1/klines"
	endpointOrder         = "/fapi/v1/order"
	endpointAccountV2     = "/fapi/v2/account"
	endpointPositionRisk  = "/fapi/v2/positionRisk"
	endpointPremiumIndex  = "/fapi/v1/premiumIndex"
	endpointFundingRate   = "/fapi/v1/fundingRate"
	endpointServerTime    = "/fapi/v1/time"
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
