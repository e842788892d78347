// Package paradex implements the Paradex StarkNet-settled perpetual venue
// driver. The base URL comes from the config override when set; otherwise
// the Testnet flag selects the testnet host, and without it the mainnet
// host is used.
package paradex

const (
	exchange = "paradex"

	mainnetRestURL = "https://api.prod.paradex.trade/v1"
	testnetRestURL = "https://api.testnet.paradex.trade/v1"

	mainnetWSURL = "wss://ws.api.prod.paradex.trade/v1"
	testnetWSURL = "wss://ws.api.testnet.paradex.trade/v1"

	endpointMarkets            = "/markets"
	endpointKlines             = "/markets/klines"
	endpointOrders             = "/orders"
	endpointAccountBalance     = "/balance"
	endpointPositions          = "/positions"
	endpointFundingData        = "/funding/data"
	endpointFundingHistory     = "/funding/history"
)

func restURL(override string, testnet bool) string {
	if override != "" {
		return override
	}
	if testnet {
		return testnetRestURL
	}
	return mainnetRestURL
}

func wsURL(override string, testnet bool) string {
	if override != "" {
		return override
	}
	if testnet {
		return testnetWSURL
	}
	return mainnetWSURL
}
