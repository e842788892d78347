// Package hyperliquid implements the Hyperliquid perpetuals venue driver.
// Unlike every other venue in this module, Hyperliquid has no per-request
// API key/secret: trading requests are EIP-712-signed with an Ethereum
// wallet private key, and market data lives entirely behind a single
// "/info" POST endpoint rather than a REST-ful resource tree.
package hyperliquid

const (
	exchange = "hyperliquid"

	mainnetRestURL = "https://api.hyperliquid.xyz"
	testnetRestURL = "https://api.hyperliquid-testnet.xyz"
	mainnetWSURL   = "wss://api.hyperliquid.xyz/ws"
	testnetWSURL   = "wss://api.hyperliquid-testnet.xyz/ws"

	endpointInfo     = "/info"
	endpointExchange = "/exchange"

	// quoteAsset is synthetic: Hyperliquid perpetuals are USD-margined and
	// quoted against a notional "USD", not an on-chain quote asset.
	quoteAsset = "USD"
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

func wsURL(testnet bool) string {
	if testnet {
		return testnetWSURL
	}
	return mainnetWSURL
}
