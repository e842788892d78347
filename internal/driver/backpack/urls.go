// Package backpack implements the Backpack Exchange venue driver, signed
// with Ed25519 rather than HMAC.
package backpack

const (
	exchange = "backpack"

	// baseRestURL is the only REST host Backpack exposes; it has no
	// separate testnet environment.
	baseRestURL = "https://api.backpack.exchange"
	baseWSURL   = "wss://ws.backpack.exchange"

	endpointMarkets     = "/api/v1/markets"
	endpointTicker      = "/api/v1/ticker"
	endpointDepth       = "/api/v1/depth"
	endpointKlines      = "/api/v1/klines"
	endpointMarkPrice   = "/api/v1/markPrices"
	endpointFundingHist = "/api/v1/fundingRates"

	// instructionOrderExecute and friends are the instruction names
	// Backpack signs over for private calls; they double as the endpoint
	// argument passed to rest.Client so NeedsSigning and the signer agree
	// on what to sign.
	instructionOrderExecute  = "orderExecute"
	instructionOrderCancel   = "orderCancel"
	instructionBalanceQuery  = "balanceQuery"
	instructionPositionQuery = "positionQuery"
)

func restURL(override string) string {
	if override != "" {
		return override
	}
	return baseRestURL
}
