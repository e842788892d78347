// Package signer provides the polymorphic request-signing abstraction
// shared by every venue driver. Each venue authenticates REST (and, for
// some, WebSocket) requests differently, but all of them reduce to the
// same shape: given a request's method, path, query and body, produce the
// headers and/or query parameters that prove the caller's identity.
package signer

import "net/url"

// Signer authenticates an outbound request. Implementations must be safe
// for concurrent use; a single Signer is shared across every request a
// driver makes.
//
// method is the HTTP verb ("GET", "POST", ...). endpoint is the request
// path, not including the host (e.g. "/api/v3/order"). query holds the
// request's query parameters before signing; implementations may add to
// it (e.g. Binance adds "timestamp" and "recvWindow"). body is the raw
// request body, or nil for requests without one. timestampMs is the
// caller's clock-synchronized timestamp in Unix milliseconds.
//
// Sign returns any headers that must be attached to the request (API key,
// signature, passphrase, ...) and the final query parameters to send
// (which may be query with signing fields appended). A non-nil error means
// the request must not be sent.
type Signer interface {
	Sign(method, endpoint string, query url.Values, body []byte, timestampMs int64) (headers map[string]string, signedQuery url.Values, err error)

	// ValidateCredentials reports whether the signer has everything it
	// needs to produce a valid signature, without making any network call.
	ValidateCredentials() error
}
