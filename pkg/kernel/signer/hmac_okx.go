package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/url"
	"time"

	"github.com/exactkit/exact/pkg/errors"
	"github.com/exactkit/exact/pkg/secret"
)

// HMACOKX signs requests the way OKX's v5 API expects: the signature is
// base64(HMAC-SHA256(timestamp + method + requestPath + body)), where
// timestamp is an ISO-8601 string (not Unix millis) and requestPath
// includes the query string for GET requests. Four headers carry the
// result, including the account passphrase set at API-key creation time.
type HMACOKX struct {
	apiKey     string
	apiSecret  secret.String
	passphrase secret.String
}

// NewHMACOKX constructs an OKX-style signer.
func NewHMACOKX(apiKey string, apiSecret, passphrase secret.String) *HMACOKX {
	return &HMACOKX{apiKey: apiKey, apiSecret: apiSecret, passphrase: passphrase}
}

// Sign implements signer.Signer. endpoint must be the request path
// including its query string for GET requests, per OKX's signing spec.
func (s *HMACOKX) Sign(method, endpoint string, query url.Values, body []byte, timestampMs int64) (map[string]string, url.Values, error) {
	ts := time.UnixMilli(timestampMs).UTC().Format("2006-01-02T15:04:05.000Z")

	requestPath := endpoint
	if method == "GET" && query != nil && len(query) > 0 {
		requestPath += "?" + query.Encode()
	}

	mac := hmac.New(sha256.New, []byte(s.apiSecret.Expose()))
	mac.Write([]byte(ts + method + requestPath + string(body)))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	headers := map[string]string{
		"OK-ACCESS-KEY":        s.apiKey,
		"OK-ACCESS-SIGN":       signature,
		"OK-ACCESS-TIMESTAMP":  ts,
		"OK-ACCESS-PASSPHRASE": s.passphrase.Expose(),
	}
	return headers, query, nil
}

// ValidateCredentials reports whether the key, secret, and passphrase are
// all set; OKX rejects signed requests missing any of the three.
func (s *HMACOKX) ValidateCredentials() error {
	if s.apiKey == "" {
		return errors.NewConfigurationError("api_key", "okx API key is required")
	}
	if s.apiSecret.IsEmpty() {
		return errors.NewConfigurationError("api_secret", "okx API secret is required")
	}
	if s.passphrase.IsEmpty() {
		return errors.NewConfigurationError("passphrase", "okx passphrase is required")
	}
	return nil
}
