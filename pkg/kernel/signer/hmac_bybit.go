package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strconv"

	"github.com/exactkit/exact/pkg/errors"
	"github.com/exactkit/exact/pkg/secret"
)

// HMACBybit signs requests the way Bybit's v5 unified API expects: the
// signature is HMAC-SHA256 over timestamp|apiKey|recvWindow|payload, where
// payload is the query string for GET and the raw JSON body for POST.
// Four headers carry the result: X-BAPI-API-KEY, X-BAPI-SIGN,
// X-BAPI-TIMESTAMP, X-BAPI-RECV-WINDOW.
type HMACBybit struct {
	apiKey     string
	apiSecret  secret.String
	recvWindow int64
}

// NewHMACBybit constructs a Bybit-style signer. If recvWindow is 0, 5000ms
// is used, matching Bybit's own default.
func NewHMACBybit(apiKey string, apiSecret secret.String, recvWindow int64) *HMACBybit {
	if recvWindow <= 0 {
		recvWindow = 5000
	}
	return &HMACBybit{apiKey: apiKey, apiSecret: apiSecret, recvWindow: recvWindow}
}

// Sign implements signer.Signer.
func (s *HMACBybit) Sign(method, _ string, query url.Values, body []byte, timestampMs int64) (map[string]string, url.Values, error) {
	ts := strconv.FormatInt(timestampMs, 10)
	recv := strconv.FormatInt(s.recvWindow, 10)

	payload := string(body)
	if method == "GET" && query != nil {
		payload = query.Encode()
	}

	mac := hmac.New(sha256.New, []byte(s.apiSecret.Expose()))
	mac.Write([]byte(ts + s.apiKey + recv + payload))
	signature := hex.EncodeToString(mac.Sum(nil))

	headers := map[string]string{
		"X-BAPI-API-KEY":     s.apiKey,
		"X-BAPI-SIGN":        signature,
		"X-BAPI-TIMESTAMP":   ts,
		"X-BAPI-RECV-WINDOW": recv,
	}
	return headers, query, nil
}

// ValidateCredentials reports whether both the API key and secret are set.
func (s *HMACBybit) ValidateCredentials() error {
	if s.apiKey == "" {
		return errors.NewConfigurationError("api_key", "bybit API key is required")
	}
	if s.apiSecret.IsEmpty() {
		return errors.NewConfigurationError("api_secret", "bybit API secret is required")
	}
	return nil
}
