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

const (
	// DefaultRecvWindow is the default recvWindow for signed requests (5 seconds).
	DefaultRecvWindow = 5000
	// MaxRecvWindow is the maximum allowed recvWindow (60 seconds).
	MaxRecvWindow = 60000
)

// HMACBinance signs requests the way Binance's spot and USDⓈ-M futures
// APIs expect: the API key travels in the X-MBX-APIKEY header, and the
// signature is HMAC-SHA256 over the alphabetically-sorted, URL-encoded
// query string (which the signer augments with timestamp and recvWindow).
type HMACBinance struct {
	apiKey     string
	apiSecret  secret.String
	recvWindow int64
}

// NewHMACBinance constructs a Binance-style signer. If recvWindow is 0,
// DefaultRecvWindow is used; values above MaxRecvWindow are clamped.
func NewHMACBinance(apiKey string, apiSecret secret.String, recvWindow int64) *HMACBinance {
	if recvWindow <= 0 {
		recvWindow = DefaultRecvWindow
	} else if recvWindow > MaxRecvWindow {
		recvWindow = MaxRecvWindow
	}
	return &HMACBinance{apiKey: apiKey, apiSecret: apiSecret, recvWindow: recvWindow}
}

// Sign implements signer.Signer.
func (s *HMACBinance) Sign(_, _ string, query url.Values, _ []byte, timestampMs int64) (map[string]string, url.Values, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("timestamp", strconv.FormatInt(timestampMs, 10))
	query.Set("recvWindow", strconv.FormatInt(s.recvWindow, 10))

	mac := hmac.New(sha256.New, []byte(s.apiSecret.Expose()))
	mac.Write([]byte(query.Encode()))
	query.Set("signature", hex.EncodeToString(mac.Sum(nil)))

	return map[string]string{"X-MBX-APIKEY": s.apiKey}, query, nil
}

// ValidateCredentials reports whether both the API key and secret are set.
func (s *HMACBinance) ValidateCredentials() error {
	if s.apiKey == "" {
		return errors.NewConfigurationError("api_key", "binance API key is required")
	}
	if s.apiSecret.IsEmpty() {
		return errors.NewConfigurationError("api_secret", "binance API secret is required")
	}
	return nil
}
