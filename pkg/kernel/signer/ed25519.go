package signer

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"

	"github.com/exactkit/exact/pkg/errors"
	"github.com/exactkit/exact/pkg/secret"
)

// Ed25519 signs requests the way Backpack's API expects: the signature is
// Ed25519 over "instruction=<name>&<sorted query params>&timestamp=
// <ms>&window=<ms>", base64-encoded, carried in the X-API-Key,
// X-Signature, X-Timestamp and X-Window headers. The request body is not
// part of the signed payload.
//
// Unlike the HMAC signers, the secret here is a base64-encoded 32-byte
// Ed25519 seed rather than an opaque shared secret, so NewEd25519 also
// checks it decodes to a seed of the right size.
type Ed25519 struct {
	apiKey     string
	privateKey ed25519.PrivateKey
	window     int64
}

// NewEd25519 constructs a Backpack-style signer. encodedSeed is the
// base64-encoded 32-byte Ed25519 seed as issued by the venue.
func NewEd25519(apiKey string, encodedSeed secret.String, window int64) (*Ed25519, error) {
	if window <= 0 {
		window = 5000
	}
	seed, err := base64.StdEncoding.DecodeString(encodedSeed.Expose())
	if err != nil {
		return nil, errors.NewConfigurationError("api_secret", "backpack secret is not valid base64: "+err.Error())
	}
	if len(seed) != ed25519.SeedSize {
		return nil, errors.NewConfigurationError("api_secret", fmt.Sprintf("backpack secret must decode to %d bytes, got %d", ed25519.SeedSize, len(seed)))
	}
	return &Ed25519{apiKey: apiKey, privateKey: ed25519.NewKeyFromSeed(seed), window: window}, nil
}

// Sign implements signer.Signer. instruction is threaded through endpoint
// by convention: callers pass the venue's instruction name (e.g.
// "orderExecute") as endpoint, since Backpack signs over an instruction
// name rather than a URL path.
func (s *Ed25519) Sign(_, instruction string, query url.Values, _ []byte, timestampMs int64) (map[string]string, url.Values, error) {
	if query == nil {
		query = url.Values{}
	}
	payload := "instruction=" + instruction
	if encoded := query.Encode(); encoded != "" {
		payload += "&" + encoded
	}
	payload += "&timestamp=" + strconv.FormatInt(timestampMs, 10) + "&window=" + strconv.FormatInt(s.window, 10)

	sig := ed25519.Sign(s.privateKey, []byte(payload))

	headers := map[string]string{
		"X-API-Key":   s.apiKey,
		"X-Signature": base64.StdEncoding.EncodeToString(sig),
		"X-Timestamp": strconv.FormatInt(timestampMs, 10),
		"X-Window":    strconv.FormatInt(s.window, 10),
	}
	return headers, query, nil
}

// ValidateCredentials reports whether the API key and private key are set.
func (s *Ed25519) ValidateCredentials() error {
	if s.apiKey == "" {
		return errors.NewConfigurationError("api_key", "backpack API key is required")
	}
	if len(s.privateKey) == 0 {
		return errors.NewConfigurationError("api_secret", "backpack private key is required")
	}
	return nil
}
