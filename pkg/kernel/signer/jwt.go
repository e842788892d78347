package signer

import (
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/exactkit/exact/pkg/errors"
	"github.com/exactkit/exact/pkg/secret"
)

// JWT signs requests by minting a short-lived HS256 bearer token and
// attaching it as an Authorization header, the shape used by venues that
// authenticate exchange-issued sessions rather than signing each request.
//
// This is a placeholder signer: real venues in this family typically issue
// the signing key via an out-of-band login flow rather than accepting a
// long-lived static secret, which this connector does not implement. It
// is wired in so a venue driver needing bearer-token auth has a concrete
// Signer to compose against once that login flow is added.
type JWT struct {
	apiKey string
	secret secret.String
	ttl    time.Duration
}

// NewJWT constructs a JWT signer. ttl is the lifetime of each minted
// token; if zero, 60 seconds is used.
func NewJWT(apiKey string, signingSecret secret.String, ttl time.Duration) *JWT {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &JWT{apiKey: apiKey, secret: signingSecret, ttl: ttl}
}

// Sign implements signer.Signer.
func (s *JWT) Sign(_, _ string, query url.Values, _ []byte, timestampMs int64) (map[string]string, url.Values, error) {
	issuedAt := time.UnixMilli(timestampMs)
	claims := jwt.MapClaims{
		"sub": s.apiKey,
		"iat": issuedAt.Unix(),
		"exp": issuedAt.Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret.Expose()))
	if err != nil {
		return nil, nil, errors.NewSignatureError("", "jwt_sign", err.Error())
	}
	return map[string]string{"Authorization": "Bearer " + signed}, query, nil
}

// ValidateCredentials reports whether the API key and signing secret are
// set.
func (s *JWT) ValidateCredentials() error {
	if s.apiKey == "" {
		return errors.NewConfigurationError("api_key", "API key is required")
	}
	if s.secret.IsEmpty() {
		return errors.NewConfigurationError("api_secret", "signing secret is required")
	}
	return nil
}
