// Package config holds the venue-agnostic configuration type every driver
// accepts. It is deliberately dependency-free (below pkg/connector and
// every internal/driver package) so drivers can depend on it without
// creating an import cycle back through the connector factory.
package config

import (
	"github.com/exactkit/exact/pkg/errors"
	"github.com/exactkit/exact/pkg/secret"
)

// ExchangeConfig carries everything a venue driver needs to authenticate
// and address a venue. Fields that don't apply to a venue (Passphrase for
// anything but OKX) are simply left zero.
type ExchangeConfig struct {
	// APIKey is the venue-issued public key. Empty means public-only
	// (unauthenticated) access.
	APIKey string

	// SecretKey is the venue-issued signing secret, wrapped so it never
	// leaks through a stray %v or zerolog struct dump.
	SecretKey secret.String

	// Passphrase is required only by venues that layer a third credential
	// on top of key+secret (OKX).
	Passphrase secret.String

	// BaseURL overrides the venue's default REST base URL. Empty means
	// use the venue's production (or, if Testnet is set, sandbox) default.
	BaseURL string

	// Testnet selects the venue's sandbox environment when BaseURL is
	// empty.
	Testnet bool
}

// HasCredentials reports whether APIKey and SecretKey are both present.
func (c ExchangeConfig) HasCredentials() bool {
	return c.APIKey != "" && !c.SecretKey.IsEmpty()
}

// RequireCredentials returns AuthError if credentials are missing,
// otherwise nil. venue is used only to tag the error. Drivers call this
// before attempting a signed request so a missing credential fails fast,
// before any network I/O.
func (c ExchangeConfig) RequireCredentials(venue string) error {
	if !c.HasCredentials() {
		return errors.NewAuthError(venue, "", "authentication required: api key and secret must be configured")
	}
	return nil
}
