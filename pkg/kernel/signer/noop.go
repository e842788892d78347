package signer

import "net/url"

// Noop is a Signer that performs no authentication. It exists for public
// (unauthenticated) endpoints accessed through a kernel/rest.Client that
// was built generically over the Signer interface, and for tests.
type Noop struct{}

// Sign returns query unchanged and no headers.
func (Noop) Sign(_, _ string, query url.Values, _ []byte, _ int64) (map[string]string, url.Values, error) {
	return nil, query, nil
}

// ValidateCredentials always succeeds.
func (Noop) ValidateCredentials() error { return nil }
