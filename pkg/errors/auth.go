// Package errors provides typed errors for the exchange connector.
package errors

import "fmt"

// AuthError represents a credential or permission failure reported by a
// venue: invalid API key, expired JWT, bad passphrase, insufficient
// permissions on the key. Distinct from SignatureError, which is about the
// request signing step itself rather than the venue's verdict on it.
type AuthError struct {
	// Exchange is the name of the exchange
	Exchange string `json:"exchange"`

	// Code is the venue-specific error code, if any
	Code string `json:"code,omitempty"`

	// Message is a human-readable error message
	Message string `json:"message"`

	cause error `json:"-"`
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] authentication error (code %s): %s", e.Exchange, e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] authentication error: %s", e.Exchange, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AuthError) Unwrap() error {
	return e.cause
}

// NewAuthError creates a new AuthError.
func NewAuthError(exchange, code, message string) *AuthError {
	return &AuthError{
		Exchange: exchange,
		Code:     code,
		Message:  message,
	}
}
