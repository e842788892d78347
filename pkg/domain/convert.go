// Package domain provides core domain types for the exchange connector.
package domain

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// StringToDecimal parses s into a Decimal. Unlike NewDecimal, it never
// returns an error: an empty string yields zero silently, and a malformed
// one yields zero with a logged warning. Venue wire data is trusted to be well-formed; a single
// malformed field must not poison an entire batch of otherwise-good data.
func StringToDecimal(s string) Decimal {
	if s == "" {
		return Zero()
	}
	d, err := NewDecimal(s)
	if err != nil {
		log.Warn().Str("input", s).Err(err).Msg("failed to parse decimal, defaulting to zero")
		return Zero()
	}
	return d
}

// StringToPrice parses s into a Price using the zero-failure policy.
func StringToPrice(s string) Price { return NewPrice(StringToDecimal(s)) }

// StringToQuantity parses s into a Quantity using the zero-failure policy.
func StringToQuantity(s string) Quantity { return NewQuantity(StringToDecimal(s)) }

// StringToVolume parses s into a Volume using the zero-failure policy.
func StringToVolume(s string) Volume { return NewVolume(StringToDecimal(s)) }

// StringToSymbol parses a venue symbol string into a Symbol, splitting on
// the given separator if non-empty, otherwise falling back to
// NormalizeSymbol's quote-currency heuristic.
func StringToSymbol(s, sep string) Symbol {
	if sep != "" {
		if base, quote, ok := strings.Cut(s, sep); ok {
			return Symbol{Base: strings.ToUpper(base), Quote: strings.ToUpper(quote)}
		}
	}
	base, quote, err := ParseSymbol(s)
	if err != nil {
		return Symbol{Base: strings.ToUpper(s)}
	}
	return Symbol{Base: base, Quote: quote}
}
