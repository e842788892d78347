// Package secret provides a string wrapper that keeps credentials out of
// logs, error messages, and debug dumps by construction.
package secret

// String wraps a sensitive value such as an API secret, private key, or
// passphrase. Its String and GoString methods always redact the value, so
// a String embedded in a struct that gets logged via %v, %+v, or
// zerolog's struct marshaling never leaks. Callers that need the real
// value call Expose explicitly, which makes every access grep-able.
type String struct {
	value string
}

// New wraps value in a String.
func New(value string) String {
	return String{value: value}
}

// Expose returns the wrapped value. The name is deliberately loud.
func (s String) Expose() string {
	return s.value
}

// IsEmpty reports whether the wrapped value is the empty string.
func (s String) IsEmpty() bool {
	return s.value == ""
}

// String implements fmt.Stringer, redacting the value.
func (s String) String() string {
	if s.value == "" {
		return ""
	}
	return "[REDACTED]"
}

// GoString implements fmt.GoStringer, redacting the value under %#v too.
func (s String) GoString() string {
	return "secret.String{[REDACTED]}"
}

// MarshalText redacts the value when the wrapper is marshaled as JSON or
// text, so accidental inclusion in a logged struct doesn't leak it either.
func (s String) MarshalText() ([]byte, error) {
	if s.value == "" {
		return []byte(""), nil
	}
	return []byte("[REDACTED]"), nil
}
