// Package wscodec defines the wire-encoding boundary between a venue's
// WebSocket protocol and the generic session machinery in pkg/kernel/ws.
// Each venue driver supplies a Codec[M]; the session layer never knows the
// venue's subscription frame shape or message envelope.
package wscodec

import "github.com/exactkit/exact/pkg/domain"

// Codec translates between domain subscription requests and a venue's
// WebSocket wire format, and decodes inbound frames into M (typically
// domain.MarketDataType, but drivers are free to use a richer venue-local
// type and convert to domain types downstream).
//
// Implementations must be safe for concurrent use; EncodeSubscription may
// be called concurrently with DecodeMessage on another goroutine.
type Codec[M any] interface {
	// EncodeSubscription returns the frame to send to subscribe to sub on
	// symbol.
	EncodeSubscription(sub domain.SubscriptionType, symbol domain.Symbol) ([]byte, error)

	// EncodeUnsubscription returns the frame to send to unsubscribe from
	// sub on symbol.
	EncodeUnsubscription(sub domain.SubscriptionType, symbol domain.Symbol) ([]byte, error)

	// DecodeMessage parses a single inbound frame. ok is false for frames
	// that carry no data of interest (subscription acks, heartbeats); the
	// session drops those instead of forwarding them to handlers.
	DecodeMessage(raw []byte) (msg M, ok bool, err error)
}
