// Package ws provides a venue-agnostic WebSocket session generalizing the
// gws-backed client every venue driver needs: connect, subscribe, decode,
// dispatch, and reconnect with backoff.
package ws

import (
	"context"

	"github.com/exactkit/exact/pkg/domain"
)

// Handler receives a decoded message from a Session. It must not block;
// drivers that need to do real work per message should hand off to their
// own queue.
type Handler[M any] func(msg M)

// Session is a live WebSocket connection to a single venue endpoint,
// decoding inbound frames into M via a wscodec.Codec and dispatching them
// to a Handler.
type Session[M any] interface {
	// Connect dials the endpoint. It returns once the connection is open;
	// ctx does not govern the connection's subsequent lifetime, and
	// GWSSession does not consult it for the dial either.
	Connect(ctx context.Context) error

	// Subscribe sends a subscription frame for sub on symbol.
	Subscribe(sub domain.SubscriptionType, symbol domain.Symbol) error

	// Unsubscribe sends an unsubscription frame for sub on symbol.
	Unsubscribe(sub domain.SubscriptionType, symbol domain.Symbol) error

	// SetHandler installs the callback invoked for each decoded message.
	// Must be called before Connect to avoid dropping early messages.
	SetHandler(h Handler[M])

	// IsConnected reports whether the underlying connection is currently
	// open.
	IsConnected() bool

	// Close permanently shuts down the session. After Close, the session
	// must not be reused.
	Close() error
}
