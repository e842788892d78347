package ws

import (
	"context"
	"crypto/tls"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lxzan/gws"

	"github.com/exactkit/exact/pkg/domain"
	"github.com/exactkit/exact/pkg/errors"
	"github.com/exactkit/exact/pkg/kernel/wscodec"
)

// GWSSession is a Session[M] backed by lxzan/gws. It owns exactly one
// connection at a time; reconnection is the ReconnectSession decorator's
// job, not this type's.
type GWSSession[M any] struct {
	exchange     string
	url          string
	pingInterval time.Duration
	codec        wscodec.Codec[M]

	handler   atomic.Pointer[Handler[M]]
	conn      atomic.Pointer[gws.Conn]
	connected atomic.Bool
	closed    atomic.Bool

	writeMu sync.Mutex
}

// GWSConfig configures a GWSSession.
type GWSConfig[M any] struct {
	Exchange     string
	URL          string
	PingInterval time.Duration // default 20s
	Codec        wscodec.Codec[M]
}

// NewGWSSession constructs a GWSSession. It does not connect; call Connect.
func NewGWSSession[M any](cfg GWSConfig[M]) *GWSSession[M] {
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = 20 * time.Second
	}
	return &GWSSession[M]{exchange: cfg.Exchange, url: cfg.URL, pingInterval: cfg.PingInterval, codec: cfg.Codec}
}

// SetHandler implements Session.
func (s *GWSSession[M]) SetHandler(h Handler[M]) {
	s.handler.Store(&h)
}

// Connect implements Session. ctx is not consulted: the gws dial runs
// to completion or failure and cannot be cancelled or bounded through ctx.
func (s *GWSSession[M]) Connect(ctx context.Context) error {
	if s.closed.Load() {
		return errors.NewConnectionError(s.exchange, s.url, "session is closed", false)
	}
	option := &gws.ClientOption{Addr: s.url, TlsConfig: &tls.Config{}}
	conn, _, err := gws.NewClient((*gwsHandler[M])(s), option)
	if err != nil {
		return errors.NewConnectionError(s.exchange, s.url, err.Error(), true)
	}
	s.conn.Store(conn)
	s.connected.Store(true)
	go conn.ReadLoop()
	return nil
}

// IsConnected implements Session.
func (s *GWSSession[M]) IsConnected() bool { return s.connected.Load() }

// Close implements Session.
func (s *GWSSession[M]) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	s.connected.Store(false)
	if conn := s.conn.Load(); conn != nil {
		conn.WriteClose(1000, nil)
	}
	return nil
}

// Subscribe implements Session.
func (s *GWSSession[M]) Subscribe(sub domain.SubscriptionType, symbol domain.Symbol) error {
	frame, err := s.codec.EncodeSubscription(sub, symbol)
	if err != nil {
		return err
	}
	return s.writeFrame(frame)
}

// Unsubscribe implements Session.
func (s *GWSSession[M]) Unsubscribe(sub domain.SubscriptionType, symbol domain.Symbol) error {
	frame, err := s.codec.EncodeUnsubscription(sub, symbol)
	if err != nil {
		return err
	}
	return s.writeFrame(frame)
}

func (s *GWSSession[M]) writeFrame(frame []byte) error {
	if len(frame) == 0 {
		return nil
	}
	conn := s.conn.Load()
	if conn == nil || !s.connected.Load() {
		return errors.NewConnectionError(s.exchange, s.url, "not connected", true)
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return conn.WriteMessage(gws.OpcodeText, frame)
}

// gwsHandler adapts GWSSession to gws.Event, keeping gws's wire-protocol
// concerns (ping/pong/close framing) entirely out of the Session contract.
type gwsHandler[M any] GWSSession[M]

func (h *gwsHandler[M]) session() *GWSSession[M] { return (*GWSSession[M])(h) }

func (h *gwsHandler[M]) OnOpen(socket *gws.Conn) {
	socket.SetDeadline(time.Now().Add(h.session().pingInterval * 2))
}

func (h *gwsHandler[M]) OnClose(socket *gws.Conn, err error) {
	h.session().connected.Store(false)
}

// OnPing responds with a pong carrying the same payload, per the control
// frame policy every venue codec is shielded from.
func (h *gwsHandler[M]) OnPing(socket *gws.Conn, payload []byte) {
	socket.SetDeadline(time.Now().Add(h.session().pingInterval * 2))
	socket.WritePong(payload)
}

// OnPong drops the frame; it only resets the read deadline.
func (h *gwsHandler[M]) OnPong(socket *gws.Conn, payload []byte) {
	socket.SetDeadline(time.Now().Add(h.session().pingInterval * 2))
}

func (h *gwsHandler[M]) OnMessage(socket *gws.Conn, message *gws.Message) {
	defer message.Close()
	s := h.session()
	socket.SetDeadline(time.Now().Add(s.pingInterval * 2))

	msg, ok, err := s.codec.DecodeMessage(message.Bytes())
	if err != nil || !ok {
		return
	}
	if hp := s.handler.Load(); hp != nil {
		(*hp)(msg)
	}
}
