package ws

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/exactkit/exact/pkg/domain"
)

// ReconnectConfig controls ReconnectSession's backoff and resubscription
// behavior.
type ReconnectConfig struct {
	// MaxAttempts bounds reconnection attempts; 0 means unbounded, which
	// is what production use sets per spec.
	MaxAttempts int
	// InitialDelay is the first retry's delay. Default 1s.
	InitialDelay time.Duration
	// MaxDelay caps the exponential backoff. Default 60s.
	MaxDelay time.Duration
	// AutoResubscribe replays remembered subscriptions after a successful
	// reconnect. withDefaults does not set it: the zero value false leaves
	// replay off, so callers that want it set it explicitly.
	AutoResubscribe bool
}

func (c ReconnectConfig) withDefaults() ReconnectConfig {
	if c.InitialDelay <= 0 {
		c.InitialDelay = time.Second
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = 60 * time.Second
	}
	return c
}

type subKey struct {
	kind   string
	depth  int
	symbol domain.Symbol
}

func keyOf(sub domain.SubscriptionType, symbol domain.Symbol) subKey {
	switch s := sub.(type) {
	case domain.OrderBookSubscription:
		return subKey{kind: "orderbook", depth: s.Depth, symbol: symbol}
	case domain.KlinesSubscription:
		return subKey{kind: "kline:" + string(s.Interval), symbol: symbol}
	case domain.TickerSubscription:
		return subKey{kind: "ticker", symbol: symbol}
	case domain.TradesSubscription:
		return subKey{kind: "trades", symbol: symbol}
	default:
		return subKey{kind: "unknown", symbol: symbol}
	}
}

// ReconnectSession wraps any Session[M], memorizing the subscription set
// and transparently reconnecting with exponential backoff whenever the
// inner session reports a connection failure. It satisfies Session[M]
// itself, so callers never need to know whether a session reconnects.
type ReconnectSession[M any] struct {
	factory func() Session[M]
	cfg     ReconnectConfig
	exchange string

	mu   sync.Mutex
	inner Session[M]
	subs  map[subKey]struct{}
	subOf map[subKey]domain.SubscriptionType

	handler atomic.Pointer[Handler[M]]
	closed  atomic.Bool
}

// NewReconnectSession constructs a decorator. factory must return a fresh,
// unconnected Session[M] each call (e.g. a closure over GWSConfig).
func NewReconnectSession[M any](exchange string, factory func() Session[M], cfg ReconnectConfig) *ReconnectSession[M] {
	return &ReconnectSession[M]{
		exchange: exchange,
		factory:  factory,
		cfg:      cfg.withDefaults(),
		subs:     make(map[subKey]struct{}),
		subOf:    make(map[subKey]domain.SubscriptionType),
	}
}

func (r *ReconnectSession[M]) SetHandler(h Handler[M]) {
	r.handler.Store(&h)
	r.mu.Lock()
	inner := r.inner
	r.mu.Unlock()
	if inner != nil {
		inner.SetHandler(h)
	}
}

func (r *ReconnectSession[M]) Connect(ctx context.Context) error {
	r.mu.Lock()
	r.inner = r.factory()
	if hp := r.handler.Load(); hp != nil {
		r.inner.SetHandler(func(msg M) {
			if hp := r.handler.Load(); hp != nil {
				(*hp)(msg)
			}
		})
	}
	inner := r.inner
	r.mu.Unlock()

	if err := inner.Connect(ctx); err != nil {
		return err
	}
	go r.watch(inner)
	return r.resubscribeAll(inner)
}

// watch polls the inner session's connectedness and triggers reconnection
// on loss. gws's ReadLoop runs in its own goroutine; this is the bridge
// between "connection dropped" and the decorator's backoff loop.
func (r *ReconnectSession[M]) watch(inner Session[M]) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		if r.closed.Load() {
			return
		}
		r.mu.Lock()
		stillCurrent := r.inner == inner
		r.mu.Unlock()
		if !stillCurrent {
			return
		}
		if !inner.IsConnected() {
			r.reconnectLoop()
			return
		}
	}
}

func (r *ReconnectSession[M]) reconnectLoop() {
	attempt := 0
	delay := r.cfg.InitialDelay
	for {
		if r.closed.Load() {
			return
		}
		attempt++
		if r.cfg.MaxAttempts > 0 && attempt > r.cfg.MaxAttempts {
			log.Error().Str("exchange", r.exchange).Int("attempts", attempt).Msg("websocket reconnect attempts exhausted")
			return
		}

		jitter := time.Duration(float64(delay) * 0.1 * rand.Float64())
		time.Sleep(delay + jitter)
		delay *= 2
		if delay > r.cfg.MaxDelay {
			delay = r.cfg.MaxDelay
		}

		r.mu.Lock()
		next := r.factory()
		if hp := r.handler.Load(); hp != nil {
			next.SetHandler(func(msg M) {
				if hp := r.handler.Load(); hp != nil {
					(*hp)(msg)
				}
			})
		}
		r.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := next.Connect(ctx)
		cancel()
		if err != nil {
			log.Warn().Str("exchange", r.exchange).Err(err).Int("attempt", attempt).Msg("websocket reconnect failed")
			continue
		}

		r.mu.Lock()
		r.inner = next
		r.mu.Unlock()

		if r.cfg.AutoResubscribe {
			if err := r.resubscribeAll(next); err != nil {
				log.Warn().Str("exchange", r.exchange).Err(err).Msg("resubscribe after reconnect failed")
			}
		}

		log.Info().Str("exchange", r.exchange).Int("attempts", attempt).Msg("websocket reconnected")
		go r.watch(next)
		return
	}
}

func (r *ReconnectSession[M]) resubscribeAll(inner Session[M]) error {
	r.mu.Lock()
	subs := make([]domain.SubscriptionType, 0, len(r.subOf))
	syms := make([]domain.Symbol, 0, len(r.subOf))
	for k, sub := range r.subOf {
		subs = append(subs, sub)
		syms = append(syms, k.symbol)
	}
	r.mu.Unlock()

	for i := range subs {
		if err := inner.Subscribe(subs[i], syms[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *ReconnectSession[M]) Subscribe(sub domain.SubscriptionType, symbol domain.Symbol) error {
	k := keyOf(sub, symbol)
	r.mu.Lock()
	r.subs[k] = struct{}{}
	r.subOf[k] = sub
	inner := r.inner
	r.mu.Unlock()
	if inner == nil {
		return nil
	}
	return inner.Subscribe(sub, symbol)
}

func (r *ReconnectSession[M]) Unsubscribe(sub domain.SubscriptionType, symbol domain.Symbol) error {
	k := keyOf(sub, symbol)
	r.mu.Lock()
	delete(r.subs, k)
	delete(r.subOf, k)
	inner := r.inner
	r.mu.Unlock()
	if inner == nil {
		return nil
	}
	return inner.Unsubscribe(sub, symbol)
}

// SubscribedStreams returns the number of currently-remembered subscription
// keys, exposed for tests validating the set-difference invariant.
func (r *ReconnectSession[M]) SubscribedStreams() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}

func (r *ReconnectSession[M]) IsConnected() bool {
	r.mu.Lock()
	inner := r.inner
	r.mu.Unlock()
	return inner != nil && inner.IsConnected()
}

func (r *ReconnectSession[M]) Close() error {
	r.closed.Store(true)
	r.mu.Lock()
	inner := r.inner
	r.mu.Unlock()
	if inner == nil {
		return nil
	}
	return inner.Close()
}
