package pubsub

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-flyweight/internal/telemetry"
)

// Option configures a Ledger or Broadcaster.
type Option func(*options)

type options struct {
	logger  zerolog.Logger
	metrics *telemetry.Metrics
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics records dispatches on m.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// Ledger stores listener sequences per channel. Sequences are copy-on-write:
// a slice handed to a dispatch is never modified afterwards. A channel with
// no listeners has no entry at all.
type Ledger[T any] struct {
	mu       sync.Mutex
	channels map[string][]*entry[T]
	logger   zerolog.Logger
	metrics  *telemetry.Metrics
}

// NewLedger returns an empty ledger.
func NewLedger[T any](opts ...Option) *Ledger[T] {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Ledger[T]{
		channels: make(map[string][]*entry[T]),
		logger:   o.logger,
		metrics:  o.metrics,
	}
}

// Subscribe appends l to channel. Persistent and one-shot registrations share
// one identity space: a listener can be on a channel only once.
func (lg *Ledger[T]) Subscribe(channel string, l *Listener[T], once bool) error {
	if l == nil || l.handle == nil {
		return &SubscribeError{Channel: channel, Err: ErrNilListener}
	}

	lg.mu.Lock()
	defer lg.mu.Unlock()

	current := lg.channels[channel]
	for _, e := range current {
		if e.listener == l {
			lg.logger.Warn().Str("channel", channel).Msg("duplicate listener rejected")
			return &SubscribeError{Channel: channel, Err: ErrDuplicateListener}
		}
	}

	next := make([]*entry[T], len(current), len(current)+1)
	copy(next, current)
	lg.channels[channel] = append(next, &entry[T]{listener: l, once: once})

	lg.logger.Debug().Str("channel", channel).Bool("once", once).Int("listeners", len(next)+1).Msg("subscribed")
	return nil
}

// Unsubscribe removes l from channel. Unknown listeners are ignored.
func (lg *Ledger[T]) Unsubscribe(channel string, l *Listener[T]) {
	lg.mu.Lock()
	defer lg.mu.Unlock()

	lg.removeLocked(channel, func(e *entry[T]) bool { return e.listener == l })
}

// Dispatch delivers payload to channel with a no-op ack.
func (lg *Ledger[T]) Dispatch(channel string, payload T) {
	lg.DispatchWithAck(channel, payload, nil)
}

// DispatchWithAck delivers payload and ack to every listener subscribed when
// the call starts, in subscription order. Callbacks run without the ledger
// lock held, so they may subscribe, unsubscribe or dispatch themselves.
func (lg *Ledger[T]) DispatchWithAck(channel string, payload T, ack Ack) {
	if ack == nil {
		ack = noopAck
	}

	lg.mu.Lock()
	snapshot := lg.channels[channel]
	lg.mu.Unlock()

	if len(snapshot) == 0 {
		return
	}

	invoked := 0
	for _, e := range snapshot {
		if !e.claim() {
			continue
		}
		lg.invoke(channel, e, payload, ack)
		invoked++
	}
	lg.metrics.Dispatched(channel, invoked)
}

func (lg *Ledger[T]) invoke(channel string, e *entry[T], payload T, ack Ack) {
	if e.once {
		defer lg.removeEntry(channel, e)
	}
	e.listener.handle(payload, ack)
}

// removeEntry drops one registration. A listener that unsubscribed and
// subscribed again during its one-shot call keeps the new registration.
func (lg *Ledger[T]) removeEntry(channel string, target *entry[T]) {
	lg.mu.Lock()
	defer lg.mu.Unlock()

	lg.removeLocked(channel, func(e *entry[T]) bool { return e == target })
}

func (lg *Ledger[T]) removeLocked(channel string, match func(*entry[T]) bool) {
	current, ok := lg.channels[channel]
	if !ok {
		return
	}

	next := make([]*entry[T], 0, len(current))
	for _, e := range current {
		if !match(e) {
			next = append(next, e)
		}
	}
	if len(next) == len(current) {
		return
	}

	if len(next) == 0 {
		delete(lg.channels, channel)
		lg.logger.Debug().Str("channel", channel).Msg("channel drained")
		return
	}
	lg.channels[channel] = next
	lg.logger.Debug().Str("channel", channel).Int("listeners", len(next)).Msg("unsubscribed")
}

// RemoveChannel discards every listener of channel.
func (lg *Ledger[T]) RemoveChannel(channel string) {
	lg.mu.Lock()
	defer lg.mu.Unlock()

	if _, ok := lg.channels[channel]; ok {
		delete(lg.channels, channel)
		lg.logger.Debug().Str("channel", channel).Msg("channel removed")
	}
}

// Len returns the number of listeners on channel.
func (lg *Ledger[T]) Len(channel string) int {
	lg.mu.Lock()
	defer lg.mu.Unlock()
	return len(lg.channels[channel])
}

// Has reports whether l is subscribed to channel.
func (lg *Ledger[T]) Has(channel string, l *Listener[T]) bool {
	lg.mu.Lock()
	defer lg.mu.Unlock()
	for _, e := range lg.channels[channel] {
		if e.listener == l {
			return true
		}
	}
	return false
}

// Channels lists channels with at least one listener, sorted.
func (lg *Ledger[T]) Channels() []string {
	lg.mu.Lock()
	defer lg.mu.Unlock()

	names := make([]string, 0, len(lg.channels))
	for name := range lg.channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
