package pubsub

import "sync"

// Broadcaster is a chaining facade over a Ledger.
type Broadcaster[T any] struct {
	ledger *Ledger[T]

	mu  sync.Mutex
	err error
}

// NewBroadcaster returns a Broadcaster with its own Ledger.
func NewBroadcaster[T any](opts ...Option) *Broadcaster[T] {
	return &Broadcaster[T]{ledger: NewLedger[T](opts...)}
}

// Ledger returns the underlying ledger.
func (b *Broadcaster[T]) Ledger() *Ledger[T] {
	return b.ledger
}

// On subscribes l to channel.
func (b *Broadcaster[T]) On(channel string, l *Listener[T]) *Broadcaster[T] {
	b.keep(b.ledger.Subscribe(channel, l, false))
	return b
}

// Once subscribes l to channel for a single invocation.
func (b *Broadcaster[T]) Once(channel string, l *Listener[T]) *Broadcaster[T] {
	b.keep(b.ledger.Subscribe(channel, l, true))
	return b
}

// Off unsubscribes l from channel.
func (b *Broadcaster[T]) Off(channel string, l *Listener[T]) *Broadcaster[T] {
	b.ledger.Unsubscribe(channel, l)
	return b
}

// RemoveChannel drops every listener of channel.
func (b *Broadcaster[T]) RemoveChannel(channel string) *Broadcaster[T] {
	b.ledger.RemoveChannel(channel)
	return b
}

// Emit dispatches payload on channel.
func (b *Broadcaster[T]) Emit(channel string, payload T) *Broadcaster[T] {
	b.ledger.Dispatch(channel, payload)
	return b
}

// EmitWithAck dispatches payload and hands ack to every listener. Emit
// returns once the listeners return; it does not wait for acks.
func (b *Broadcaster[T]) EmitWithAck(channel string, payload T, ack Ack) *Broadcaster[T] {
	b.ledger.DispatchWithAck(channel, payload, ack)
	return b
}

// Err returns the first subscription error raised through the chain.
func (b *Broadcaster[T]) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

func (b *Broadcaster[T]) keep(err error) {
	if err == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err == nil {
		b.err = err
	}
}
