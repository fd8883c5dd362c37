package pubsub

import "sync/atomic"

// Ack lets a listener report completion back to the emitter. The emitter does
// not wait for it.
type Ack func(result any)

func noopAck(any) {}

// Handler receives a payload and the emitter's ack.
type Handler[T any] func(payload T, ack Ack)

// Listener wraps a handler. Its pointer is the subscription identity.
type Listener[T any] struct {
	handle Handler[T]
}

// NewListener wraps fn.
func NewListener[T any](fn Handler[T]) *Listener[T] {
	return &Listener[T]{handle: fn}
}

// Func wraps a handler that ignores the ack.
func Func[T any](fn func(payload T)) *Listener[T] {
	return &Listener[T]{handle: func(payload T, _ Ack) { fn(payload) }}
}

// entry is one registration of a listener on a channel.
type entry[T any] struct {
	listener *Listener[T]
	once     bool
	fired    atomic.Bool
}

// claim reports whether the entry may run. One-shot entries run at most once,
// including under re-entrant dispatch.
func (e *entry[T]) claim() bool {
	if !e.once {
		return true
	}
	return e.fired.CompareAndSwap(false, true)
}
