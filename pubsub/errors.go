package pubsub

import "errors"

var (
	// ErrDuplicateListener is returned when a listener is already subscribed to the channel.
	ErrDuplicateListener = errors.New("pubsub: listener already subscribed")

	// ErrNilListener is returned when subscribing a nil listener or a listener without a handler.
	ErrNilListener = errors.New("pubsub: nil listener")
)

// SubscribeError records the channel a subscription failed on.
type SubscribeError struct {
	Channel string
	Err     error
}

func (e *SubscribeError) Error() string {
	return "pubsub: subscribe to " + e.Channel + ": " + e.Err.Error()
}

func (e *SubscribeError) Unwrap() error {
	return e.Err
}
