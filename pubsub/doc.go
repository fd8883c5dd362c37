// Package pubsub implements named notification channels.
//
// A Ledger keeps an ordered listener sequence per channel. Dispatch invokes
// the listeners present when it starts, in subscription order; listeners added
// or removed by callbacks take effect on the next dispatch. One-shot listeners
// are removed right after their first invocation.
//
// Listener identity is the *Listener pointer, so the same callback can be
// registered once per channel:
//
//	b := pubsub.NewBroadcaster[string]()
//	hello := pubsub.Func(func(s string) { fmt.Println("hello", s) })
//	b.On("greet", hello).Once("greet", pubsub.Func(func(string) { fmt.Println("first only") }))
//	b.Emit("greet", "world").Emit("greet", "again")
//	if err := b.Err(); err != nil { ... }
//
// Broadcaster is the chaining facade over a Ledger. Errors raised inside a
// chain are kept and reported by Err.
package pubsub
