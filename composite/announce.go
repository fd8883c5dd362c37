package composite

import "github.com/goliatone/go-flyweight/pubsub"

// Visit is the payload emitted by Announce.
type Visit[T any] struct {
	Node  Node[T]
	Index int
	Depth int
	// Done marks the closing visit; Node is nil and Total holds the number of
	// nodes announced.
	Done  bool
	Total int
}

// Announce walks the tree in pre-order and emits one Visit per node on
// channel, followed by a Done visit. Listeners run synchronously, so a
// listener that mutates the tree affects the rest of the walk.
func Announce[T any](root Node[T], b *pubsub.Broadcaster[Visit[T]], channel string) int {
	index := 0
	Walk(root, func(n Node[T], depth int) {
		b.Emit(channel, Visit[T]{Node: n, Index: index, Depth: depth})
		index++
	})
	b.Emit(channel, Visit[T]{Done: true, Total: index})
	return index
}
