// Package flyweight separates shared, immutable state from per-object state.
//
// A Registry deduplicates intrinsic records: GetOrCreate with element-wise
// equal fields always returns the same *Intrinsic. A Pool keys entity handles
// by id; every handle points at one shared record and owns its extrinsic
// fields.
//
//	registry := flyweight.NewRegistry()
//	pool := flyweight.NewPool[Hardware](registry)
//
//	c1, _ := pool.Create("c1", []any{"i5", "2024-01-01"}, Hardware{RAM: 8})
//	c2, _ := pool.Create("c2", []any{"i5", "2024-01-01"}, Hardware{RAM: 2})
//	c1.Intrinsic() == c2.Intrinsic() // true
//
// Both types are safe for concurrent use. Records are never removed from a
// Registry; build a new one when isolation is required.
package flyweight
