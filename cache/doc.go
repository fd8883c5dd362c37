// Package cache provides key serialization and a memoizing call wrapper.
//
// # Overview
//
// The package exports:
//
//   - KeySerializer: builds stable keys from a namespace and arguments
//   - CacheService: the read-through store (sturdyc by default)
//   - Memo: a typed wrapper exposing Call(ctx, args) with results cached by
//     serialized arguments
//
// # Key Serialization Strategy
//
// Two serializers are provided. Both join segments with KeySeparator.
//
// The default serializer accepts anything:
//
//   - Function and channel values: %p formatting, stable within a process
//   - Basic types: direct string representation
//   - Slices/arrays: recursive serialization of elements
//   - Maps: entries sorted for deterministic output
//   - Structs: exported fields as name:value pairs
//   - Everything else: msgpack with sorted map keys, hex encoded
//
// The strict serializer accepts only bools, numbers and strings, and tags every
// segment with its type and a quoted value. Equal keys imply element-wise equal
// inputs, which is what the flyweight registry relies on:
//
//	key, err := cache.NewStrictKeySerializer().SerializeFields("intrinsic", "i5", "2024-01-01")
//	// intrinsic::string="i5"::string="2024-01-01"
//
// # Memoization
//
//	svc, _ := cache.NewCacheService(cache.DefaultConfig(), zerolog.Nop())
//	lookup := cache.NewMemo(svc, nil, "lookup", fetchUser)
//	user, err := lookup.Call(ctx, "user-123")
//
// Function criteria keep the caveats of %p formatting: closures created at
// different call sites never share a key, and keys do not survive a restart.
package cache
