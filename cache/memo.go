package cache

import (
	"context"
)

// Memo wraps a function so that results are served from a CacheService,
// keyed by the serialized arguments. Errors returned by the wrapped function
// are passed through and never stored.
//
//	square := cache.NewMemo(svc, cache.NewDefaultKeySerializer(), "square",
//		func(ctx context.Context, n int) (int, error) { return n * n, nil })
//	v, err := square.Call(ctx, 12)
type Memo[A, R any] struct {
	name       string
	service    CacheService
	serializer KeySerializer
	fn         func(ctx context.Context, args A) (R, error)
}

// NewMemo builds a memoizing wrapper. name namespaces the keys so several
// wrappers can share one CacheService. A nil serializer selects the default one.
func NewMemo[A, R any](service CacheService, serializer KeySerializer, name string, fn func(ctx context.Context, args A) (R, error)) *Memo[A, R] {
	if serializer == nil {
		serializer = NewDefaultKeySerializer()
	}
	return &Memo[A, R]{
		name:       name,
		service:    service,
		serializer: serializer,
		fn:         fn,
	}
}

// Name returns the key namespace.
func (m *Memo[A, R]) Name() string {
	return m.name
}

// Key returns the cache key used for args.
func (m *Memo[A, R]) Key(args A) string {
	return m.serializer.SerializeKey(m.name, args)
}

// Call returns the memoized result for args, computing it on first use.
func (m *Memo[A, R]) Call(ctx context.Context, args A) (R, error) {
	return GetOrFetch(ctx, m.service, m.Key(args), func(ctx context.Context) (R, error) {
		return m.fn(ctx, args)
	})
}

// Forget drops the memoized result for args.
func (m *Memo[A, R]) Forget(ctx context.Context, args A) error {
	return m.service.Delete(ctx, m.Key(args))
}

// Purge drops every result memoized under this wrapper's name.
func (m *Memo[A, R]) Purge(ctx context.Context) error {
	return m.service.DeleteByPrefix(ctx, m.name+KeySeparator)
}
