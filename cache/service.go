package cache

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidResultType is returned when a stored value does not match the type the caller asked for.
var ErrInvalidResultType = errors.New("cache: invalid result type")

// KeySerializer builds a cache key from a namespace + arbitrary args.
// Implementations must return the same key for equal inputs.
type KeySerializer interface {
	SerializeKey(namespace string, args ...any) string
}

// FetchFn computes a value on a cache miss.
type FetchFn[T any] func(ctx context.Context) (T, error)

// CacheService is the read-through store behind memoized calls.
type CacheService interface {
	GetOrFetch(ctx context.Context, key string, fetch func(ctx context.Context) (any, error)) (any, error)
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
	Len() int
}

// GetOrFetch is the typed counterpart of CacheService.GetOrFetch.
func GetOrFetch[T any](ctx context.Context, service CacheService, key string, fetch FetchFn[T]) (T, error) {
	var zero T

	result, err := service.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return zero, err
	}

	// a nil interface stored for an interface or pointer T
	if result == nil {
		return zero, nil
	}

	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("%w: key %q holds %T, want %T", ErrInvalidResultType, key, result, zero)
	}
	return typed, nil
}
