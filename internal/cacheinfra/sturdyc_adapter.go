package cacheinfra

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/viccon/sturdyc"
)

// Config holds the sturdyc settings used by memoized calls.
type Config struct {
	// Capacity is the maximum number of memoized results kept in memory.
	Capacity int

	// NumShards splits the store to reduce lock contention. Default: 64
	NumShards int

	// TTL bounds how long a memoized result is served before it is recomputed.
	TTL time.Duration

	// EvictionPercentage is the share of entries dropped once Capacity is reached (1-100).
	EvictionPercentage int

	// EarlyRefresh enables background recomputation of hot entries. Nil disables it.
	EarlyRefresh *EarlyRefreshConfig

	// EvictionInterval controls how often expired entries are swept. Zero keeps the sturdyc default.
	EvictionInterval time.Duration
}

// EarlyRefreshConfig maps onto sturdyc.WithEarlyRefreshes.
type EarlyRefreshConfig struct {
	MinAsyncRefreshTime time.Duration
	MaxAsyncRefreshTime time.Duration
	SyncRefreshTime     time.Duration
	RetryBaseDelay      time.Duration
}

// DefaultConfig returns settings sized for in-process memoization.
func DefaultConfig() Config {
	return Config{
		Capacity:           1024,
		NumShards:          64,
		TTL:                10 * time.Minute,
		EvictionPercentage: 10,
	}
}

// ToSturdycOptions converts the optional parts of Config into sturdyc options.
// Capacity, NumShards, TTL and EvictionPercentage go to sturdyc.New directly.
func (c Config) ToSturdycOptions() []sturdyc.Option {
	var options []sturdyc.Option

	if er := c.EarlyRefresh; er != nil {
		options = append(options, sturdyc.WithEarlyRefreshes(
			er.MinAsyncRefreshTime,
			er.MaxAsyncRefreshTime,
			er.SyncRefreshTime,
			er.RetryBaseDelay,
		))
	}

	if c.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(c.EvictionInterval))
	}

	return options
}

// Validate reports the first invalid field as a *ConfigError.
func (c Config) Validate() error {
	switch {
	case c.Capacity <= 0:
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	case c.NumShards <= 0:
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	case c.NumShards > c.Capacity:
		return &ConfigError{Field: "NumShards", Message: "must not exceed Capacity"}
	case c.TTL <= 0:
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	case c.EvictionPercentage < 1 || c.EvictionPercentage > 100:
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	case c.EvictionInterval < 0:
		return &ConfigError{Field: "EvictionInterval", Message: "must be non-negative"}
	}

	if er := c.EarlyRefresh; er != nil {
		durations := []struct {
			field string
			value time.Duration
		}{
			{"EarlyRefresh.MinAsyncRefreshTime", er.MinAsyncRefreshTime},
			{"EarlyRefresh.MaxAsyncRefreshTime", er.MaxAsyncRefreshTime},
			{"EarlyRefresh.SyncRefreshTime", er.SyncRefreshTime},
			{"EarlyRefresh.RetryBaseDelay", er.RetryBaseDelay},
		}
		for _, d := range durations {
			if d.value < 0 {
				return &ConfigError{Field: d.field, Message: "must be non-negative"}
			}
		}
		if er.MaxAsyncRefreshTime < er.MinAsyncRefreshTime {
			return &ConfigError{Field: "EarlyRefresh.MaxAsyncRefreshTime", Message: "must not be lower than MinAsyncRefreshTime"}
		}
	}

	return nil
}

// ConfigError names the offending configuration field.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// SturdycService stores memoized results in a sturdyc client.
type SturdycService struct {
	client *sturdyc.Client[any]
	logger zerolog.Logger
}

// NewSturdycService validates cfg and builds the sturdyc client.
func NewSturdycService(cfg Config, logger zerolog.Logger) (*SturdycService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := sturdyc.New[any](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		cfg.ToSturdycOptions()...,
	)

	return &SturdycService{
		client: client,
		logger: logger.With().Str("component", "cacheinfra").Logger(),
	}, nil
}

// GetOrFetch returns the stored value for key, or runs fetch and stores its
// result. Fetch errors are returned and nothing is stored.
func (s *SturdycService) GetOrFetch(ctx context.Context, key string, fetch func(ctx context.Context) (any, error)) (any, error) {
	if fetch == nil {
		return nil, &ConfigError{Field: "fetch", Message: "cannot be nil"}
	}

	var miss atomic.Bool
	value, err := s.client.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		miss.Store(true)
		return fetch(ctx)
	})
	if err != nil {
		s.logger.Debug().Str("key", key).Err(err).Msg("fetch failed")
		return nil, err
	}
	if miss.Load() {
		s.logger.Debug().Str("key", key).Msg("memoized")
	}
	return value, nil
}

// Delete drops a single key.
func (s *SturdycService) Delete(_ context.Context, key string) error {
	s.client.Delete(key)
	return nil
}

// DeleteByPrefix drops every key starting with prefix.
func (s *SturdycService) DeleteByPrefix(_ context.Context, prefix string) error {
	removed := 0
	for _, key := range s.client.ScanKeys() {
		if strings.HasPrefix(key, prefix) {
			s.client.Delete(key)
			removed++
		}
	}
	s.logger.Debug().Str("prefix", prefix).Int("removed", removed).Msg("purged")
	return nil
}

// Len reports the number of stored entries.
func (s *SturdycService) Len() int {
	return s.client.Size()
}
