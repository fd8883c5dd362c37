package cache

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-flyweight/internal/cacheinfra"
)

// Config exposes the memoization store settings.
type Config struct {
	Capacity           int                 `toml:"capacity" env:"CAPACITY"`
	NumShards          int                 `toml:"num_shards" env:"NUM_SHARDS"`
	TTL                time.Duration       `toml:"ttl" env:"TTL"`
	EvictionPercentage int                 `toml:"eviction_percentage" env:"EVICTION_PERCENTAGE"`
	EarlyRefresh       *EarlyRefreshConfig `toml:"early_refresh"`
	EvictionInterval   time.Duration       `toml:"eviction_interval" env:"EVICTION_INTERVAL"`
}

// EarlyRefreshConfig mirrors the sturdyc early refresh window.
type EarlyRefreshConfig struct {
	MinAsyncRefreshTime time.Duration `toml:"min_async_refresh_time"`
	MaxAsyncRefreshTime time.Duration `toml:"max_async_refresh_time"`
	SyncRefreshTime     time.Duration `toml:"sync_refresh_time"`
	RetryBaseDelay      time.Duration `toml:"retry_base_delay"`
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return convertFromInternal(cacheinfra.DefaultConfig())
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	return c.toInternal().Validate()
}

// NewCacheService constructs the sturdyc backed CacheService.
func NewCacheService(cfg Config, logger zerolog.Logger) (CacheService, error) {
	svc, err := cacheinfra.NewSturdycService(cfg.toInternal(), logger)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func (c Config) toInternal() cacheinfra.Config {
	out := cacheinfra.Config{
		Capacity:           c.Capacity,
		NumShards:          c.NumShards,
		TTL:                c.TTL,
		EvictionPercentage: c.EvictionPercentage,
		EvictionInterval:   c.EvictionInterval,
	}
	if er := c.EarlyRefresh; er != nil {
		out.EarlyRefresh = &cacheinfra.EarlyRefreshConfig{
			MinAsyncRefreshTime: er.MinAsyncRefreshTime,
			MaxAsyncRefreshTime: er.MaxAsyncRefreshTime,
			SyncRefreshTime:     er.SyncRefreshTime,
			RetryBaseDelay:      er.RetryBaseDelay,
		}
	}
	return out
}

func convertFromInternal(cfg cacheinfra.Config) Config {
	out := Config{
		Capacity:           cfg.Capacity,
		NumShards:          cfg.NumShards,
		TTL:                cfg.TTL,
		EvictionPercentage: cfg.EvictionPercentage,
		EvictionInterval:   cfg.EvictionInterval,
	}
	if er := cfg.EarlyRefresh; er != nil {
		out.EarlyRefresh = &EarlyRefreshConfig{
			MinAsyncRefreshTime: er.MinAsyncRefreshTime,
			MaxAsyncRefreshTime: er.MaxAsyncRefreshTime,
			SyncRefreshTime:     er.SyncRefreshTime,
			RetryBaseDelay:      er.RetryBaseDelay,
		}
	}
	return out
}
