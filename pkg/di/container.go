package di

import (
	"context"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-flyweight/cache"
	"github.com/goliatone/go-flyweight/calendar"
	"github.com/goliatone/go-flyweight/config"
	"github.com/goliatone/go-flyweight/flyweight"
	"github.com/goliatone/go-flyweight/internal/logging"
	"github.com/goliatone/go-flyweight/internal/telemetry"
	"github.com/goliatone/go-flyweight/pubsub"
)

// Container builds the shared components once and hands them to the typed
// pools, broadcasters and memoized functions created from it.
type Container struct {
	settings      config.Settings
	logger        zerolog.Logger
	metrics       *telemetry.Metrics
	registry      *flyweight.Registry
	cacheService  cache.CacheService
	keySerializer cache.KeySerializer
}

// Option customizes container construction.
type Option func(*options)

type options struct {
	logWriter  io.Writer
	registerer prometheus.Registerer
}

// WithLogWriter sends log output to w instead of stdout.
func WithLogWriter(w io.Writer) Option {
	return func(o *options) { o.logWriter = w }
}

// WithRegisterer registers metrics on r. Without it a private prometheus
// registry is used.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(o *options) { o.registerer = r }
}

// NewContainer validates settings and builds the shared components.
func NewContainer(settings config.Settings, opts ...Option) (*Container, error) {
	o := options{logWriter: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.NewWithWriter(settings.Log, o.logWriter)
	if err != nil {
		return nil, err
	}

	var metrics *telemetry.Metrics
	if settings.Metrics.Enabled {
		reg := o.registerer
		if reg == nil {
			reg = prometheus.NewRegistry()
		}
		if metrics, err = telemetry.New(reg); err != nil {
			return nil, err
		}
	}

	cacheService, err := cache.NewCacheService(settings.Cache, logging.Component(logger, "cache"))
	if err != nil {
		return nil, err
	}

	registry := flyweight.NewRegistry(
		flyweight.WithRegistryLogger(logging.Component(logger, "registry")),
		flyweight.WithRegistryMetrics(metrics),
	)

	return &Container{
		settings:      settings,
		logger:        logger,
		metrics:       metrics,
		registry:      registry,
		cacheService:  cacheService,
		keySerializer: cache.NewDefaultKeySerializer(),
	}, nil
}

// NewContainerWithDefaults creates a container from config.Default.
func NewContainerWithDefaults(opts ...Option) (*Container, error) {
	return NewContainer(config.Default(), opts...)
}

// Settings returns the settings the container was built from.
func (c *Container) Settings() config.Settings {
	return c.settings
}

func (c *Container) Logger() zerolog.Logger {
	return c.logger
}

// Metrics returns nil when metrics are disabled.
func (c *Container) Metrics() *telemetry.Metrics {
	return c.metrics
}

// Registry returns the intrinsic record registry shared by every pool.
func (c *Container) Registry() *flyweight.Registry {
	return c.registry
}

func (c *Container) CacheService() cache.CacheService {
	return c.cacheService
}

func (c *Container) KeySerializer() cache.KeySerializer {
	return c.keySerializer
}

// Calendar returns a calendar drawing weekday records from the shared
// registry.
func (c *Container) Calendar() *calendar.Calendar {
	return calendar.New(
		calendar.WithRegistry(c.registry),
		calendar.WithLogger(logging.Component(c.logger, "calendar")),
	)
}

// Since Go methods cannot have type parameters, typed components are created
// with package-level functions.

// NewPool creates an entity pool over the shared registry.
// Example: NewPool[Computer](container)
func NewPool[E any](c *Container) *flyweight.Pool[E] {
	return flyweight.NewPool[E](c.registry,
		flyweight.WithPoolLogger(logging.Component(c.logger, "pool")),
		flyweight.WithPoolMetrics(c.metrics),
	)
}

// NewBroadcaster creates a broadcaster with the container's logger and
// metrics.
func NewBroadcaster[T any](c *Container) *pubsub.Broadcaster[T] {
	return pubsub.NewBroadcaster[T](
		pubsub.WithLogger(logging.Component(c.logger, "pubsub")),
		pubsub.WithMetrics(c.metrics),
	)
}

// NewMemo memoizes fn through the shared cache service.
func NewMemo[A, R any](c *Container, name string, fn func(ctx context.Context, args A) (R, error)) *cache.Memo[A, R] {
	return cache.NewMemo(c.cacheService, c.keySerializer, name, fn)
}
