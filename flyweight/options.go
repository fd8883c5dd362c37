package flyweight

import (
	"github.com/rs/zerolog"

	"github.com/goliatone/go-flyweight/internal/telemetry"
)

// FieldSerializer turns intrinsic fields into a registry key. It must fail on
// values it cannot encode injectively.
type FieldSerializer interface {
	SerializeFields(namespace string, fields ...any) (string, error)
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryLogger sets the registry logger.
func WithRegistryLogger(l zerolog.Logger) RegistryOption {
	return func(r *Registry) { r.logger = l }
}

// WithRegistryMetrics records lookups on m.
func WithRegistryMetrics(m *telemetry.Metrics) RegistryOption {
	return func(r *Registry) { r.metrics = m }
}

// WithSerializer replaces the strict key serializer.
func WithSerializer(s FieldSerializer) RegistryOption {
	return func(r *Registry) {
		if s != nil {
			r.serializer = s
		}
	}
}

// PoolOption configures a Pool.
type PoolOption func(*poolOptions)

type poolOptions struct {
	logger  zerolog.Logger
	metrics *telemetry.Metrics
	newID   func() string
}

// WithPoolLogger sets the pool logger.
func WithPoolLogger(l zerolog.Logger) PoolOption {
	return func(o *poolOptions) { o.logger = l }
}

// WithPoolMetrics tracks live entities on m.
func WithPoolMetrics(m *telemetry.Metrics) PoolOption {
	return func(o *poolOptions) { o.metrics = m }
}

// WithIDGenerator replaces the uuid generator used by CreateAuto.
func WithIDGenerator(fn func() string) PoolOption {
	return func(o *poolOptions) {
		if fn != nil {
			o.newID = fn
		}
	}
}
