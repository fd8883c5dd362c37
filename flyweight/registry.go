package flyweight

import (
	"fmt"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-flyweight/cache"
	"github.com/goliatone/go-flyweight/internal/telemetry"
)

const keyNamespace = "intrinsic"

// Intrinsic is an immutable record shared by every entity created with the
// same field values.
type Intrinsic struct {
	key    string
	fields []any
}

// Key returns the composite key the record is stored under.
func (i *Intrinsic) Key() string { return i.key }

// Len returns the number of fields.
func (i *Intrinsic) Len() int { return len(i.fields) }

// Field returns the field at position n.
func (i *Intrinsic) Field(n int) any { return i.fields[n] }

// Fields returns a copy of the fields.
func (i *Intrinsic) Fields() []any {
	return append([]any(nil), i.fields...)
}

func (i *Intrinsic) String() string {
	parts := make([]string, len(i.fields))
	for n, f := range i.fields {
		parts[n] = fmt.Sprint(f)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Registry deduplicates intrinsic records by their field values.
type Registry struct {
	records    *xsync.MapOf[string, *Intrinsic]
	serializer FieldSerializer
	logger     zerolog.Logger
	metrics    *telemetry.Metrics
}

// NewRegistry returns an empty registry using the strict key serializer.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		records:    xsync.NewMapOf[string, *Intrinsic](),
		serializer: cache.NewStrictKeySerializer(),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetOrCreate returns the record for fields, creating it on first request.
// Concurrent calls with equal fields observe a single record.
func (r *Registry) GetOrCreate(fields ...any) (*Intrinsic, error) {
	key, err := r.serializer.SerializeFields(keyNamespace, fields...)
	if err != nil {
		r.logger.Warn().Err(err).Msg("rejected intrinsic fields")
		return nil, err
	}

	rec, loaded := r.records.LoadOrCompute(key, func() *Intrinsic {
		return &Intrinsic{key: key, fields: append([]any(nil), fields...)}
	})
	r.metrics.Lookup(loaded)
	if !loaded {
		r.logger.Debug().Str("key", key).Msg("intrinsic record created")
	}
	return rec, nil
}

// Len returns the number of distinct records.
func (r *Registry) Len() int {
	return r.records.Size()
}
