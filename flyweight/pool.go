package flyweight

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-flyweight/internal/telemetry"
)

// Handle is one entity: a shared intrinsic record plus its own extrinsic fields.
type Handle[E any] struct {
	id        string
	intrinsic *Intrinsic

	mu        sync.RWMutex
	extrinsic E
}

// ID returns the entity id.
func (h *Handle[E]) ID() string { return h.id }

// Intrinsic returns the shared record. It never changes after creation.
func (h *Handle[E]) Intrinsic() *Intrinsic { return h.intrinsic }

// Extrinsic returns a copy of the entity's own fields.
func (h *Handle[E]) Extrinsic() E {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.extrinsic
}

// Pool holds entity handles by id and resolves their intrinsic records
// through a Registry.
type Pool[E any] struct {
	registry *Registry
	entities *xsync.MapOf[string, *Handle[E]]
	logger   zerolog.Logger
	metrics  *telemetry.Metrics
	newID    func() string
}

// NewPool returns an empty pool backed by registry.
func NewPool[E any](registry *Registry, opts ...PoolOption) *Pool[E] {
	o := poolOptions{
		logger: zerolog.Nop(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Pool[E]{
		registry: registry,
		entities: xsync.NewMapOf[string, *Handle[E]](),
		logger:   o.logger,
		metrics:  o.metrics,
		newID:    o.newID,
	}
}

// Registry returns the registry the pool resolves records from.
func (p *Pool[E]) Registry() *Registry {
	return p.registry
}

// Create stores a new handle under id. It fails with ErrDuplicateID when id is
// taken; in that case the registry is not consulted.
func (p *Pool[E]) Create(id string, shared []any, own E) (*Handle[E], error) {
	var (
		created *Handle[E]
		err     error
	)

	p.entities.Compute(id, func(current *Handle[E], loaded bool) (*Handle[E], bool) {
		if loaded {
			err = ErrDuplicateID
			return current, false
		}
		rec, rerr := p.registry.GetOrCreate(shared...)
		if rerr != nil {
			err = rerr
			// nothing stored for id
			return nil, true
		}
		created = &Handle[E]{id: id, intrinsic: rec, extrinsic: own}
		return created, false
	})

	if err != nil {
		p.logger.Warn().Str("id", id).Err(err).Msg("create rejected")
		return nil, &EntityError{Op: "create", ID: id, Err: err}
	}

	p.metrics.EntityAdded()
	p.logger.Debug().Str("id", id).Str("intrinsic", created.intrinsic.Key()).Msg("entity created")
	return created, nil
}

// CreateAuto is Create with a generated id.
func (p *Pool[E]) CreateAuto(shared []any, own E) (*Handle[E], error) {
	return p.Create(p.newID(), shared, own)
}

// Get returns the handle stored under id.
func (p *Pool[E]) Get(id string) (*Handle[E], error) {
	h, ok := p.entities.Load(id)
	if !ok {
		return nil, &EntityError{Op: "get", ID: id, Err: ErrNotFound}
	}
	return h, nil
}

// Remove drops the handle. The intrinsic record stays in the registry.
func (p *Pool[E]) Remove(id string) error {
	if _, ok := p.entities.LoadAndDelete(id); !ok {
		return &EntityError{Op: "remove", ID: id, Err: ErrNotFound}
	}
	p.metrics.EntityRemoved()
	p.logger.Debug().Str("id", id).Msg("entity removed")
	return nil
}

// Update applies mutate to the extrinsic fields of id under the handle lock.
func (p *Pool[E]) Update(id string, mutate func(*E)) error {
	h, ok := p.entities.Load(id)
	if !ok {
		return &EntityError{Op: "update", ID: id, Err: ErrNotFound}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	mutate(&h.extrinsic)
	return nil
}

// Len returns the number of handles.
func (p *Pool[E]) Len() int {
	return p.entities.Size()
}

// IDs returns the held ids in ascending order.
func (p *Pool[E]) IDs() []string {
	ids := make([]string, 0, p.entities.Size())
	p.entities.Range(func(id string, _ *Handle[E]) bool {
		ids = append(ids, id)
		return true
	})
	sort.Strings(ids)
	return ids
}
