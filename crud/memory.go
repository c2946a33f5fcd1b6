package crud

import (
	"context"
	"reflect"
	"slices"
	"sync"
)

// MemoryRepository is a Repository keeping entities in memory, in
// insertion order. It is safe for concurrent use.
type MemoryRepository[T any, ID comparable] struct {
	mu    sync.RWMutex
	label string
	id    func(T) ID
	items map[ID]T
	order []ID
}

var _ Repository[struct{ ID int }, int] = (*MemoryRepository[struct{ ID int }, int])(nil)

// NewMemoryRepository creates an empty repository. id extracts the
// identifier of an entity.
func NewMemoryRepository[T any, ID comparable](id func(T) ID) *MemoryRepository[T, ID] {
	var zero T
	label := "entity"
	if t := reflect.TypeOf(zero); t != nil {
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t.Name() != "" {
			label = t.Name()
		}
	}
	return &MemoryRepository[T, ID]{
		label: label,
		id:    id,
		items: make(map[ID]T),
	}
}

// Save stores the entity, replacing any entity with the same identifier.
func (r *MemoryRepository[T, ID]) Save(ctx context.Context, entity T) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.id(entity)
	if _, ok := r.items[id]; !ok {
		r.order = append(r.order, id)
	}
	r.items[id] = entity
	return entity, nil
}

// FindByID returns the entity with the given identifier, if any.
func (r *MemoryRepository[T, ID]) FindByID(ctx context.Context, id ID) (Optional[T], error) {
	if err := ctx.Err(); err != nil {
		return Empty[T](), err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if v, ok := r.items[id]; ok {
		return Of(v), nil
	}
	return Empty[T](), nil
}

// FindAll returns every entity in insertion order.
func (r *MemoryRepository[T, ID]) FindAll(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.all(), nil
}

// FindPage returns one page of entities in insertion order.
func (r *MemoryRepository[T, ID]) FindPage(ctx context.Context, pageable Pageable) (Page[T], error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return Page[T]{}, err
	}
	return NewPage(all, pageable), nil
}

// Filter returns the entities matching keep in insertion order. It backs
// hand-written filter methods of repositories built on MemoryRepository.
func (r *MemoryRepository[T, ID]) Filter(ctx context.Context, keep func(T) bool) ([]T, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(all, func(v T) bool { return !keep(v) }), nil
}

// DeleteByID removes the entity with the given identifier. It returns a
// NotFoundError if there is none.
func (r *MemoryRepository[T, ID]) DeleteByID(ctx context.Context, id ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return NewNotFoundError(r.label, id)
	}
	delete(r.items, id)
	r.order = slices.DeleteFunc(r.order, func(v ID) bool { return v == id })
	return nil
}

func (r *MemoryRepository[T, ID]) all() []T {
	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out
}
