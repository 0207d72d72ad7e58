package objects

// Registry is the identity array of one object kind: a dense slice where
// slot id holds the entity created id-th. Entities are appended during load
// and never removed individually.
//
// NOTE: Registry assumes the store's single-writer build phase. After the
// resolver runs it is only read.
type Registry[T any] struct {
	items []*T
}

func newRegistry[T any](expectedSize int) Registry[T] {
	return Registry[T]{items: make([]*T, 0, expectedSize)}
}

// add appends item and returns its id
func (r *Registry[T]) add(item *T) int {
	r.items = append(r.items, item)
	return len(r.items) - 1
}

// Get retrieves the entity with the given id in O(1) time.
// Returns nil if id is out of range.
func (r *Registry[T]) Get(id int) *T {
	if id < 0 || id >= len(r.items) {
		return nil
	}
	return r.items[id]
}

// Len returns the number of entities
func (r *Registry[T]) Len() int {
	return len(r.items)
}

// All returns the backing slice in id order. Callers must not modify it.
func (r *Registry[T]) All() []*T {
	return r.items
}

// First returns slot 0, or nil for an empty registry
func (r *Registry[T]) First() *T {
	if len(r.items) == 0 {
		return nil
	}
	return r.items[0]
}

// last returns the most recently appended entity
func (r *Registry[T]) last() *T {
	if len(r.items) == 0 {
		return nil
	}
	return r.items[len(r.items)-1]
}

// Range iterates over entities in id order.
// Iteration stops when fn returns false.
func (r *Registry[T]) Range(fn func(id int, item *T) bool) {
	for i, item := range r.items {
		if !fn(i, item) {
			return
		}
	}
}

func (r *Registry[T]) reset() {
	r.items = nil
}
