package memory

import (
	"context"
	"iter"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// collection keeps documents in insertion order, which is the store order
// reported by FindAll. Documents are copied on the way in and out so callers
// never share memory with the store.
type collection[T any] struct {
	docs  map[string]T
	order []string
	clone func(T) T
	id    func(T) *string
	mutex sync.RWMutex
}

func newCollection[T any](clone func(T) T, id func(T) *string) *collection[T] {
	return &collection[T]{
		docs:  make(map[string]T),
		clone: clone,
		id:    id,
	}
}

func (c *collection[T]) all(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		c.mutex.RLock()
		snapshot := make([]T, 0, len(c.order))
		for _, id := range c.order {
			snapshot = append(snapshot, c.clone(c.docs[id]))
		}
		c.mutex.RUnlock()

		for _, doc := range snapshot {
			if err := ctx.Err(); err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !yield(doc, nil) {
				return
			}
		}
	}
}

func (c *collection[T]) get(id string) (T, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	doc, exists := c.docs[id]
	if !exists {
		var zero T
		return zero, false
	}
	return c.clone(doc), true
}

func (c *collection[T]) first(match func(T) bool) (T, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	for _, id := range c.order {
		if doc := c.docs[id]; match(doc) {
			return c.clone(doc), true
		}
	}
	var zero T
	return zero, false
}

// put stores a copy of doc, first assigning it a new id when it has none.
func (c *collection[T]) put(doc T) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	id := c.id(doc)
	if *id == "" {
		*id = uuid.NewString()
	}
	if _, exists := c.docs[*id]; !exists {
		c.order = append(c.order, *id)
	}
	c.docs[*id] = c.clone(doc)
}

func (c *collection[T]) remove(id string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.docs[id]; !exists {
		return
	}
	delete(c.docs, id)
	c.order = slices.DeleteFunc(c.order, func(s string) bool { return s == id })
}

func (c *collection[T]) drop() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.docs = make(map[string]T)
	c.order = nil
}
