package events

import (
	"slices"
	"sync"
)

// Keyed is a record with a stable id.
type Keyed interface {
	Key() string
}

// Collection is a list kept in sync by applying events. Applying the same
// event twice leaves it as applying it once.
type Collection[T Keyed] struct {
	mu    sync.RWMutex
	order []string
	items map[string]T
}

func NewCollection[T Keyed](initial ...T) *Collection[T] {
	c := &Collection[T]{items: make(map[string]T)}
	for _, v := range initial {
		c.Upsert(v)
	}
	return c
}

// Upsert replaces the record with the same key or appends v.
func (c *Collection[T]) Upsert(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := v.Key()
	if _, ok := c.items[k]; !ok {
		c.order = append(c.order, k)
	}
	c.items[k] = v
}

// Remove drops the record with key id; a missing id is ignored.
func (c *Collection[T]) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return
	}
	delete(c.items, id)
	c.order = slices.DeleteFunc(c.order, func(k string) bool { return k == id })
}

// Apply folds one event into the collection.
func (c *Collection[T]) Apply(e Event[T]) {
	switch e.Kind {
	case Created, Updated:
		if e.Record != nil {
			c.Upsert(*e.Record)
		}
	case Deleted:
		c.Remove(e.ID)
	}
}

func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[id]
	return v, ok
}

// Items returns the records in insertion order.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.items[k])
	}
	return out
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
