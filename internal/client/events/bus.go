// Package events carries record changes from the services that make them to
// the screens that list them.
package events

import "sync"

type Kind string

const (
	Created Kind = "created"
	Updated Kind = "updated"
	Deleted Kind = "deleted"
)

// Event announces a change to the record with ID. Record is nil for Deleted.
type Event[T any] struct {
	Kind   Kind
	ID     string
	Record *T
}

// Bus fans events out to subscribers. Publish never blocks: a subscriber
// whose buffer is full misses the event.
type Bus[T any] struct {
	mu     sync.RWMutex
	subs   map[int]chan Event[T]
	nextID int
}

func NewBus[T any]() *Bus[T] {
	return &Bus[T]{subs: make(map[int]chan Event[T])}
}

// Subscribe registers a subscriber. cancel removes it and closes the channel.
func (b *Bus[T]) Subscribe(buffer int) (<-chan Event[T], func()) {
	ch := make(chan Event[T], buffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
}

// Publish delivers e to every subscriber at most once. It reports how many
// subscribers received it.
func (b *Bus[T]) Publish(e Event[T]) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for _, ch := range b.subs {
		select {
		case ch <- e:
			n++
		default:
		}
	}
	return n
}
