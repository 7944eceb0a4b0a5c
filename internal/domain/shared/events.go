// Package shared holds building blocks used by several application controllers
package shared

import "sync"

// Listener receives a published value
type Listener[T any] func(T)

// Broadcaster fans a value out to every subscribed listener.
// Listeners run synchronously on the publishing goroutine, one publication at
// a time, so a listener never runs concurrently with itself or another
// listener of the same Broadcaster. Listeners must not block and must not
// publish on the Broadcaster that called them.
type Broadcaster[T any] struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]Listener[T]

	deliver   sync.Mutex
	delivered uint64
}

// Subscribe registers fn and returns a function that removes it again.
// The returned function is safe to call more than once.
func (b *Broadcaster[T]) Subscribe(fn Listener[T]) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.listeners == nil {
		b.listeners = make(map[int]Listener[T])
	}
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.listeners, id)
	}
}

// Publish delivers v to the current listeners
func (b *Broadcaster[T]) Publish(v T) {
	b.deliver.Lock()
	defer b.deliver.Unlock()

	b.notify(v)
}

// PublishVersion delivers v unless a value with the same or a newer version
// has already been delivered. Versions are taken under the owner's lock when
// the snapshot is made, so listeners see snapshots in the order they were
// taken even when publishers race. It reports whether v was delivered.
func (b *Broadcaster[T]) PublishVersion(version uint64, v T) bool {
	b.deliver.Lock()
	defer b.deliver.Unlock()

	if version <= b.delivered {
		return false
	}
	b.delivered = version
	b.notify(v)
	return true
}

func (b *Broadcaster[T]) notify(v T) {
	b.mu.Lock()
	listeners := make([]Listener[T], 0, len(b.listeners))
	for _, fn := range b.listeners {
		listeners = append(listeners, fn)
	}
	b.mu.Unlock()

	for _, fn := range listeners {
		fn(v)
	}
}

// Len returns the number of subscribed listeners
func (b *Broadcaster[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}
