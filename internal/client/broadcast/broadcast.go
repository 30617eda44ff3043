// Package broadcast implements a publish/subscribe subject that always hands
// each subscriber its own copy of the latest value.
package broadcast

import "sync"

// Broadcaster fans out values of type T. New subscribers immediately receive
// the current value. Delivery never blocks the publisher: a subscriber that
// has not consumed the previous value gets it replaced by the newer one.
type Broadcaster[T any] struct {
	mu     sync.Mutex
	clone  func(T) T
	latest T
	subs   map[int]chan T
	nextID int
	closed bool
}

// New returns a Broadcaster holding initial. clone copies a value for each
// subscriber; nil means values are passed as is (fine for immutable T).
func New[T any](initial T, clone func(T) T) *Broadcaster[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &Broadcaster[T]{clone: clone, latest: initial, subs: make(map[int]chan T)}
}

// Publish stores v as the latest value and offers a copy to every subscriber.
func (b *Broadcaster[T]) Publish(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.latest = b.clone(v)
	for _, ch := range b.subs {
		offer(ch, b.clone(v))
	}
}

// Latest returns a copy of the most recently published value.
func (b *Broadcaster[T]) Latest() T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.clone(b.latest)
}

// Subscribe returns a channel primed with the latest value and a cancel
// func that unsubscribes and closes the channel.
func (b *Broadcaster[T]) Subscribe() (<-chan T, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan T, 1)
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	ch <- b.clone(b.latest)

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if c, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(c)
			}
		})
	}
}

// Close closes every subscriber channel. Later publishes are dropped.
func (b *Broadcaster[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

// offer sends v, dropping a stale buffered value first. Only the publisher
// sends, under b.mu, so the second send cannot block.
func offer[T any](ch chan T, v T) {
	select {
	case ch <- v:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	ch <- v
}
