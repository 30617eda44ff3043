package reconcile

import (
	"context"
	"sync"
)

// Status is the lifecycle stage of an optimistic add.
type Status int

const (
	// Pending: applied locally, remote answer outstanding.
	Pending Status = iota
	// Committed: the server accepted the record; Value carries the canonical ID.
	Committed
	// RolledBack: the server rejected the record and it was removed locally.
	RolledBack
	// LocalOnly: kept locally without server confirmation. Err is set when a
	// remote attempt failed.
	LocalOnly
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Committed:
		return "committed"
	case RolledBack:
		return "rolled back"
	case LocalOnly:
		return "local only"
	default:
		return "unknown"
	}
}

// Op tracks one optimistic add.
type Op[T any] struct {
	mu     sync.Mutex
	status Status
	value  T
	err    error
	done   chan struct{}
}

func newOp[T any](v T) *Op[T] {
	return &Op[T]{status: Pending, value: v, done: make(chan struct{})}
}

func (o *Op[T]) settle(status Status, v T, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.status != Pending {
		return
	}
	o.status, o.value, o.err = status, v, err
	close(o.done)
}

func (o *Op[T]) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// Value returns the record as last known: the optimistic one while pending,
// the canonical one once committed.
func (o *Op[T]) Value() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

func (o *Op[T]) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

// Done is closed once the op leaves Pending.
func (o *Op[T]) Done() <-chan struct{} {
	return o.done
}

// Wait blocks until the op settles or ctx ends.
func (o *Op[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-o.done:
		o.mu.Lock()
		defer o.mu.Unlock()
		return o.value, o.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
