package reconcile

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/gophgarage/internal/client/broadcast"
	"github.com/dmitrijs2005/gophgarage/internal/client/repositories/cache"
	"github.com/dmitrijs2005/gophgarage/internal/models"
)

// entitySet is one in-memory collection plus everything needed to mirror it:
// field accessors, remote calls and the observers. It is only touched with
// Reconciler.mu held.
type entitySet[T any] struct {
	name  cache.Collection
	items []T

	id        func(T) models.ID
	owner     func(T) models.ID
	vehicleOf func(T) models.ID
	setID     func(*T, models.ID)
	setOwner  func(*T, models.ID)

	list   func(ctx context.Context) ([]T, error)
	create func(ctx context.Context, v T) (T, error)
	update func(ctx context.Context, v T) (T, error)
	remove func(ctx context.Context, id models.ID) error

	// rollback removes a record whose remote creation failed.
	rollback bool

	// afterDelete and afterCanonical let dependent collections follow a
	// removed record or its new canonical ID.
	afterDelete    func(ctx context.Context, id models.ID)
	afterCanonical func(ctx context.Context, from, to models.ID)

	out         *broadcast.Broadcaster[[]T]
	emptyRemote *broadcast.Broadcaster[bool]
}

func newEntitySet[T any](name cache.Collection) *entitySet[T] {
	return &entitySet[T]{
		name:        name,
		items:       make([]T, 0),
		out:         broadcast.New([]T{}, slices.Clone[[]T]),
		emptyRemote: broadcast.New(false, nil),
	}
}

func (s *entitySet[T]) index(id models.ID) int {
	return slices.IndexFunc(s.items, func(v T) bool { return s.id(v) == id })
}

func (s *entitySet[T]) get(id models.ID) (T, bool) {
	if i := s.index(id); i >= 0 {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

// put replaces the record with the same ID or appends v.
func (s *entitySet[T]) put(v T) {
	if i := s.index(s.id(v)); i >= 0 {
		s.items[i] = v
		return
	}
	s.items = append(s.items, v)
}

func (s *entitySet[T]) delete(id models.ID) bool {
	n := len(s.items)
	s.items = slices.DeleteFunc(s.items, func(v T) bool { return s.id(v) == id })
	return len(s.items) != n
}

// deleteWhere removes the records matching match and returns their IDs.
func (s *entitySet[T]) deleteWhere(match func(T) bool) []models.ID {
	var ids []models.ID
	for _, v := range s.items {
		if match(v) {
			ids = append(ids, s.id(v))
		}
	}
	if len(ids) > 0 {
		s.items = slices.DeleteFunc(s.items, match)
	}
	return ids
}

func (s *entitySet[T]) rename(from, to models.ID) bool {
	i := s.index(from)
	if i < 0 {
		return false
	}
	s.setID(&s.items[i], to)
	return true
}

// rewriteVehicle repoints records referencing vehicle from to vehicle to.
func (s *entitySet[T]) rewriteVehicle(from, to models.ID, setVehicle func(*T, models.ID)) bool {
	changed := false
	for i := range s.items {
		if s.vehicleOf(s.items[i]) == from {
			setVehicle(&s.items[i], to)
			changed = true
		}
	}
	return changed
}

func (s *entitySet[T]) filter(match func(T) bool) []T {
	out := make([]T, 0, len(s.items))
	for _, v := range s.items {
		if match(v) {
			out = append(out, v)
		}
	}
	return out
}

func (s *entitySet[T]) snapshot() []T {
	return slices.Clone(s.items)
}

func (s *entitySet[T]) reset(items []T) {
	if items == nil {
		items = make([]T, 0)
	}
	s.items = items
}
