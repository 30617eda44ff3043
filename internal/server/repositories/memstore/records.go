package memstore

import (
	"sort"

	"github.com/dmitrijs2005/gophgarage/internal/common"
	"github.com/dmitrijs2005/gophgarage/internal/models"
	"github.com/google/uuid"
)

// records is a collection of user-owned documents.
type records[T any] struct {
	coll  collection[T]
	id    func(*T) *models.ID
	owner func(T) models.ID
}

func (r records[T]) create(v *T) error {
	id := r.id(v)
	if *id == "" {
		*id = models.ID(uuid.NewString())
	}
	return r.coll.put(string(*id), *v)
}

func (r records[T]) get(userID, id models.ID) (*T, error) {
	v, ok, err := r.coll.get(string(id))
	if err != nil {
		return nil, err
	}
	if !ok || r.owner(v) != userID {
		return nil, common.ErrorNotFound
	}
	return &v, nil
}

func (r records[T]) update(v *T) error {
	id := *r.id(v)
	if _, err := r.get(r.owner(*v), id); err != nil {
		return err
	}
	return r.coll.put(string(id), *v)
}

func (r records[T]) delete(userID, id models.ID) error {
	if _, err := r.get(userID, id); err != nil {
		return err
	}
	r.coll.delete(string(id))
	return nil
}

// list returns the user's documents accepted by keep, sorted with less.
func (r records[T]) list(userID models.ID, keep func(T) bool, less func(a, b T) bool) ([]T, error) {
	items, err := r.coll.find(func(v T) bool { return r.owner(v) == userID && keep(v) })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
	return items, nil
}

func (r records[T]) deleteWhere(userID models.ID, match func(T) bool) error {
	items, err := r.list(userID, match, func(a, b T) bool { return false })
	if err != nil {
		return err
	}
	for i := range items {
		r.coll.delete(string(*r.id(&items[i])))
	}
	return nil
}
