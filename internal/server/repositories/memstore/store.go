// Package memstore is a document-style implementation of the server
// repositories. Each record is kept as a JSON document keyed by a string
// UUID inside a named collection. It needs no external service and is
// meant for development and tests.
package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophgarage/internal/server/repositories"
)

const (
	usersCollection        = "users"
	vehiclesCollection     = "vehicles"
	maintenancesCollection = "maintenances"
	remindersCollection    = "reminders"
	devicesCollection      = "device_tokens"
)

// Store keeps every collection in memory.
type Store struct {
	mu   sync.RWMutex
	docs map[string]map[string][]byte

	// txMu serialises WithTx callers.
	txMu sync.Mutex
	// signupMu makes the uniqueness check and insert of a user atomic.
	signupMu sync.Mutex
}

var _ repositories.RepositoryManager = (*Store)(nil)

func New() *Store {
	return &Store{docs: make(map[string]map[string][]byte)}
}

func (s *Store) Users() repositories.Users { return &userRepo{users: collection[userDoc]{s, usersCollection}} }

func (s *Store) Vehicles() repositories.Vehicles { return newVehicleRepo(s) }

func (s *Store) Maintenances() repositories.Maintenances { return newMaintenanceRepo(s) }

func (s *Store) Reminders() repositories.Reminders { return newReminderRepo(s) }

func (s *Store) Devices() repositories.Devices {
	return &deviceRepo{devices: collection[deviceDoc]{s, devicesCollection}}
}

// WithTx snapshots all collections and restores them when fn fails or
// panics. Writes made outside fn meanwhile are lost on restore.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx repositories.RepositoryManager) error) (err error) {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snapshot := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(snapshot)
			panic(p)
		}
		if err != nil {
			s.restore(snapshot)
		}
	}()

	return fn(ctx, s)
}

func (s *Store) Close() error { return nil }

func (s *Store) snapshot() map[string]map[string][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]map[string][]byte, len(s.docs))
	for name, coll := range s.docs {
		c := make(map[string][]byte, len(coll))
		for k, v := range coll {
			c[k] = v
		}
		out[name] = c
	}
	return out
}

func (s *Store) restore(docs map[string]map[string][]byte) {
	s.mu.Lock()
	s.docs = docs
	s.mu.Unlock()
}

// collection is a typed view over one named collection.
type collection[T any] struct {
	s    *Store
	name string
}

func (c collection[T]) put(key string, v T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", c.name, key, err)
	}

	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	coll, ok := c.s.docs[c.name]
	if !ok {
		coll = make(map[string][]byte)
		c.s.docs[c.name] = coll
	}
	coll[key] = b
	return nil
}

func (c collection[T]) get(key string) (T, bool, error) {
	var v T

	c.s.mu.RLock()
	b, ok := c.s.docs[c.name][key]
	c.s.mu.RUnlock()

	if !ok {
		return v, false, nil
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return v, false, fmt.Errorf("decode %s/%s: %w", c.name, key, err)
	}
	return v, true, nil
}

// find decodes every document for which keep returns true.
func (c collection[T]) find(keep func(T) bool) ([]T, error) {
	c.s.mu.RLock()
	raw := make([][]byte, 0, len(c.s.docs[c.name]))
	for _, b := range c.s.docs[c.name] {
		raw = append(raw, b)
	}
	c.s.mu.RUnlock()

	out := []T{}
	for _, b := range raw {
		var v T
		if err := json.Unmarshal(b, &v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", c.name, err)
		}
		if keep(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (c collection[T]) delete(key string) bool {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if _, ok := c.s.docs[c.name][key]; !ok {
		return false
	}
	delete(c.s.docs[c.name], key)
	return true
}
