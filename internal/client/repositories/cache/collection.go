package cache

import (
	"context"
	"encoding/json"
	"fmt"
)

// Collection names a per-user entity collection.
type Collection string

const (
	Vehicles     Collection = "vehicles"
	Maintenances Collection = "maintenances"
	Reminders    Collection = "reminders"
)

// AllCollections lists collections in dependency order: vehicles first.
var AllCollections = []Collection{Vehicles, Maintenances, Reminders}

// Key returns the cache key of c for userID, e.g. "vehicles_42".
func (c Collection) Key(userID string) string {
	return string(c) + "_" + userID
}

// LoadList decodes the JSON array stored under key. A missing key yields an
// empty slice.
func LoadList[T any](ctx context.Context, r Repository, key string) ([]T, error) {
	raw, err := r.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	items := make([]T, 0)
	if raw == nil {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode cache[%s]: %w", key, err)
	}
	return items, nil
}

// SaveList stores items under key as a JSON array. A nil slice is stored as [].
func SaveList[T any](ctx context.Context, r Repository, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cache[%s]: %w", key, err)
	}
	return r.Set(ctx, key, raw)
}

// LoadValue decodes a single JSON document. found is false when key is absent.
func LoadValue[T any](ctx context.Context, r Repository, key string) (value T, found bool, err error) {
	raw, err := r.Get(ctx, key)
	if err != nil || raw == nil {
		return value, false, err
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return value, false, fmt.Errorf("decode cache[%s]: %w", key, err)
	}
	return value, true, nil
}

// SaveValue stores value as a JSON document.
func SaveValue[T any](ctx context.Context, r Repository, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache[%s]: %w", key, err)
	}
	return r.Set(ctx, key, raw)
}
