package cache

import "context"

// Repository stores opaque values by key.
type Repository interface {
	// Get returns the stored value, or (nil, nil) when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set inserts or overwrites the value of key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists stored keys starting with prefix, in lexical order.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Transactor is implemented by repositories that can group writes so they
// land together or not at all.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error
}

// InTx runs fn inside a transaction when r supports one, and directly
// against r otherwise.
func InTx(ctx context.Context, r Repository, fn func(ctx context.Context, tx Repository) error) error {
	if t, ok := r.(Transactor); ok {
		return t.InTx(ctx, fn)
	}
	return fn(ctx, r)
}
