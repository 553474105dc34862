package graph

import "context"

// Getter is a read-only Store (qv).
type Getter interface {
	// Get gets a canonical value by its key.
	// It returns ErrNotFound if the key is absent.
	Get(context.Context, Key) (Value, error)

	// ListKeys calls a function for each key in the store in lexicographic order,
	// beginning with the first key _after_ the specified one.
	//
	// The calls reflect at least the set of keys
	// known at the moment ListKeys was called.
	// It is unspecified whether later changes,
	// that happen concurrently with ListKeys,
	// are reflected.
	//
	// If the callback function returns an error,
	// ListKeys exits with that error.
	ListKeys(context.Context, Key, func(Key) error) error
}

// Store is the backing map of a Graph:
// an append-only mapping from Key to canonical Value.
// There is no way to remove or change an entry.
//
// Implementations do not compute keys.
// Callers (normally a Graph) must pass the key that is the digest of the value,
// so that writing an existing key is a harmless no-op.
type Store interface {
	Getter

	// Put adds v under k if k was not already present.
	// It returns true iff the entry had to be added.
	Put(ctx context.Context, k Key, v Value) (added bool, err error)
}

// Count reports the number of entries in g.
func Count(ctx context.Context, g Getter) (int, error) {
	if l, ok := g.(interface{ Len() int }); ok {
		return l.Len(), nil
	}
	var n int
	err := g.ListKeys(ctx, Zero, func(Key) error {
		n++
		return nil
	})
	return n, err
}
