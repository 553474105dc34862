// Package mem implements an in-memory Store.
package mem

import (
	"context"
	"sort"
	"sync"

	graph "github.com/davidk01/normalized-graph"
	"github.com/davidk01/normalized-graph/store"
)

var _ graph.Store = &Store{}

// Store is a memory-based implementation of a Store.
type Store struct {
	mu     sync.Mutex
	values map[graph.Key]graph.Value
}

// New produces a new, empty Store.
func New() *Store {
	return &Store{
		values: make(map[graph.Key]graph.Value),
	}
}

// Get gets the value with key `k`.
func (s *Store) Get(_ context.Context, k graph.Key) (graph.Value, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.values[k]; ok {
		return v, nil
	}
	return nil, graph.ErrNotFound
}

// Put adds a value to the store if it wasn't already present.
func (s *Store) Put(_ context.Context, k graph.Key, v graph.Value) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[k]; ok {
		return false, nil
	}
	s.values[k] = v
	return true, nil
}

// Len tells the number of entries in the store.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.values)
}

// ListKeys produces all keys in the store, in lexicographic order.
func (s *Store) ListKeys(ctx context.Context, start graph.Key, f func(graph.Key) error) error {
	s.mu.Lock()
	keys := make([]graph.Key, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	s.mu.Unlock()

	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	index := sort.Search(len(keys), func(n int) bool {
		return start.Less(keys[n])
	})

	for i := index; i < len(keys); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := f(keys[i])
		if err != nil {
			return err
		}
	}
	return nil
}

func init() {
	store.Register("mem", func(context.Context, map[string]interface{}) (graph.Store, error) {
		return New(), nil
	})
}
