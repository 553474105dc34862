// Package lru implements a Store that acts as a least-recently-used cache for a nested Store.
package lru

import (
	"context"
	"encoding/json"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	graph "github.com/davidk01/normalized-graph"
	"github.com/davidk01/normalized-graph/store"
)

var _ graph.Store = &Store{}

// Store implements a memory-based least-recently-used cache for a Store.
// Writes pass through to the underlying Store.
type Store struct {
	c *lru.Cache // Key->Value
	s graph.Store
}

// New produces a new Store backed by `s` and caching up to `size` values.
func New(s graph.Store, size int) (*Store, error) {
	c, err := lru.New(size)
	return &Store{s: s, c: c}, err
}

// Get gets the value with key `k`.
func (s *Store) Get(ctx context.Context, k graph.Key) (graph.Value, error) {
	if got, ok := s.c.Get(k); ok {
		return got.(graph.Value), nil
	}
	v, err := s.s.Get(ctx, k)
	if err != nil {
		return nil, err
	}
	s.c.Add(k, v)
	return v, nil
}

// Put adds a value to the store if it wasn't already present.
func (s *Store) Put(ctx context.Context, k graph.Key, v graph.Value) (bool, error) {
	added, err := s.s.Put(ctx, k, v)
	if err != nil {
		return added, err
	}
	s.c.Add(k, v)
	return added, nil
}

// ListKeys produces all keys in the nested store, in lexicographic order.
func (s *Store) ListKeys(ctx context.Context, start graph.Key, f func(graph.Key) error) error {
	return s.s.ListKeys(ctx, start, f)
}

func init() {
	store.Register("lru", func(ctx context.Context, conf map[string]interface{}) (graph.Store, error) {
		size, err := intParam(conf["size"])
		if err != nil {
			return nil, errors.Wrap(err, `"size" parameter`)
		}
		nested, err := store.CreateNested(ctx, conf)
		if err != nil {
			return nil, err
		}
		return New(nested, size)
	})
}

// intParam accepts the shapes a number takes in a decoded config map.
func intParam(p interface{}) (int, error) {
	switch p := p.(type) {
	case int:
		return p, nil
	case float64:
		return int(p), nil
	case json.Number:
		n, err := p.Int64()
		return int(n), err
	case nil:
		return 0, errors.New("missing")
	}
	return 0, errors.Errorf("got %T, want number", p)
}
