// Package logging implements a Store that delegates everything to a nested Store,
// logging operations as they happen.
package logging

import (
	"context"
	"log"

	graph "github.com/davidk01/normalized-graph"
	"github.com/davidk01/normalized-graph/store"
)

var _ graph.Store = &Store{}

type Store struct {
	s graph.Store
}

func New(s graph.Store) *Store {
	return &Store{s: s}
}

func (s *Store) Get(ctx context.Context, k graph.Key) (graph.Value, error) {
	v, err := s.s.Get(ctx, k)
	if err != nil {
		log.Printf("ERROR Get %s: %s", k, err)
	} else {
		log.Printf("Get %s (%s)", k, v.Kind())
	}
	return v, err
}

func (s *Store) ListKeys(ctx context.Context, start graph.Key, f func(graph.Key) error) error {
	log.Printf("ListKeys, start=%s", start)
	return s.s.ListKeys(ctx, start, func(k graph.Key) error {
		err := f(k)
		if err != nil {
			log.Printf("  ERROR in ListKeys: %s: %s", k, err)
		} else {
			log.Printf("  ListKeys: %s", k)
		}
		return err
	})
}

func (s *Store) Put(ctx context.Context, k graph.Key, v graph.Value) (bool, error) {
	added, err := s.s.Put(ctx, k, v)
	if err != nil {
		log.Printf("ERROR in Put: %s", err)
	} else {
		log.Printf("Put %s (%s), added=%v", k, v.Kind(), added)
	}
	return added, err
}

func init() {
	store.Register("logging", func(ctx context.Context, conf map[string]interface{}) (graph.Store, error) {
		nested, err := store.CreateNested(ctx, conf)
		if err != nil {
			return nil, err
		}
		return New(nested), nil
	})
}
