package store

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	graph "github.com/davidk01/normalized-graph"
)

// Sync synchronizes two or more stores.
// It runs ListKeys on all input stores.
// When a key is found to be in some but not all stores,
// its value, and everything reachable from it,
// is copied into the stores where it's missing,
// children before parents.
//
// Since stores are content-addressed and append-only,
// the result is the union of the inputs
// and no entry can conflict with another.
func Sync(ctx context.Context, stores []graph.Store) error {
	if len(stores) < 2 {
		return nil
	}

	var (
		mu    sync.Mutex
		sets  = make([]map[graph.Key]bool, len(stores))
		owner = make(map[graph.Key]int) // some store holding each key
	)

	eg, ctx2 := errgroup.WithContext(ctx)
	for i, s := range stores {
		i, s := i, s
		eg.Go(func() error {
			set := make(map[graph.Key]bool)
			err := s.ListKeys(ctx2, graph.Zero, func(k graph.Key) error {
				set[k] = true
				return nil
			})
			if err != nil {
				return errors.Wrapf(err, "listing keys in store %d", i)
			}

			mu.Lock()
			defer mu.Unlock()

			sets[i] = set
			for k := range set {
				if _, ok := owner[k]; !ok {
					owner[k] = i
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	eg, ctx2 = errgroup.WithContext(ctx)
	for i, s := range stores {
		i, s := i, s
		eg.Go(func() error {
			for k, j := range owner {
				if sets[i][k] {
					continue
				}
				if _, err := graph.Copy(ctx2, s, stores[j], k); err != nil {
					return errors.Wrapf(err, "copying %s from store %d to store %d", k, j, i)
				}
			}
			return nil
		})
	}
	return eg.Wait()
}
