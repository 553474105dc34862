package store_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	graph "github.com/davidk01/normalized-graph"
	"github.com/davidk01/normalized-graph/store"
	"github.com/davidk01/normalized-graph/store/mem"
)

func TestSync(t *testing.T) {
	var (
		ctx    = context.Background()
		stores = []graph.Store{mem.New(), mem.New(), mem.New()}
		inputs = []any{
			map[string]any{"a": 1, "b": []any{1, 2}},
			[]any{map[string]any{"b": []any{1, 2}}, "z"},
			"only",
		}
	)

	roots := make([]graph.Key, len(inputs))
	for i, input := range inputs {
		k, err := graph.New(stores[i]).Add(ctx, input)
		if err != nil {
			t.Fatal(err)
		}
		roots[i] = k
	}

	if err := store.Sync(ctx, stores); err != nil {
		t.Fatal(err)
	}

	var want []graph.Key
	for i, s := range stores {
		var got []graph.Key
		err := s.ListKeys(ctx, graph.Zero, func(k graph.Key) error {
			got = append(got, k)
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
		if i == 0 {
			want = got
			continue
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("store %d differs from store 0 (-want +got):\n%s", i, diff)
		}
	}

	// Every root resolves completely in every store.
	for _, s := range stores {
		for _, root := range roots {
			err := graph.Walk(ctx, s, root, -1, func(graph.Node) error { return nil })
			if err != nil {
				t.Errorf("walking %s: %s", root, err)
			}
		}
	}
}
