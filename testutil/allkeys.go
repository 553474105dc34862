package testutil

import (
	"context"
	"sort"
	"testing"
	"testing/quick"

	"github.com/google/go-cmp/cmp"

	graph "github.com/davidk01/normalized-graph"
)

// AllKeys adds a random set of random strings to an empty store
// and makes sure that the right set of keys comes back in a call to ListKeys.
func AllKeys(ctx context.Context, t *testing.T, storeFactory func() graph.Store) {
	if err := quick.Check(allKeysHelper(ctx, t, storeFactory), nil); err != nil {
		t.Error(err)
	}
}

func allKeysHelper(ctx context.Context, t *testing.T, storeFactory func() graph.Store) func([]string) bool {
	return func(strs []string) bool {
		var (
			g    = graph.New(storeFactory())
			want []graph.Key
			seen = make(map[graph.Key]bool)
		)
		for _, s := range strs {
			k, err := g.Add(ctx, s)
			if err != nil {
				t.Fatal(err)
			}
			if !seen[k] {
				seen[k] = true
				want = append(want, k)
			}
		}
		var got []graph.Key
		err := g.ListKeys(ctx, graph.Zero, func(k graph.Key) error {
			got = append(got, k)
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}

		if !sort.SliceIsSorted(got, func(i, j int) bool { return got[i].Less(got[j]) }) {
			t.Log("ListKeys produced keys out of order")
			return false
		}

		sort.Slice(want, func(i, j int) bool { return want[i].Less(want[j]) })

		if diff := cmp.Diff(want, got); diff != "" {
			t.Logf("mismatch (-want +got):\n%s", diff)
			return false
		}
		return true
	}
}
