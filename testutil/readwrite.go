package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	graph "github.com/davidk01/normalized-graph"
)

// Sample is a document exercising every kind of value,
// with one subtree ("addr") occurring twice.
func Sample() map[string]any {
	addr := map[string]any{"street": "1 Main St", "zip": 12345}
	return map[string]any{
		"name":    "ann",
		"admin":   true,
		"score":   9.5,
		"tags":    []any{"x", "y", "x"},
		"home":    addr,
		"work":    addr,
		"history": []any{map[string]any{"street": "1 Main St", "zip": 12345}, []any{}},
		"extra":   map[string]any{},
		"kind":    graph.Symbol("person"),
	}
}

// ReadWrite permits testing a Store implementation
// by adding a document to a Graph backed by it,
// then reading every entry back out to make sure the graph is complete and consistent.
func ReadWrite(ctx context.Context, t *testing.T, s graph.Store) {
	g := graph.New(s)

	root, err := g.Add(ctx, Sample())
	if err != nil {
		t.Fatal(err)
	}

	n, err := graph.Count(ctx, s)
	if err != nil {
		t.Fatal(err)
	}

	var visited int
	err = graph.Walk(ctx, s, root, -1, func(node graph.Node) error {
		visited++
		want, err := g.Digest(node.Value)
		if err != nil {
			return err
		}
		if want != node.Key {
			t.Errorf("entry %s holds a value whose key is %s", node.Key, want)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	// Everything in the store is reachable from the root,
	// counting atomic values that Walk reports inline.
	var atoms = make(map[graph.Key]bool)
	err = s.ListKeys(ctx, graph.Zero, func(k graph.Key) error {
		v, err := s.Get(ctx, k)
		if err != nil {
			return err
		}
		if graph.IsAtomic(v) {
			atoms[k] = true
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if visited+len(atoms) != n {
		t.Errorf("visited %d compound values and found %d atomic values, but store has %d entries", visited, len(atoms), n)
	}

	// Adding again changes nothing.
	root2, err := g.Add(ctx, Sample())
	if err != nil {
		t.Fatal(err)
	}
	if root2 != root {
		t.Errorf("second add got key %s, want %s", root2, root)
	}
	n2, err := graph.Count(ctx, s)
	if err != nil {
		t.Fatal(err)
	}
	if n2 != n {
		t.Errorf("second add grew store from %d to %d entries", n, n2)
	}

	// Put of an existing entry reports no addition.
	v, err := s.Get(ctx, root)
	if err != nil {
		t.Fatal(err)
	}
	added, err := s.Put(ctx, root, v)
	if err != nil {
		t.Fatal(err)
	}
	if added {
		t.Error("Put of existing entry reported added=true")
	}
	v2, err := s.Get(ctx, root)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(v, v2); diff != "" {
		t.Errorf("value changed after re-Put (-want +got):\n%s", diff)
	}

	if _, err = s.Get(ctx, graph.Key{0xff}); !errors.Is(err, graph.ErrNotFound) {
		t.Errorf("got error %v for missing key, want ErrNotFound", err)
	}
}
