package graph_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	. "github.com/davidk01/normalized-graph"
	"github.com/davidk01/normalized-graph/store/mem"
)

func walkAll(t *testing.T, g Getter, root Key, maxDepth int) []Node {
	t.Helper()
	var nodes []Node
	err := Walk(context.Background(), g, root, maxDepth, func(n Node) error {
		nodes = append(nodes, n)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return nodes
}

func TestWalk(t *testing.T) {
	var (
		s    = mem.New()
		g    = New(s)
		leaf = map[string]any{"x": 1}
		root = add(t, g, map[string]any{
			"a": leaf,
			"b": []any{leaf, "s"},
			"c": true,
		})
	)

	nodes := walkAll(t, g, root, -1)

	// Root, the shared leaf once, and the array.
	if len(nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(nodes))
	}
	if nodes[0].Key != root || nodes[0].Depth != 0 {
		t.Errorf("first node is %s at depth %d, want root at depth 0", nodes[0].Key, nodes[0].Depth)
	}

	var (
		gotLabels  []string
		wantLabels = []string{"a", "b", "c"}
	)
	for _, f := range nodes[0].Fields {
		gotLabels = append(gotLabels, f.Label)
	}
	if diff := cmp.Diff(wantLabels, gotLabels); diff != "" {
		t.Errorf("root labels mismatch (-want +got):\n%s", diff)
	}

	if a := nodes[0].Fields[0].Atomic; a != nil {
		t.Errorf("got atomic %v for compound field a", a)
	}
	if c := nodes[0].Fields[2].Atomic; c != Bool(true) {
		t.Errorf("got atomic %v for field c, want true", c)
	}

	// The leaf is reached through "a" first, at depth 1.
	if nodes[1].Depth != 1 {
		t.Errorf("got depth %d for second node, want 1", nodes[1].Depth)
	}
	if _, ok := nodes[1].Value.(Map); !ok {
		t.Errorf("got %T for second node, want Map", nodes[1].Value)
	}
	arr, ok := nodes[2].Value.(Array)
	if !ok {
		t.Fatalf("got %T for third node, want Array", nodes[2].Value)
	}
	if len(arr) != 2 || arr[0] != nodes[1].Key {
		t.Errorf("array does not refer to the shared leaf")
	}
	if nodes[2].Fields[1].Atomic != String("s") {
		t.Errorf("got atomic %v for array field 1, want \"s\"", nodes[2].Fields[1].Atomic)
	}
}

func TestWalkDepth(t *testing.T) {
	var (
		s    = mem.New()
		g    = New(s)
		root = add(t, g, []any{[]any{[]any{[]any{"deep"}}}})
	)

	cases := []struct {
		maxDepth, want int
	}{
		{maxDepth: -1, want: 4},
		{maxDepth: 0, want: 1},
		{maxDepth: 1, want: 2},
		{maxDepth: 3, want: 4},
		{maxDepth: 10, want: 4},
	}

	for _, tc := range cases {
		nodes := walkAll(t, g, root, tc.maxDepth)
		if len(nodes) != tc.want {
			t.Errorf("maxDepth %d: got %d nodes, want %d", tc.maxDepth, len(nodes), tc.want)
		}
		for _, n := range nodes {
			if tc.maxDepth >= 0 && n.Depth > tc.maxDepth {
				t.Errorf("maxDepth %d: visited node at depth %d", tc.maxDepth, n.Depth)
			}
		}
	}

	// Edges past the limit are still reported.
	nodes := walkAll(t, g, root, 0)
	if len(nodes[0].Fields) != 1 {
		t.Errorf("got %d fields at the depth limit, want 1", len(nodes[0].Fields))
	}
}

func TestWalkAtomicRoot(t *testing.T) {
	var (
		s    = mem.New()
		g    = New(s)
		root = add(t, g, "hello")
	)

	nodes := walkAll(t, g, root, -1)
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	if nodes[0].Value != String("hello") {
		t.Errorf("got %v, want \"hello\"", nodes[0].Value)
	}
	if len(nodes[0].Fields) != 0 {
		t.Errorf("got %d fields for an atomic value", len(nodes[0].Fields))
	}
}

func TestWalkStop(t *testing.T) {
	var (
		s    = mem.New()
		g    = New(s)
		root = add(t, g, []any{[]any{1}, []any{2}})
		stop = errors.New("stop")
		n    int
	)

	err := Walk(context.Background(), g, root, -1, func(Node) error {
		n++
		if n == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Errorf("got error %v, want %v", err, stop)
	}
	if n != 2 {
		t.Errorf("visited %d nodes after stopping, want 2", n)
	}
}

func TestWalkMissing(t *testing.T) {
	err := Walk(context.Background(), mem.New(), Key{1}, -1, func(Node) error { return nil })
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got error %v, want ErrNotFound", err)
	}
}

func TestCopy(t *testing.T) {
	var (
		ctx  = context.Background()
		src  = mem.New()
		dst  = mem.New()
		g    = New(src)
		raw  = map[string]any{"a": []any{1, 2}, "b": []any{1, 2}, "c": "x"}
		root = add(t, g, raw)
	)

	n, err := Copy(ctx, dst, src, root)
	if err != nil {
		t.Fatal(err)
	}
	if n != src.Len() {
		t.Errorf("copied %d entries, want %d", n, src.Len())
	}
	if dst.Len() != src.Len() {
		t.Errorf("destination has %d entries, want %d", dst.Len(), src.Len())
	}

	// Everything is already there.
	n, err = Copy(ctx, dst, src, root)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("second copy added %d entries, want 0", n)
	}

	// The copy normalizes to the same key.
	k, err := New(dst).Add(ctx, raw)
	if err != nil {
		t.Fatal(err)
	}
	if k != root {
		t.Errorf("got key %s from destination, want %s", k, root)
	}
	if dst.Len() != src.Len() {
		t.Errorf("re-adding to destination changed its size")
	}
}

func TestWalkDeep(t *testing.T) {
	const depth = 200000

	var v any = "bottom"
	for i := 0; i < depth; i++ {
		v = []any{v}
	}

	var (
		s    = mem.New()
		g    = New(s)
		root = add(t, g, v)
		n    int
		last int
	)

	err := Walk(context.Background(), g, root, -1, func(node Node) error {
		if node.Depth != n {
			t.Fatalf("node %d has depth %d", n, node.Depth)
		}
		n++
		last = node.Depth
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if n != depth {
		t.Errorf("visited %d nodes, want %d", n, depth)
	}
	if last != depth-1 {
		t.Errorf("deepest node at depth %d, want %d", last, depth-1)
	}
}

func TestWalkRevisitShallower(t *testing.T) {
	// The leaf is first reached through "a", too deep to visit,
	// then again within the limit through "b".
	var (
		s    = mem.New()
		g    = New(s)
		leaf = []any{"leaf"}
		root = add(t, g, map[string]any{
			"a": []any{[]any{leaf}},
			"b": leaf,
		})
	)

	nodes := walkAll(t, g, root, 1)
	leafKey := add(t, g, leaf)

	var found bool
	for _, n := range nodes {
		if n.Key == leafKey {
			found = true
			if n.Depth != 1 {
				t.Errorf("leaf visited at depth %d, want 1", n.Depth)
			}
		}
	}
	if !found {
		t.Error("leaf reachable within the depth limit was not visited")
	}
}
