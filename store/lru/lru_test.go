package lru

import (
	"context"
	"testing"

	graph "github.com/davidk01/normalized-graph"
	"github.com/davidk01/normalized-graph/store/mem"
	"github.com/davidk01/normalized-graph/testutil"
)

func TestStore(t *testing.T) {
	s, err := New(mem.New(), 1000)
	if err != nil {
		t.Fatal(err)
	}
	testutil.ReadWrite(context.Background(), t, s)
}

func TestSmallCache(t *testing.T) {
	// A cache much smaller than the graph still serves every entry.
	s, err := New(mem.New(), 2)
	if err != nil {
		t.Fatal(err)
	}
	testutil.ReadWrite(context.Background(), t, s)
}

func TestAllKeys(t *testing.T) {
	testutil.AllKeys(context.Background(), t, func() graph.Store {
		s, err := New(mem.New(), 10)
		if err != nil {
			t.Fatal(err)
		}
		return s
	})
}
