package graph

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
)

// Node is a stored value as seen by Walk.
type Node struct {
	Key   Key
	Value Value
	Depth int

	// Fields holds one entry per array element or map entry
	// of a compound value, in stored order.
	// It is empty for atomic values.
	Fields []Field
}

// Field is one slot of a compound Node.
type Field struct {
	Index int
	Label string // decimal index for arrays, entry name for maps
	Key   Key

	// Atomic is the child's value when it is atomic, and nil otherwise.
	// Atomic children are meant to be shown inline in their parent;
	// compound children are reached through an edge.
	Atomic Value
}

// Walk calls visit for each value reachable from root,
// parents before children.
// Each key is visited at most once,
// so shared subgraphs are reported once.
// Values more than maxDepth edges from root are not visited
// (though edges to them still appear in their parents' Fields).
// A negative maxDepth means no limit.
//
// Walk descends only into compound children.
// If visit returns an error, Walk exits with that error.
func Walk(ctx context.Context, g Getter, root Key, maxDepth int, visit func(Node) error) error {
	type item struct {
		k     Key
		depth int
	}

	var (
		visited = make(map[Key]bool)
		stack   = []item{{k: root}}
	)

	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if maxDepth >= 0 && it.depth > maxDepth {
			continue
		}
		if visited[it.k] {
			continue
		}
		visited[it.k] = true

		v, err := g.Get(ctx, it.k)
		if err != nil {
			return errors.Wrapf(err, "getting %s", it.k)
		}

		node := Node{Key: it.k, Value: v, Depth: it.depth}

		switch v := v.(type) {
		case Array:
			for i, child := range v {
				f, err := field(ctx, g, i, strconv.Itoa(i), child)
				if err != nil {
					return err
				}
				node.Fields = append(node.Fields, f)
			}
		case Map:
			for i, p := range v {
				f, err := field(ctx, g, i, string(p.Name), p.Key)
				if err != nil {
					return err
				}
				node.Fields = append(node.Fields, f)
			}
		}

		if err := visit(node); err != nil {
			return err
		}

		// Pushed in reverse so children are visited in order.
		for i := len(node.Fields) - 1; i >= 0; i-- {
			if f := node.Fields[i]; f.Atomic == nil {
				stack = append(stack, item{k: f.Key, depth: it.depth + 1})
			}
		}
	}
	return nil
}

func field(ctx context.Context, g Getter, i int, label string, k Key) (Field, error) {
	v, err := g.Get(ctx, k)
	if err != nil {
		return Field{}, errors.Wrapf(err, "getting child %s of %s", label, k)
	}
	f := Field{Index: i, Label: label, Key: k}
	if IsAtomic(v) {
		f.Atomic = v
	}
	return f, nil
}

// Copy copies the value at root, and everything reachable from it,
// from src into dst,
// writing children before parents
// and skipping anything dst already has.
// It returns the number of entries added to dst.
func Copy(ctx context.Context, dst Store, src Getter, root Key) (int, error) {
	type item struct {
		k        Key
		v        Value
		expanded bool
	}

	var (
		n     int
		done  = make(map[Key]bool)
		stack = []item{{k: root}}
	)

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if !top.expanded {
			if done[top.k] {
				stack = stack[:len(stack)-1]
				continue
			}
			_, err := dst.Get(ctx, top.k)
			if err == nil {
				done[top.k] = true
				stack = stack[:len(stack)-1]
				continue
			}
			if !errors.Is(err, ErrNotFound) {
				return n, errors.Wrapf(err, "checking for %s", top.k)
			}
			v, err := src.Get(ctx, top.k)
			if err != nil {
				return n, errors.Wrapf(err, "getting %s", top.k)
			}
			top.v = v
			top.expanded = true

			children := Children(v)
			for i := len(children) - 1; i >= 0; i-- {
				if !done[children[i]] {
					stack = append(stack, item{k: children[i]})
				}
			}
			continue
		}

		it := *top
		stack = stack[:len(stack)-1]
		if done[it.k] {
			continue
		}
		added, err := dst.Put(ctx, it.k, it.v)
		if err != nil {
			return n, errors.Wrapf(err, "storing %s", it.k)
		}
		if added {
			n++
		}
		done[it.k] = true
	}

	return n, nil
}
