package graph

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

var _ Getter = &Graph{}

// Graph is a content-addressable structural store.
// It normalizes raw value trees into canonical values,
// digests them into Keys,
// and writes them to a backing Store.
//
// A Graph is safe for concurrent use
// provided its Store is.
type Graph struct {
	s        Store
	newHash  Hasher
	maxDepth int

	mu sync.Mutex // serializes commits to s
}

// Option configures a Graph.
type Option func(*Graph)

// WithHasher sets the hash function used for digests.
// The default is SHA256.
func WithHasher(h Hasher) Option {
	return func(g *Graph) { g.newHash = h }
}

// WithMaxDepth makes Add reject inputs
// with more than n levels of nested arrays and maps.
// Zero means no limit.
func WithMaxDepth(n int) Option {
	return func(g *Graph) { g.maxDepth = n }
}

// New produces a Graph writing to s.
func New(s Store, opts ...Option) *Graph {
	g := &Graph{s: s, newHash: SHA256}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Store returns the Graph's backing store.
func (g *Graph) Store() Store { return g.s }

// Get gets the canonical value for k.
func (g *Graph) Get(ctx context.Context, k Key) (Value, error) {
	return g.s.Get(ctx, k)
}

// ListKeys implements Getter.
func (g *Graph) ListKeys(ctx context.Context, start Key, f func(Key) error) error {
	return g.s.ListKeys(ctx, start, f)
}

// Digest computes the key of a canonical value
// using the Graph's hash function.
func (g *Graph) Digest(v Value) (Key, error) {
	return digest(g.newHash, v)
}

// Add normalizes raw, stores it and every compound value inside it,
// and returns its key.
//
// Raw values may be booleans, strings, Go numbers, json.Number,
// the atomic Value types,
// slices and arrays (other than byte slices),
// maps keyed by strings or Symbols,
// and Objects.
// Anything else fails with ErrUnsupportedType.
//
// Add is all or nothing:
// if any part of raw fails to normalize,
// nothing is written.
func (g *Graph) Add(ctx context.Context, raw any) (Key, error) {
	b, err := g.normalize(ctx, raw)
	if err != nil {
		return Zero, err
	}
	err = g.commit(ctx, b)
	return b.root, err
}

// batch holds the entries produced by normalizing one input
// until they are committed.
// Entries are ordered so that children precede their parents.
type batch struct {
	root    Key
	order   []Key
	entries map[Key]Value
	atoms   map[Value]Key
}

func (g *Graph) stage(b *batch, v Value) (Key, error) {
	atomic := IsAtomic(v)
	if atomic {
		if k, ok := b.atoms[v]; ok {
			return k, nil
		}
	}
	k, err := digest(g.newHash, v)
	if err != nil {
		return Zero, err
	}
	if atomic {
		b.atoms[v] = k
	}
	if _, ok := b.entries[k]; !ok {
		b.entries[k] = v
		b.order = append(b.order, k)
	}
	return k, nil
}

// normalize walks raw in post-order using an explicit stack,
// so input depth is limited by memory rather than by the goroutine stack.
func (g *Graph) normalize(ctx context.Context, raw any) (*batch, error) {
	var (
		b = &batch{
			entries: make(map[Key]Value),
			atoms:   make(map[Value]Key),
		}
		stack   []*frame
		onStack = make(map[ident]bool)
	)

	// visit stages an atomic value and returns its key with done=true,
	// or pushes a frame for a compound value.
	// Parent is nil for the root.
	visit := func(raw any, parent *frame, label string) (Key, bool, error) {
		v, f, err := classify(raw)
		if err != nil {
			var ute *UnsupportedTypeError
			if errors.As(err, &ute) {
				ute.Path = pathTo(parent, label)
				return Zero, false, ute
			}
			return Zero, false, errors.Wrapf(err, "at %s", pathString(pathTo(parent, label)))
		}
		if f == nil {
			k, err := g.stage(b, v)
			return k, true, err
		}

		if g.maxDepth > 0 && len(stack) >= g.maxDepth {
			return Zero, false, errors.Wrapf(ErrTooDeep, "at %s (limit %d)", pathString(pathTo(parent, label)), g.maxDepth)
		}
		if f.id != (ident{}) {
			if onStack[f.id] {
				return Zero, false, errors.Wrapf(ErrCycle, "at %s", pathString(pathTo(parent, label)))
			}
			onStack[f.id] = true
		}
		f.parent, f.at = parent, label
		f.keys = make([]Key, 0, len(f.elems))
		stack = append(stack, f)
		return Zero, false, nil
	}

	k, done, err := visit(raw, nil, "")
	if err != nil {
		return nil, err
	}
	if done {
		b.root = k
		return b, nil
	}

	for n := 1; len(stack) > 0; n++ {
		if n%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		f := stack[len(stack)-1]
		if i := len(f.keys); i < len(f.elems) {
			k, done, err := visit(f.elems[i], f, f.label(i))
			if err != nil {
				return nil, err
			}
			if done {
				f.keys = append(f.keys, k)
			}
			continue
		}

		// All children of f are keyed; f itself can now be.
		stack = stack[:len(stack)-1]
		if f.id != (ident{}) {
			delete(onStack, f.id)
		}
		k, err := g.stage(b, f.value())
		if err != nil {
			return nil, err
		}
		if len(stack) == 0 {
			b.root = k
		} else {
			parent := stack[len(stack)-1]
			parent.keys = append(parent.keys, k)
		}
	}

	return b, nil
}

// commit writes a batch to the store, children first.
// If it fails partway,
// the entries already written are complete subgraphs
// and are harmless in an append-only content-addressed store.
func (g *Graph) commit(ctx context.Context, b *batch) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, k := range b.order {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := g.s.Put(ctx, k, b.entries[k]); err != nil {
			return errors.Wrapf(err, "storing %s", k)
		}
	}
	return nil
}
