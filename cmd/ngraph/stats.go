package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	graph "github.com/davidk01/normalized-graph"
)

func (c maincmd) stats(ctx context.Context, fs *flag.FlagSet, args []string) error {
	format := formatFlag(fs)
	err := fs.Parse(args)
	if err != nil {
		return errors.Wrap(err, "parsing args")
	}

	if _, err := addFiles(ctx, c.g, *format, fs.Args()); err != nil {
		return err
	}
	return stats(ctx, os.Stdout, c.g)
}

// stats writes the number of entries in g, in total and per kind.
func stats(ctx context.Context, w io.Writer, g graph.Getter) error {
	var (
		total  int
		counts = make(map[graph.Kind]int)
	)
	err := g.ListKeys(ctx, graph.Zero, func(k graph.Key) error {
		v, err := g.Get(ctx, k)
		if err != nil {
			return errors.Wrapf(err, "getting %s", k)
		}
		counts[v.Kind()]++
		total++
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "listing keys")
	}

	fmt.Fprintf(w, "entries %d\n", total)
	for kind := graph.KindNumber; kind <= graph.KindMap; kind++ {
		fmt.Fprintf(w, "%-7s %d\n", kind, counts[kind])
	}
	return nil
}
