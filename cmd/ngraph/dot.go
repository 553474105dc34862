package main

import (
	"context"
	"flag"
	"os"

	"github.com/pkg/errors"

	"github.com/davidk01/normalized-graph/dot"
)

func (c maincmd) dot(ctx context.Context, fs *flag.FlagSet, args []string) error {
	var (
		format = formatFlag(fs)
		depth  = fs.Int("depth", dot.DefaultMaxDepth, "maximum depth to draw (negative for no limit)")
	)
	err := fs.Parse(args)
	if err != nil {
		return errors.Wrap(err, "parsing args")
	}
	if fs.NArg() != 1 {
		return errors.New("need exactly one input file")
	}

	keys, err := addFiles(ctx, c.g, *format, fs.Args())
	if err != nil {
		return err
	}

	return dot.Write(ctx, os.Stdout, c.g, keys[0], *depth)
}
