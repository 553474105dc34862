package main

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/pkg/errors"

	graph "github.com/davidk01/normalized-graph"
	"github.com/davidk01/normalized-graph/input"
)

// formatFlag adds the -format flag shared by every subcommand.
func formatFlag(fs *flag.FlagSet) *string {
	return fs.String("format", "", "input format: json, jsonc, yaml, or cbor (default: from file extension)")
}

// addFiles decodes each named file and adds it to g,
// returning the root keys in file order.
// The name "-" means standard input.
func addFiles(ctx context.Context, g *graph.Graph, format string, filenames []string) ([]graph.Key, error) {
	if len(filenames) == 0 {
		return nil, errors.New("no input files")
	}

	var forced input.Format
	if format != "" {
		f, err := input.ParseFormat(format)
		if err != nil {
			return nil, err
		}
		forced = f
	}

	raws := make([]any, 0, len(filenames))
	for _, name := range filenames {
		f := forced
		if f == "" {
			f = input.FormatFor(name)
		}
		raw, err := decodeFile(name, f)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding %s", name)
		}
		raws = append(raws, raw)
	}

	keys, err := graph.AddMulti(ctx, g, raws)
	return keys, errors.Wrap(err, "adding inputs")
}

func decodeFile(name string, f input.Format) (any, error) {
	var r io.Reader = os.Stdin
	if name != "-" {
		file, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		r = file
	}
	return input.Decode(r, f)
}
