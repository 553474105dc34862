package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"strconv"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	graph "github.com/davidk01/normalized-graph"
)

func (c maincmd) dump(ctx context.Context, fs *flag.FlagSet, args []string) error {
	var (
		format = formatFlag(fs)
		out    = fs.String("out", "json", "output format: json, yaml, or cbor")
	)
	err := fs.Parse(args)
	if err != nil {
		return errors.Wrap(err, "parsing args")
	}

	if _, err := addFiles(ctx, c.g, *format, fs.Args()); err != nil {
		return err
	}
	return dump(ctx, os.Stdout, c.g, *out)
}

// dumpEntry is the printable form of one store entry.
type dumpEntry struct {
	Key   string `json:"key" yaml:"key" cbor:"key"`
	Kind  string `json:"kind" yaml:"kind" cbor:"kind"`
	Value any    `json:"value" yaml:"value" cbor:"value"`
}

type dumpPair struct {
	Name string `json:"name" yaml:"name" cbor:"name"`
	Key  string `json:"key" yaml:"key" cbor:"key"`
}

// dump writes every entry of g in key order.
func dump(ctx context.Context, w io.Writer, g graph.Getter, out string) error {
	var entries []dumpEntry
	err := g.ListKeys(ctx, graph.Zero, func(k graph.Key) error {
		v, err := g.Get(ctx, k)
		if err != nil {
			return errors.Wrapf(err, "getting %s", k)
		}
		entries = append(entries, dumpEntry{Key: k.String(), Kind: v.Kind().String(), Value: plain(v)})
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "listing keys")
	}

	switch out {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)

	case "yaml":
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()

	case "cbor":
		em, err := cbor.CoreDetEncOptions().EncMode()
		if err != nil {
			return err
		}
		return em.NewEncoder(w).Encode(entries)
	}

	return errors.Errorf("unknown output format %s", out)
}

// plain converts a canonical value to ordinary Go values
// that every output encoder handles.
func plain(v graph.Value) any {
	switch v := v.(type) {
	case graph.Number:
		s := v.String()
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
		if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return u
		}
		return v.Float64()
	case graph.String:
		return string(v)
	case graph.Symbol:
		return string(v)
	case graph.Bool:
		return bool(v)
	case graph.Array:
		keys := make([]string, len(v))
		for i, k := range v {
			keys[i] = k.String()
		}
		return keys
	case graph.Map:
		pairs := make([]dumpPair, len(v))
		for i, p := range v {
			pairs[i] = dumpPair{Name: string(p.Name), Key: p.Key.String()}
		}
		return pairs
	}
	return nil
}
