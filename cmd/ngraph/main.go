// Command ngraph normalizes structured documents into a content-addressed graph
// and reports on the result.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/bobg/subcmd"

	graph "github.com/davidk01/normalized-graph"
	_ "github.com/davidk01/normalized-graph/store/logging"
	_ "github.com/davidk01/normalized-graph/store/lru"
	_ "github.com/davidk01/normalized-graph/store/mem"
)

const defaultConfig = "ngraphconf.json"

type maincmd struct {
	g *graph.Graph
}

func main() {
	var (
		config   = flag.String("config", defaultConfig, "path to store config file")
		hash     = flag.String("hash", "sha256", "digest function: sha256 or blake3")
		maxDepth = flag.Int("maxdepth", 0, "reject inputs nested more deeply than this (0 means no limit)")
	)
	flag.Parse()

	ctx := context.Background()

	s, err := storeFromConfig(ctx, *config, *config == defaultConfig)
	if err != nil {
		log.Fatal(err)
	}

	var hasher graph.Hasher
	switch *hash {
	case "sha256":
		hasher = graph.SHA256
	case "blake3":
		hasher = graph.BLAKE3
	default:
		log.Fatalf("Unknown -hash value %s", *hash)
	}

	g := graph.New(s, graph.WithHasher(hasher), graph.WithMaxDepth(*maxDepth))

	err = subcmd.Run(ctx, maincmd{g: g}, flag.Args())
	if err != nil {
		log.Fatal(err)
	}
}

func (c maincmd) Subcmds() map[string]subcmd.Subcmd {
	return map[string]subcmd.Subcmd{
		"dot":   c.dot,
		"dump":  c.dump,
		"key":   c.key,
		"stats": c.stats,
	}
}
