package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/tidwall/jsonc"

	graph "github.com/davidk01/normalized-graph"
	"github.com/davidk01/normalized-graph/store"
	"github.com/davidk01/normalized-graph/store/mem"
)

// storeFromConfig creates the store described by a config file.
// The file may contain comments.
// If optional is true and the file does not exist,
// the result is an empty in-memory store.
func storeFromConfig(ctx context.Context, filename string, optional bool) (graph.Store, error) {
	data, err := os.ReadFile(filename)
	if optional && errors.Is(err, os.ErrNotExist) {
		return mem.New(), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading config file %s", filename)
	}

	var conf map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.UseNumber()
	err = dec.Decode(&conf)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding config file %s", filename)
	}

	typ, ok := conf["type"].(string)
	if !ok {
		return nil, fmt.Errorf("config file %s missing `type` parameter", filename)
	}

	s, err := store.Create(ctx, typ, conf)
	return s, errors.Wrapf(err, "creating %s-type store", typ)
}
