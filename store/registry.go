// Package store holds a registry of Store implementations,
// and operations spanning several Stores.
package store

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	graph "github.com/davidk01/normalized-graph"
)

// Factory creates a Store from a configuration map,
// typically decoded from a JSON config file.
type Factory func(context.Context, map[string]interface{}) (graph.Store, error)

var registry = make(map[string]Factory)

// Register makes a Store implementation available to Create under the given name.
// Implementations call it from init functions.
func Register(key string, f Factory) {
	registry[key] = f
}

// Create produces a Store of the named type.
func Create(ctx context.Context, key string, conf map[string]interface{}) (graph.Store, error) {
	f, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("key %s not found in registry", key)
	}
	return f(ctx, conf)
}

// CreateNested produces the Store described by the "nested" parameter of conf,
// for implementations that wrap another Store.
func CreateNested(ctx context.Context, conf map[string]interface{}) (graph.Store, error) {
	nested, ok := conf["nested"].(map[string]interface{})
	if !ok {
		return nil, errors.New(`missing "nested" parameter`)
	}
	nestedType, ok := nested["type"].(string)
	if !ok {
		return nil, errors.New(`"nested" parameter missing "type"`)
	}
	s, err := Create(ctx, nestedType, nested)
	return s, errors.Wrap(err, "creating nested store")
}
