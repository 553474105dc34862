package graph

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// GetMulti gets multiple values with a single call.
// The lookups run concurrently.
// The return value is a mapping of input keys to the values that were found in g.
// The returned error may be a MultiErr,
// mapping input keys to errors encountered retrieving those specific keys.
// This function may return a successful partial result even in case of error.
// In particular, when the error return is a MultiErr,
// every input key appears in either the result map or the MultiErr map.
func GetMulti(ctx context.Context, g Getter, keys []Key) (map[Key]Value, error) {
	type triple struct {
		key Key
		val Value
		err error
	}

	var (
		res = make(map[Key]Value)
		ch  = make(chan triple)
	)

	for _, k := range keys {
		k := k
		go func() {
			val, err := g.Get(ctx, k)
			ch <- triple{key: k, val: val, err: err}
		}()
	}

	var errmap MultiErr

	for i := 0; i < len(keys); i++ {
		trip := <-ch
		if trip.err != nil {
			if errmap == nil {
				errmap = make(MultiErr)
			}
			errmap[trip.key] = trip.err
			continue
		}
		res[trip.key] = trip.val
	}

	if errmap != nil {
		return res, errmap
	}
	return res, nil
}

// MultiErr is a type of error returned by GetMulti.
// It maps individual keys to errors encountered trying to get them.
type MultiErr map[Key]error

// Error implements the error interface.
func (e MultiErr) Error() string {
	var strs []string
	for k, err := range e {
		strs = append(strs, fmt.Sprintf("%s: %s", k, err))
	}
	sort.Strings(strs)
	return "error(s): " + strings.Join(strs, "; ")
}

// AddMulti adds several raw values to g.
// Inputs are normalized concurrently;
// their commits are serialized by g.
// The result holds the key of each input, in input order.
// On error some inputs may have been added and others not,
// but each input is added completely or not at all.
func AddMulti(ctx context.Context, g *Graph, raws []any) ([]Key, error) {
	keys := make([]Key, len(raws))

	eg, ctx := errgroup.WithContext(ctx)
	for i, raw := range raws {
		i, raw := i, raw
		eg.Go(func() error {
			k, err := g.Add(ctx, raw)
			if err != nil {
				return errors.Wrapf(err, "input %d", i)
			}
			keys[i] = k
			return nil
		})
	}

	return keys, eg.Wait()
}
