package graph

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

// Object is an ordered map,
// for decoders that keep object members in input order
// (and keep repeated member names rather than silently dropping one).
// It normalizes exactly like a Go map with the same members.
type Object []Member

// Member is one name/value entry of an Object.
// Name must be a string, String, or Symbol.
type Member struct {
	Name  any
	Value any
}

// frame is a compound raw value whose children are being normalized.
// Children appear in canonical order:
// array order for arrays, ascending name order for maps.
type frame struct {
	kind  Kind
	names []Symbol
	elems []any
	keys  []Key
	id    ident

	parent *frame
	at     string // label of this frame within its parent
}

// pathTo lists the labels leading from the root to child label of f.
// A nil f stands for the root itself.
func pathTo(f *frame, label string) []string {
	if f == nil {
		return nil
	}
	path := []string{label}
	for ; f.parent != nil; f = f.parent {
		path = append(path, f.at)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func (f *frame) label(i int) string {
	if f.kind == KindMap {
		return string(f.names[i])
	}
	return strconv.Itoa(i)
}

func (f *frame) value() Value {
	if f.kind == KindArray {
		return Array(f.keys)
	}
	m := make(Map, len(f.keys))
	for i, k := range f.keys {
		m[i] = Pair{Name: f.names[i], Key: k}
	}
	return m
}

// ident identifies a Go map or slice in memory,
// for detecting raw values that contain themselves.
type ident struct {
	typ reflect.Type
	ptr uintptr
	n   int
}

func identOf(rv reflect.Value) ident {
	switch rv.Kind() {
	case reflect.Map:
		return ident{typ: rv.Type(), ptr: rv.Pointer()}
	case reflect.Slice:
		if rv.Len() == 0 {
			return ident{}
		}
		return ident{typ: rv.Type(), ptr: rv.Pointer(), n: rv.Len()}
	}
	return ident{}
}

type entry struct {
	name Symbol
	val  any
}

// classify turns a raw value into either an atomic Value
// or a frame for a compound one.
// Errors carry no path; the caller adds it.
func classify(raw any) (Value, *frame, error) {
	switch x := raw.(type) {
	case nil:
		return nil, nil, &UnsupportedTypeError{Type: "nil"}

	case Number:
		return x, nil, nil
	case String:
		return x, nil, nil
	case Bool:
		return x, nil, nil
	case Symbol:
		return x, nil, nil
	case Array, Map:
		// Already-canonical compound values refer to keys, not content.
		return nil, nil, &UnsupportedTypeError{Type: fmt.Sprintf("%T", x)}

	case bool:
		return Bool(x), nil, nil
	case string:
		return String(x), nil, nil
	case json.Number:
		n, err := numberFromJSON(x)
		return n, nil, err
	case int:
		return Int(int64(x)), nil, nil
	case int8:
		return Int(int64(x)), nil, nil
	case int16:
		return Int(int64(x)), nil, nil
	case int32:
		return Int(int64(x)), nil, nil
	case int64:
		return Int(x), nil, nil
	case uint:
		return Uint(uint64(x)), nil, nil
	case uint8:
		return Uint(uint64(x)), nil, nil
	case uint16:
		return Uint(uint64(x)), nil, nil
	case uint32:
		return Uint(uint64(x)), nil, nil
	case uint64:
		return Uint(x), nil, nil
	case float32:
		n, err := Float(float64(x))
		return n, nil, err
	case float64:
		n, err := Float(x)
		return n, nil, err

	case []byte:
		return nil, nil, &UnsupportedTypeError{Type: "[]byte"}

	case []any:
		return nil, &frame{kind: KindArray, elems: x, id: identOf(reflect.ValueOf(x))}, nil

	case map[string]any:
		entries := make([]entry, 0, len(x))
		for k, v := range x {
			entries = append(entries, entry{name: Symbol(k), val: v})
		}
		f, err := mapFrame(entries)
		if f != nil {
			f.id = identOf(reflect.ValueOf(x))
		}
		return nil, f, err

	case map[Symbol]any:
		entries := make([]entry, 0, len(x))
		for k, v := range x {
			entries = append(entries, entry{name: k, val: v})
		}
		f, err := mapFrame(entries)
		if f != nil {
			f.id = identOf(reflect.ValueOf(x))
		}
		return nil, f, err

	case map[any]any:
		entries := make([]entry, 0, len(x))
		for k, v := range x {
			name, err := symbolFor(k)
			if err != nil {
				return nil, nil, err
			}
			entries = append(entries, entry{name: name, val: v})
		}
		f, err := mapFrame(entries)
		if f != nil {
			f.id = identOf(reflect.ValueOf(x))
		}
		return nil, f, err

	case Object:
		entries := make([]entry, 0, len(x))
		for _, m := range x {
			name, err := symbolFor(m.Name)
			if err != nil {
				return nil, nil, err
			}
			entries = append(entries, entry{name: name, val: m.Value})
		}
		f, err := mapFrame(entries)
		if f != nil {
			f.id = identOf(reflect.ValueOf(x))
		}
		return nil, f, err
	}

	return classifyReflect(reflect.ValueOf(raw))
}

// classifyReflect handles named types and typed containers
// (such as []string or map[string]int)
// by their underlying kind.
func classifyReflect(rv reflect.Value) (Value, *frame, error) {
	unsupported := &UnsupportedTypeError{Type: rv.Type().String()}

	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil, nil
	case reflect.String:
		return String(rv.String()), nil, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Uint(rv.Uint()), nil, nil
	case reflect.Float32, reflect.Float64:
		n, err := Float(rv.Float())
		return n, nil, err

	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, nil, unsupported
		}
		elems := make([]any, rv.Len())
		for i := range elems {
			elems[i] = rv.Index(i).Interface()
		}
		return nil, &frame{kind: KindArray, elems: elems, id: identOf(rv)}, nil

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, nil, unsupported
		}
		entries := make([]entry, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			entries = append(entries, entry{name: Symbol(iter.Key().String()), val: iter.Value().Interface()})
		}
		f, err := mapFrame(entries)
		if f != nil {
			f.id = identOf(rv)
		}
		return nil, f, err
	}

	return nil, nil, unsupported
}

// symbolFor canonicalizes a map key.
func symbolFor(k any) (Symbol, error) {
	switch k := k.(type) {
	case Symbol:
		return k, nil
	case string:
		return Symbol(k), nil
	case String:
		return Symbol(k), nil
	}
	return "", &UnsupportedTypeError{Type: fmt.Sprintf("map key %T", k)}
}

// mapFrame sorts entries by name
// and rejects names that occur twice.
func mapFrame(entries []entry) (*frame, error) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })

	f := &frame{
		kind:  KindMap,
		names: make([]Symbol, len(entries)),
		elems: make([]any, len(entries)),
	}
	for i, e := range entries {
		if i > 0 && entries[i-1].name == e.name {
			return nil, errors.Wrapf(ErrKeyCollision, "key %q", e.name)
		}
		f.names[i] = e.name
		f.elems[i] = e.val
	}
	return f, nil
}
