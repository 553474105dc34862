package graph

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is the error returned
	// when a Getter tries to access a non-existent key.
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedType is the error returned
	// when a raw value is neither atomic nor an array or map.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrKeyCollision is the error returned
	// when two distinct keys of one map canonicalize to the same Symbol.
	ErrKeyCollision = errors.New("map key collision")

	// ErrCycle is the error returned
	// when a raw map or slice contains itself.
	ErrCycle = errors.New("cyclic value")

	// ErrTooDeep is the error returned
	// when a raw value nests deeper than the Graph's maximum depth.
	ErrTooDeep = errors.New("value nested too deeply")
)

// UnsupportedTypeError reports the Go type of a value that cannot be normalized
// and where in the input it was found.
// It matches ErrUnsupportedType under errors.Is.
type UnsupportedTypeError struct {
	Type string
	Path []string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("%s %s at %s", ErrUnsupportedType, e.Type, pathString(e.Path))
}

func (e *UnsupportedTypeError) Unwrap() error { return ErrUnsupportedType }

func pathString(path []string) string {
	if len(path) == 0 {
		return "root"
	}
	return strings.Join(path, "/")
}
