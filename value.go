package graph

import (
	"fmt"
	"strconv"
)

// Kind identifies the shape of a canonical Value.
// Its numeric value is the type tag that seeds every digest,
// so the constants must never be renumbered.
type Kind uint8

const (
	KindNumber Kind = 1 + iota
	KindString
	KindBool
	KindSymbol
	KindArray
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindSymbol:
		return "symbol"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a canonical value as held in a Store.
// The set of implementations is closed:
// Number, String, Bool, and Symbol are atomic;
// Array and Map are compound and refer to their children by Key.
type Value interface {
	Kind() Kind
	value()
}

type (
	// String is an atomic string value.
	String string

	// Bool is an atomic boolean value.
	Bool bool

	// Symbol is an atomic interned name.
	// It is distinct from String:
	// Symbol("a") and String("a") have different Keys.
	// Map keys are always canonicalized to Symbols.
	Symbol string

	// Array is a compound value: an ordered list of child Keys.
	Array []Key

	// Map is a compound value:
	// a list of name/child-Key pairs sorted by name.
	Map []Pair
)

// Pair is one entry of a Map.
type Pair struct {
	Name Symbol
	Key  Key
}

func (Number) Kind() Kind { return KindNumber }
func (String) Kind() Kind { return KindString }
func (Bool) Kind() Kind   { return KindBool }
func (Symbol) Kind() Kind { return KindSymbol }
func (Array) Kind() Kind  { return KindArray }
func (Map) Kind() Kind    { return KindMap }

func (Number) value() {}
func (String) value() {}
func (Bool) value()   {}
func (Symbol) value() {}
func (Array) value()  {}
func (Map) value()    {}

func (s String) String() string { return string(s) }
func (s Symbol) String() string { return string(s) }

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

// IsAtomic tells whether v is a leaf value (Number, String, Bool, or Symbol).
// Renderers use it to decide whether a stored child is inlined
// or drawn as a separate node.
func IsAtomic(v Value) bool {
	switch v.(type) {
	case Number, String, Bool, Symbol:
		return true
	case Array, Map:
		return false
	}
	return false
}

// Text is the textual form of an atomic value,
// as shown in diagrams and dumps.
// It panics if v is not atomic.
func Text(v Value) string {
	switch v := v.(type) {
	case Number:
		return v.String()
	case String:
		return string(v)
	case Bool:
		return v.String()
	case Symbol:
		return string(v)
	}
	panic(fmt.Sprintf("Text called on non-atomic %s value", v.Kind()))
}

// Children returns the Keys a compound value refers to, in order.
// It returns nil for atomic values.
func Children(v Value) []Key {
	switch v := v.(type) {
	case Array:
		return v
	case Map:
		keys := make([]Key, 0, len(v))
		for _, p := range v {
			keys = append(keys, p.Key)
		}
		return keys
	}
	return nil
}

// Lookup finds the child Key for name in a Map.
func (m Map) Lookup(name Symbol) (Key, bool) {
	lo, hi := 0, len(m)
	for lo < hi {
		mid := (lo + hi) / 2
		if m[mid].Name < name {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(m) && m[lo].Name == name {
		return m[lo].Key, true
	}
	return Zero, false
}
