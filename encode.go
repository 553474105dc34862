package graph

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"hash"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"
)

// encMode is configured with Core Deterministic Encoding (RFC 8949 §4.2),
// so equal canonical values always produce identical bytes.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("graph: CBOR encoder initialization failed: " + err.Error())
	}
}

// Encode produces the canonical encoding of v,
// which is what gets hashed to make v's Key.
//
// The encoding is the CBOR array [kind, payload].
// Kind is the numeric Kind of v.
// The payload is the canonical text of a Number,
// the text of a String or Symbol,
// a CBOR boolean for a Bool,
// an array of key byte strings for an Array,
// or an array of [name, key] pairs, in name order, for a Map.
func Encode(v Value) ([]byte, error) {
	buf := new(bytes.Buffer)
	err := encodeTo(buf, v)
	return buf.Bytes(), err
}

func encodeTo(w io.Writer, v Value) error {
	var payload any

	switch v := v.(type) {
	case Number:
		payload = v.String()
	case String:
		payload = string(v)
	case Bool:
		payload = bool(v)
	case Symbol:
		payload = string(v)
	case Array:
		keys := make([][]byte, len(v))
		for i := range v {
			keys[i] = v[i][:]
		}
		payload = keys
	case Map:
		pairs := make([][2]any, len(v))
		for i := range v {
			pairs[i] = [2]any{string(v[i].Name), v[i].Key[:]}
		}
		payload = pairs
	default:
		return &UnsupportedTypeError{Type: fmt.Sprintf("%T", v)}
	}

	return encMode.NewEncoder(w).Encode([]any{uint(v.Kind()), payload})
}

// Hasher constructs the hash function a Graph uses to digest canonical encodings.
// It must produce KeySize-byte sums.
type Hasher func() hash.Hash

var (
	// SHA256 is the default Hasher.
	SHA256 Hasher = sha256.New

	// BLAKE3 is an alternative Hasher.
	// Keys it produces are unrelated to SHA256 keys for the same values,
	// so the two must never share a Store.
	BLAKE3 Hasher = func() hash.Hash { return blake3.New() }
)

func digest(newHash Hasher, v Value) (Key, error) {
	h := newHash()
	if err := encodeTo(h, v); err != nil {
		return Zero, err
	}
	return KeyFromBytes(h.Sum(nil)), nil
}

// KeyOf computes the SHA256 key of a canonical value.
func KeyOf(v Value) (Key, error) {
	return digest(SHA256, v)
}
