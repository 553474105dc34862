package graph

import (
	"bytes"
	"encoding/hex"
	"errors"
)

// KeySize is the length in bytes of a Key.
const KeySize = 32

// Key is the content address of a canonical value:
// a 256-bit digest of its canonical encoding.
type Key [KeySize]byte

// Zero is the zero value of a Key.
// No canonical value hashes to it in practice,
// so it serves as the starting point for ListKeys.
var Zero Key

func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// Short is the six-character prefix of k's hex form,
// used where a full key would be noise (diagram labels, log lines).
func (k Key) Short() string {
	return k.String()[:6]
}

func (k Key) Less(other Key) bool {
	return bytes.Compare(k[:], other[:]) < 0
}

// MarshalText implements encoding.TextMarshaler.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Key) UnmarshalText(text []byte) error {
	return k.FromHex(string(text))
}

func (k *Key) FromHex(s string) error {
	if len(s) != 2*KeySize {
		return errors.New("wrong length")
	}
	_, err := hex.Decode(k[:], []byte(s))
	return err
}

func KeyFromBytes(b []byte) Key {
	var out Key
	copy(out[:], b)
	return out
}

func KeyFromHex(s string) (Key, error) {
	var out Key
	err := out.FromHex(s)
	return out, err
}
