package graph

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Number is an atomic numeric value held in canonical decimal form.
// Integers are written in base 10.
// Non-integral floats use the shortest representation that round-trips,
// with a lowercase exponent marker.
// A float with an integral value is the same Number as the integer,
// so 1, 1.0, and json.Number("1e0") share a Key.
//
// The zero Number is 0,
// and equal Numbers compare equal with ==.
type Number struct {
	text string // "" for 0
}

func numberText(s string) Number {
	if s == "0" {
		return Number{}
	}
	return Number{text: s}
}

func (n Number) String() string {
	if n.text == "" {
		return "0"
	}
	return n.text
}

// Int produces the Number for an integer.
func Int(i int64) Number {
	return numberText(strconv.FormatInt(i, 10))
}

// Uint produces the Number for an unsigned integer.
func Uint(u uint64) Number {
	return numberText(strconv.FormatUint(u, 10))
}

// Float produces the Number for a float.
// NaN and the infinities have no canonical form and yield ErrUnsupportedType.
func Float(f float64) (Number, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{}, errors.Wrapf(ErrUnsupportedType, "non-finite number %v", f)
	}
	if f == 0 {
		return Number{}, nil
	}
	if f == math.Trunc(f) {
		// Exact decimal digits, matching Int and Uint for values in their range.
		return numberText(strconv.FormatFloat(f, 'f', 0, 64)), nil
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	return numberText(strings.ReplaceAll(s, "E", "e")), nil
}

// ParseNumber produces the Number for a decimal literal
// such as a json.Number.
func ParseNumber(s string) (Number, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i), nil
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return Uint(u), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Number{}, errors.Wrapf(ErrUnsupportedType, "malformed number %q", s)
	}
	return Float(f)
}

// Equal tells whether n and other are the same Number.
func (n Number) Equal(other Number) bool {
	return n == other
}

// MarshalJSON emits n as a bare JSON number.
func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.String()), nil
}

// Float64 converts n to a float, possibly losing precision.
func (n Number) Float64() float64 {
	f, _ := strconv.ParseFloat(n.String(), 64)
	return f
}

func numberFromJSON(n json.Number) (Number, error) {
	return ParseNumber(n.String())
}
