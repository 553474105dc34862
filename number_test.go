package graph_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	. "github.com/davidk01/normalized-graph"
	"github.com/davidk01/normalized-graph/store/mem"
)

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{in: "0", want: "0"},
		{in: "-0", want: "0"},
		{in: "0.0", want: "0"},
		{in: "-0.0", want: "0"},
		{in: "1e0", want: "1"},
		{in: "1.5", want: "1.5"},
		{in: "1.50", want: "1.5"},
		{in: "-12", want: "-12"},
		{in: "18446744073709551615", want: "18446744073709551615"},
		{in: "1e19", want: "10000000000000000000"},
		{in: "-1e3", want: "-1000"},
		{in: "9.223372036854775808e18", want: "9223372036854775808"},
		{in: "1.5e-7", want: "1.5e-07"},
		{in: "0.1", want: "0.1"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			n, err := ParseNumber(tc.in)
			if err != nil {
				t.Fatal(err)
			}
			if got := n.String(); got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestParseNumberErrors(t *testing.T) {
	for _, in := range []string{"", "x", "1..2", "NaN", "Inf"} {
		if _, err := ParseNumber(in); !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("ParseNumber(%q): got error %v, want ErrUnsupportedType", in, err)
		}
	}
}

func TestFloat(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := Float(f); !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("Float(%v): got error %v, want ErrUnsupportedType", f, err)
		}
	}

	n, err := Float(3)
	if err != nil {
		t.Fatal(err)
	}
	if n != Int(3) {
		t.Errorf("got %v, want 3", n)
	}

	n, err = Float(0.25)
	if err != nil {
		t.Fatal(err)
	}
	if n.Float64() != 0.25 {
		t.Errorf("got %v, want 0.25", n.Float64())
	}

	var zero Number
	if zero.String() != "0" {
		t.Errorf("zero Number is %s, want 0", zero)
	}
}

func TestZeroNumber(t *testing.T) {
	negZero, err := Float(math.Copysign(0, -1))
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := ParseNumber("-0.0")
	if err != nil {
		t.Fatal(err)
	}

	for _, n := range []Number{Int(0), Uint(0), negZero, parsed} {
		if n != (Number{}) {
			t.Errorf("%s (%#v) differs from the zero Number", n, n)
		}
		if !n.Equal(Number{}) {
			t.Errorf("%s is not Equal to the zero Number", n)
		}
	}
}

func TestLargeIntegralNumbers(t *testing.T) {
	cases := []struct {
		name string
		a, b any
	}{
		{name: "uint64 vs float", a: uint64(1e19), b: 1e19},
		{name: "json numbers", a: json.Number("1e19"), b: json.Number("10000000000000000000")},
		{name: "min int64", a: int64(math.MinInt64), b: float64(math.MinInt64)},
		{name: "2^63", a: uint64(1 << 63), b: json.Number("9.223372036854775808e18")},
		{name: "2^64", a: json.Number("18446744073709551616"), b: float64(1 << 64)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := New(mem.New())
			ka, kb := add(t, g, c.a), add(t, g, c.b)
			if ka != kb {
				t.Errorf("got keys %s and %s for equal numbers", ka, kb)
			}
			if va, vb := get(t, g, ka), get(t, g, kb); va != vb {
				t.Errorf("got values %v and %v for equal numbers", va, vb)
			}
		})
	}
}

func TestKeyHex(t *testing.T) {
	k, err := KeyOf(String("x"))
	if err != nil {
		t.Fatal(err)
	}

	k2, err := KeyFromHex(k.String())
	if err != nil {
		t.Fatal(err)
	}
	if k2 != k {
		t.Errorf("got %s, want %s", k2, k)
	}
	if k.Short() != k.String()[:6] {
		t.Errorf("got short form %s", k.Short())
	}

	if _, err := KeyFromHex("abc"); err == nil {
		t.Error("got no error for a short hex string")
	}
	if _, err := KeyFromHex(string(make([]byte, 64))); err == nil {
		t.Error("got no error for non-hex input")
	}

	text, err := k.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	var k3 Key
	if err := k3.UnmarshalText(text); err != nil {
		t.Fatal(err)
	}
	if k3 != k {
		t.Errorf("got %s after text round trip, want %s", k3, k)
	}
}
