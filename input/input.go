// Package input decodes documents into raw value trees
// suitable for graph.Graph.Add.
package input

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	graph "github.com/davidk01/normalized-graph"
)

// Format names an input document format.
type Format string

const (
	JSON  Format = "json"
	JSONC Format = "jsonc"
	YAML  Format = "yaml"
	CBOR  Format = "cbor"
)

// ErrUnknownFormat is the error returned for a format name
// or file extension that no decoder handles.
var ErrUnknownFormat = errors.New("unknown input format")

// ParseFormat converts a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case JSON, JSONC, YAML, CBOR:
		return f, nil
	case "yml":
		return YAML, nil
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
}

// FormatFor infers a Format from a filename's extension.
// Anything unrecognized, including stdin's "-", is JSON.
func FormatFor(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jsonc":
		return JSONC
	case ".yaml", ".yml":
		return YAML
	case ".cbor":
		return CBOR
	}
	return JSON
}

var decMode cbor.DecMode

func init() {
	var err error
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("input: CBOR decoder initialization failed: " + err.Error())
	}
}

// Decode reads one document in the given format from r.
//
// JSON objects decode to graph.Object,
// preserving member order and repeated member names,
// and JSON numbers to json.Number,
// so no precision is lost before normalization.
// JSON null, YAML null, and CBOR byte strings
// decode to values that graph.Graph.Add rejects.
func Decode(r io.Reader, f Format) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading input")
	}

	switch f {
	case JSON:
		return decodeJSON(data)

	case JSONC:
		return decodeJSON(jsonc.ToJSON(data))

	case YAML:
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, errors.Wrap(err, "decoding YAML")
		}
		return v, nil

	case CBOR:
		var v any
		if err := decMode.Unmarshal(data, &v); err != nil {
			return nil, errors.Wrap(err, "decoding CBOR")
		}
		return v, nil
	}

	return nil, errors.Wrapf(ErrUnknownFormat, "%q", f)
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, errors.Wrap(err, "decoding JSON")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("decoding JSON: trailing data after top-level value")
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err == io.EOF {
		return nil, io.ErrUnexpectedEOF
	}
	if err != nil {
		return nil, err
	}

	switch tok := tok.(type) {
	case json.Delim:
		switch tok {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %s", tok)

	case string, bool, json.Number, nil:
		return tok, nil
	}

	return nil, fmt.Errorf("unexpected JSON token %T", tok)
}

// decodeJSONObject decodes object members in order.
// The opening '{' has already been consumed.
func decodeJSONObject(dec *json.Decoder) (any, error) {
	obj := graph.Object{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object member name is %T, not string", tok)
		}
		val, err := decodeJSONValue(dec)
		if err != nil {
			return nil, errors.Wrapf(err, "in member %q", name)
		}
		obj = append(obj, graph.Member{Name: name, Value: val})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

// decodeJSONArray decodes array elements.
// The opening '[' has already been consumed.
func decodeJSONArray(dec *json.Decoder) (any, error) {
	arr := []any{}
	for dec.More() {
		val, err := decodeJSONValue(dec)
		if err != nil {
			return nil, errors.Wrapf(err, "in element %d", len(arr))
		}
		arr = append(arr, val)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}
