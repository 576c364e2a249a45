package recordio

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pprehq/rawdb/pkg/codec"
)

// JSON representation of records, shared by the CLI's pack/unpack commands
// and the HTTP service. Integers map to JSON numbers, byte strings to hex
// strings. Callers decoding JSON input should enable json.Decoder.UseNumber
// so 64-bit integers survive with full precision.

// RecordToJSON converts a decoded record into a JSON-marshalable map, in
// the value representation described above.
func RecordToJSON(layout *codec.Layout, rec codec.Record) (map[string]any, error) {
	obj := make(map[string]any, layout.NumFields())
	for _, f := range layout.Fields() {
		v, ok := rec[f.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %q in layout %q", codec.ErrMissingField, f.Name, layout.Name())
		}
		switch f.Kind {
		case codec.Uint:
			obj[f.Name] = v.Uint()
		case codec.Int:
			obj[f.Name] = v.Int()
		case codec.Float:
			obj[f.Name] = v.Float()
		case codec.Bytes:
			obj[f.Name] = hex.EncodeToString(v.Bytes())
		}
	}
	return obj, nil
}

// RecordFromJSON converts an unmarshaled JSON object back into a record for
// the given layout. Unknown keys are rejected so typos surface instead of
// silently dropping data.
func RecordFromJSON(layout *codec.Layout, obj map[string]any) (codec.Record, error) {
	for name := range obj {
		if _, ok := layout.Field(name); !ok {
			return nil, fmt.Errorf("unknown field %q for layout %q", name, layout.Name())
		}
	}

	rec := make(codec.Record, layout.NumFields())
	for _, f := range layout.Fields() {
		raw, ok := obj[f.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %q in layout %q", codec.ErrMissingField, f.Name, layout.Name())
		}
		v, err := valueFromJSON(f, raw)
		if err != nil {
			return nil, err
		}
		rec[f.Name] = v
	}
	return rec, nil
}

func valueFromJSON(f codec.FieldSpec, raw any) (codec.Value, error) {
	switch f.Kind {
	case codec.Uint:
		switch v := raw.(type) {
		case json.Number:
			u, err := parseUintNumber(v)
			if err != nil {
				return codec.Value{}, fmt.Errorf("field %q: %w", f.Name, err)
			}
			return codec.UintValue(u), nil
		case float64:
			if v != math.Trunc(v) || v < 0 {
				return codec.Value{}, fmt.Errorf("field %q: %v is not an unsigned integer", f.Name, v)
			}
			return codec.UintValue(uint64(v)), nil
		}
	case codec.Int:
		switch v := raw.(type) {
		case json.Number:
			i, err := v.Int64()
			if err != nil {
				return codec.Value{}, fmt.Errorf("field %q: %w", f.Name, err)
			}
			return codec.IntValue(i), nil
		case float64:
			if v != math.Trunc(v) {
				return codec.Value{}, fmt.Errorf("field %q: %v is not an integer", f.Name, v)
			}
			return codec.IntValue(int64(v)), nil
		}
	case codec.Float:
		switch v := raw.(type) {
		case json.Number:
			fv, err := v.Float64()
			if err != nil {
				return codec.Value{}, fmt.Errorf("field %q: %w", f.Name, err)
			}
			return codec.FloatValue(fv), nil
		case float64:
			return codec.FloatValue(v), nil
		}
	case codec.Bytes:
		if s, ok := raw.(string); ok {
			b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
			if err != nil {
				return codec.Value{}, fmt.Errorf("field %q: %w", f.Name, err)
			}
			return codec.BytesValue(b), nil
		}
	}
	return codec.Value{}, fmt.Errorf("field %q: cannot use %T as %s", f.Name, raw, f.Kind)
}

func parseUintNumber(n json.Number) (uint64, error) {
	// json.Number has no Uint64 accessor.
	u, err := strconv.ParseUint(n.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not an unsigned integer", n.String())
	}
	return u, nil
}
