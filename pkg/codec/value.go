package codec

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
)

// Value is a decoded field value: a tagged union over the four field kinds.
// The zero Value is an unsigned zero.
type Value struct {
	kind Kind
	u    uint64
	i    int64
	f    float64
	b    []byte

	// Exact source bits for values decoded from a float32 field. Widening
	// a signaling NaN through float64 sets the quiet bit, so the float64
	// payload alone cannot reproduce every 32-bit pattern.
	f32    uint32
	hasF32 bool
}

// UintValue wraps an unsigned integer.
func UintValue(v uint64) Value { return Value{kind: Uint, u: v} }

// IntValue wraps a signed integer.
func IntValue(v int64) Value { return Value{kind: Int, i: v} }

// FloatValue wraps a float.
func FloatValue(v float64) Value { return Value{kind: Float, f: v} }

// float32Value wraps a decoded 32-bit float, keeping the source bits.
func float32Value(bits uint32) Value {
	return Value{kind: Float, f: float64(math.Float32frombits(bits)), f32: bits, hasF32: true}
}

// float32Bits reports the exact 32-bit pattern the value was decoded from,
// if it has one.
func (v Value) float32Bits() (uint32, bool) {
	return v.f32, v.hasF32
}

// BytesValue wraps a byte string. The bytes are copied.
func BytesValue(b []byte) Value {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Value{kind: Bytes, b: cp}
}

// Kind returns the value's kind tag.
func (v Value) Kind() Kind { return v.kind }

// Uint returns the unsigned integer payload; zero for other kinds.
func (v Value) Uint() uint64 { return v.u }

// Int returns the signed integer payload; zero for other kinds.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload; zero for other kinds.
func (v Value) Float() float64 { return v.f }

// Bytes returns a copy of the byte string payload; nil for other kinds.
func (v Value) Bytes() []byte {
	if v.kind != Bytes {
		return nil
	}
	cp := make([]byte, len(v.b))
	copy(cp, v.b)
	return cp
}

// Equal reports whether two values have the same kind and payload. Floats
// compare by bit pattern, so NaN equals NaN and 0 differs from -0.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Uint:
		return v.u == o.u
	case Int:
		return v.i == o.i
	case Float:
		return math.Float64bits(v.f) == math.Float64bits(o.f)
	case Bytes:
		return bytes.Equal(v.b, o.b)
	}
	return false
}

func (v Value) String() string {
	switch v.kind {
	case Uint:
		return strconv.FormatUint(v.u, 10)
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Float:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case Bytes:
		return "0x" + hex.EncodeToString(v.b)
	}
	return fmt.Sprintf("value(kind=%d)", uint8(v.kind))
}
