package codec

import (
	"fmt"
	"math"
)

// RecordCodec converts records to and from raw buffers against one layout.
// It holds no state beyond the immutable layout and is safe for concurrent
// use.
type RecordCodec struct {
	layout *Layout
}

// NewRecordCodec creates a codec bound to the given layout.
func NewRecordCodec(layout *Layout) *RecordCodec {
	return &RecordCodec{layout: layout}
}

// Layout returns the codec's layout.
func (c *RecordCodec) Layout() *Layout { return c.layout }

// Decode reinterprets a buffer of exactly the layout size as one record.
// Fields are read in layout order, each per its declared kind, width and
// byte order. The buffer is not retained.
func (c *RecordCodec) Decode(buf []byte) (Record, error) {
	if len(buf) != c.layout.size {
		return nil, fmt.Errorf("%w: layout %q needs %d bytes, got %d",
			ErrSizeMismatch, c.layout.name, c.layout.size, len(buf))
	}

	rec := make(Record, len(c.layout.fields))
	off := 0
	for _, f := range c.layout.fields {
		raw := buf[off : off+f.Width]
		switch f.Kind {
		case Uint:
			rec[f.Name] = UintValue(readUint(raw, f.Order))
		case Int:
			u := readUint(raw, f.Order)
			shift := 64 - uint(f.Width)*8
			rec[f.Name] = IntValue(int64(u<<shift) >> shift)
		case Float:
			u := readUint(raw, f.Order)
			if f.Width == 4 {
				rec[f.Name] = float32Value(uint32(u))
			} else {
				rec[f.Name] = FloatValue(math.Float64frombits(u))
			}
		case Bytes:
			rec[f.Name] = BytesValue(raw)
		}
		off += f.Width
	}

	return rec, nil
}

// Encode serializes a record into a fresh buffer of exactly the layout
// size. Every declared field must be present and fit its declared width and
// kind; nothing is truncated or defaulted.
func (c *RecordCodec) Encode(rec Record) ([]byte, error) {
	buf := make([]byte, c.layout.size)
	off := 0
	for _, f := range c.layout.fields {
		v, ok := rec[f.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %q in layout %q", ErrMissingField, f.Name, c.layout.name)
		}

		switch f.Kind {
		case Uint:
			u, err := uintFor(f, v)
			if err != nil {
				return nil, err
			}
			writeUint(buf[off:off+f.Width], u, f.Order)
		case Int:
			i, err := intFor(f, v)
			if err != nil {
				return nil, err
			}
			writeUint(buf[off:off+f.Width], uint64(i), f.Order)
		case Float:
			if v.Kind() != Float {
				return nil, kindMismatch(f, v)
			}
			fv := v.Float()
			if f.Width == 4 {
				if bits, ok := v.float32Bits(); ok {
					writeUint(buf[off:off+f.Width], uint64(bits), f.Order)
				} else if float64(float32(fv)) != fv && !math.IsNaN(fv) {
					return nil, fmt.Errorf("%w: %v is not representable as float32 in field %q",
						ErrValueOutOfRange, fv, f.Name)
				} else {
					writeUint(buf[off:off+f.Width], uint64(math.Float32bits(float32(fv))), f.Order)
				}
			} else {
				writeUint(buf[off:off+f.Width], math.Float64bits(fv), f.Order)
			}
		case Bytes:
			if v.Kind() != Bytes {
				return nil, kindMismatch(f, v)
			}
			if len(v.b) != f.Width {
				return nil, fmt.Errorf("%w: field %q wants %d bytes, value has %d",
					ErrValueOutOfRange, f.Name, f.Width, len(v.b))
			}
			copy(buf[off:off+f.Width], v.b)
		}
		off += f.Width
	}

	return buf, nil
}

// uintFor coerces a value into an unsigned field, accepting non-negative
// signed values that fit.
func uintFor(f FieldSpec, v Value) (uint64, error) {
	var u uint64
	switch v.Kind() {
	case Uint:
		u = v.Uint()
	case Int:
		if v.Int() < 0 {
			return 0, fmt.Errorf("%w: %d into unsigned field %q", ErrValueOutOfRange, v.Int(), f.Name)
		}
		u = uint64(v.Int())
	default:
		return 0, kindMismatch(f, v)
	}
	if u > maxUint(f.Width) {
		return 0, fmt.Errorf("%w: %d exceeds %d-byte field %q", ErrValueOutOfRange, u, f.Width, f.Name)
	}
	return u, nil
}

// intFor coerces a value into a signed field, accepting unsigned values that
// fit.
func intFor(f FieldSpec, v Value) (int64, error) {
	var i int64
	switch v.Kind() {
	case Int:
		i = v.Int()
	case Uint:
		if v.Uint() > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d into signed field %q", ErrValueOutOfRange, v.Uint(), f.Name)
		}
		i = int64(v.Uint())
	default:
		return 0, kindMismatch(f, v)
	}
	if i < minInt(f.Width) || i > maxInt(f.Width) {
		return 0, fmt.Errorf("%w: %d exceeds %d-byte signed field %q", ErrValueOutOfRange, i, f.Width, f.Name)
	}
	return i, nil
}

func kindMismatch(f FieldSpec, v Value) error {
	return fmt.Errorf("%w: %s value into %s field %q", ErrValueOutOfRange, v.Kind(), f.Kind, f.Name)
}

func maxUint(width int) uint64 {
	if width >= 8 {
		return math.MaxUint64
	}
	return 1<<(uint(width)*8) - 1
}

func maxInt(width int) int64 {
	if width >= 8 {
		return math.MaxInt64
	}
	return int64(1)<<(uint(width)*8-1) - 1
}

func minInt(width int) int64 {
	if width >= 8 {
		return math.MinInt64
	}
	return -(int64(1) << (uint(width)*8 - 1))
}

// readUint reads a 1, 2, 4 or 8 byte unsigned integer from raw.
func readUint(raw []byte, order ByteOrder) uint64 {
	bo := order.byteOrder()
	switch len(raw) {
	case 1:
		return uint64(raw[0])
	case 2:
		return uint64(bo.Uint16(raw))
	case 4:
		return uint64(bo.Uint32(raw))
	default:
		return bo.Uint64(raw)
	}
}

// writeUint writes the low len(raw) bytes of u into raw.
func writeUint(raw []byte, u uint64, order ByteOrder) {
	bo := order.byteOrder()
	switch len(raw) {
	case 1:
		raw[0] = byte(u)
	case 2:
		bo.PutUint16(raw, uint16(u))
	case 4:
		bo.PutUint32(raw, uint32(u))
	default:
		bo.PutUint64(raw, u)
	}
}
