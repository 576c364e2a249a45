package codec

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func itemLayout(t *testing.T) *Layout {
	t.Helper()
	layout, err := NewLayoutBuilder().
		AddUint16("id").
		AddUint8("flag").
		Build("item")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return layout
}

func TestRecordCodec_DecodeKnownBytes(t *testing.T) {
	rc := NewRecordCodec(itemLayout(t))

	rec, err := rc.Decode([]byte{0x01, 0x00, 0x05})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if got := rec.Uint("id"); got != 1 {
		t.Errorf("id mismatch: got %d, want 1", got)
	}
	if got := rec.Uint("flag"); got != 5 {
		t.Errorf("flag mismatch: got %d, want 5", got)
	}

	encoded, err := rc.Encode(rec)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !bytes.Equal(encoded, []byte{0x01, 0x00, 0x05}) {
		t.Errorf("Encode mismatch: got %x, want 010005", encoded)
	}
}

func TestRecordCodec_EncodeDecodeRoundTrip(t *testing.T) {
	layout, err := NewLayoutBuilder().
		AddUint8("u8").
		AddUint16("u16").
		AddUint32("u32").
		AddUint64("u64").
		AddInt8("i8").
		AddInt16("i16").
		AddInt32("i32").
		AddInt64("i64").
		AddFloat32("f32").
		AddFloat64("f64").
		AddBytes("tag", 4).
		Build("everything")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	rc := NewRecordCodec(layout)

	testCases := []struct {
		name string
		rec  Record
	}{
		{
			name: "zeros",
			rec: Record{
				"u8": UintValue(0), "u16": UintValue(0), "u32": UintValue(0), "u64": UintValue(0),
				"i8": IntValue(0), "i16": IntValue(0), "i32": IntValue(0), "i64": IntValue(0),
				"f32": FloatValue(0), "f64": FloatValue(0),
				"tag": BytesValue([]byte{0, 0, 0, 0}),
			},
		},
		{
			name: "maxima",
			rec: Record{
				"u8": UintValue(math.MaxUint8), "u16": UintValue(math.MaxUint16),
				"u32": UintValue(math.MaxUint32), "u64": UintValue(math.MaxUint64),
				"i8": IntValue(math.MaxInt8), "i16": IntValue(math.MaxInt16),
				"i32": IntValue(math.MaxInt32), "i64": IntValue(math.MaxInt64),
				"f32": FloatValue(float64(math.MaxFloat32)), "f64": FloatValue(math.MaxFloat64),
				"tag": BytesValue([]byte{0xFF, 0xFE, 0xFD, 0xFC}),
			},
		},
		{
			name: "minima",
			rec: Record{
				"u8": UintValue(0), "u16": UintValue(0), "u32": UintValue(0), "u64": UintValue(0),
				"i8": IntValue(math.MinInt8), "i16": IntValue(math.MinInt16),
				"i32": IntValue(math.MinInt32), "i64": IntValue(math.MinInt64),
				"f32": FloatValue(-2.5), "f64": FloatValue(math.SmallestNonzeroFloat64),
				"tag": BytesValue([]byte("abcd")),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := rc.Encode(tc.rec)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if len(encoded) != layout.Size() {
				t.Fatalf("encoded size mismatch: got %d, want %d", len(encoded), layout.Size())
			}

			decoded, err := rc.Decode(encoded)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if !decoded.Equal(tc.rec) {
				t.Errorf("round trip mismatch:\n got %v\nwant %v", decoded, tc.rec)
			}

			reencoded, err := rc.Encode(decoded)
			if err != nil {
				t.Fatalf("re-Encode failed: %v", err)
			}
			if !bytes.Equal(reencoded, encoded) {
				t.Errorf("byte round trip mismatch: got %x, want %x", reencoded, encoded)
			}
		})
	}
}

func TestRecordCodec_BufferRoundTrip(t *testing.T) {
	layout, err := NewLayoutBuilder().
		AddInt16("x").
		AddFloat32("y").
		AddBytes("pad", 3).
		Build("mixed")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	rc := NewRecordCodec(layout)

	// Every bit pattern of the correct size must survive decode+encode.
	buffers := [][]byte{
		{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
		{0x80, 0x7F, 0x01, 0x00, 0x80, 0x3F, 0xAA, 0xBB, 0xCC},
		{0x12, 0x34, 0x00, 0x00, 0xC0, 0x7F, 0x00, 0x00, 0x00}, // f32 quiet NaN bits
		{0x12, 0x34, 0x01, 0x00, 0x80, 0x7F, 0x00, 0x00, 0x00}, // f32 signaling NaN bits
	}
	for _, buf := range buffers {
		rec, err := rc.Decode(buf)
		if err != nil {
			t.Fatalf("Decode(%x) failed: %v", buf, err)
		}
		out, err := rc.Encode(rec)
		if err != nil {
			t.Fatalf("Encode after Decode(%x) failed: %v", buf, err)
		}
		if !bytes.Equal(out, buf) {
			t.Errorf("buffer round trip mismatch: got %x, want %x", out, buf)
		}
	}
}

func TestRecordCodec_BigEndian(t *testing.T) {
	layout, err := NewLayoutBuilder().
		SetOrder(BigEndian).
		AddUint16("id").
		SetOrder(LittleEndian).
		AddUint16("count").
		Build("mixed_order")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	rc := NewRecordCodec(layout)

	encoded, err := rc.Encode(Record{"id": UintValue(0x0102), "count": UintValue(0x0304)})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := []byte{0x01, 0x02, 0x04, 0x03}
	if !bytes.Equal(encoded, want) {
		t.Errorf("Encode mismatch: got %x, want %x", encoded, want)
	}
}

func TestRecordCodec_SignExtension(t *testing.T) {
	layout, err := NewLayoutBuilder().AddInt8("v").Build("tiny")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	rc := NewRecordCodec(layout)

	rec, err := rc.Decode([]byte{0xFF})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := rec.Int("v"); got != -1 {
		t.Errorf("sign extension mismatch: got %d, want -1", got)
	}
}

func TestRecordCodec_SizeMismatch(t *testing.T) {
	rc := NewRecordCodec(itemLayout(t))

	for _, n := range []int{0, 1, 2, 4, 100} {
		_, err := rc.Decode(make([]byte, n))
		if !errors.Is(err, ErrSizeMismatch) {
			t.Errorf("Decode with %d bytes: got %v, want ErrSizeMismatch", n, err)
		}
	}
}

func TestRecordCodec_MissingField(t *testing.T) {
	rc := NewRecordCodec(itemLayout(t))

	_, err := rc.Encode(Record{"id": UintValue(1)})
	if !errors.Is(err, ErrMissingField) {
		t.Errorf("got %v, want ErrMissingField", err)
	}
}

func TestRecordCodec_ValueOutOfRange(t *testing.T) {
	layout, err := NewLayoutBuilder().
		AddUint8("u8").
		AddInt8("i8").
		AddFloat32("f32").
		AddBytes("tag", 2).
		Build("bounds")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	rc := NewRecordCodec(layout)

	valid := Record{
		"u8":  UintValue(1),
		"i8":  IntValue(-1),
		"f32": FloatValue(1.5),
		"tag": BytesValue([]byte{1, 2}),
	}
	if _, err := rc.Encode(valid); err != nil {
		t.Fatalf("Encode of valid record failed: %v", err)
	}

	testCases := []struct {
		name  string
		field string
		value Value
	}{
		{"negative into unsigned", "u8", IntValue(-1)},
		{"unsigned overflow", "u8", UintValue(256)},
		{"signed overflow", "i8", IntValue(128)},
		{"signed underflow", "i8", IntValue(-129)},
		{"huge uint into signed", "i8", UintValue(math.MaxUint64)},
		{"float into int", "i8", FloatValue(1)},
		{"not a float32", "f32", FloatValue(1e300)},
		{"string too short", "tag", BytesValue([]byte{1})},
		{"string too long", "tag", BytesValue([]byte{1, 2, 3})},
		{"bytes into uint", "u8", BytesValue([]byte{1})},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := valid.Clone()
			rec[tc.field] = tc.value
			if _, err := rc.Encode(rec); !errors.Is(err, ErrValueOutOfRange) {
				t.Errorf("got %v, want ErrValueOutOfRange", err)
			}
		})
	}
}

func TestRecordCodec_CrossKindCoercion(t *testing.T) {
	layout, err := NewLayoutBuilder().
		AddUint16("u").
		AddInt16("i").
		Build("coerce")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	rc := NewRecordCodec(layout)

	// A non-negative signed value fits an unsigned field and vice versa.
	encoded, err := rc.Encode(Record{"u": IntValue(5), "i": UintValue(7)})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	rec, err := rc.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if rec.Uint("u") != 5 || rec.Int("i") != 7 {
		t.Errorf("coercion mismatch: got u=%d i=%d", rec.Uint("u"), rec.Int("i"))
	}
}

func TestRecordCodec_DecodeDoesNotRetainBuffer(t *testing.T) {
	layout, err := NewLayoutBuilder().AddBytes("tag", 2).Build("alias")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	rc := NewRecordCodec(layout)

	buf := []byte{1, 2}
	rec, err := rc.Decode(buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	buf[0] = 9
	if got := rec.Bytes("tag"); !bytes.Equal(got, []byte{1, 2}) {
		t.Errorf("decoded bytes alias the input buffer: got %v", got)
	}
}
