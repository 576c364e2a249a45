// Package codec converts fixed-layout binary records to and from raw byte
// buffers. It is the core of rawdb: game-data files are sequences of
// fixed-size records, and external tools agree on the exact field order,
// widths and byte order of each record. The codec treats that agreement as a
// hard compatibility contract; it never infers a layout from the data.
//
// # Layouts
//
// A Layout is an ordered list of typed fields. Each field has a unique name,
// a byte width, a kind (unsigned integer, signed integer, float or raw
// bytes) and a byte order. The sum of the field widths is the fixed record
// size. Layouts are immutable once built and safe for concurrent use.
//
// Layouts are usually assembled with a LayoutBuilder:
//
//	layout, err := codec.NewLayoutBuilder().
//		AddUint16("id").
//		AddUint8("flag").
//		Build("item")
//
// # Records
//
// A Record maps field names to tagged Values. Decoding a buffer of exactly
// the layout size yields one Value per field; encoding a Record that carries
// every field yields a buffer of exactly the layout size, fields written
// contiguously in layout order. Round-tripping is bit exact in both
// directions: Decode(Encode(r)) == r and Encode(Decode(b)) == b.
//
//	rc := codec.NewRecordCodec(layout)
//
//	rec, err := rc.Decode(buf)
//	id := rec.Uint("id")
//
//	buf, err := rc.Encode(rec)
//
// # Error Handling
//
// All failures are synchronous and carry one of four sentinel errors that
// callers can test with errors.Is:
//
//   - ErrSizeMismatch: the buffer length disagrees with the layout size
//   - ErrMissingField: an encode input lacks a declared field
//   - ErrValueOutOfRange: a value cannot be represented in the field's
//     declared width or kind
//   - ErrDecode: bytes fail a validated kind's check (plain integers and
//     floats never hit this; format parsers wrap it for magic tags)
//
// The codec never truncates, pads or guesses, and it performs no I/O and no
// logging.
//
// # Thread Safety
//
// RecordCodec and Layout are stateless beyond the immutable layout and are
// safe for concurrent use. Records and buffers are plain caller-owned
// values; every call produces a fresh instance.
package codec
