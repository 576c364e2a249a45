// Package binaryio provides positioned little-endian primitives over
// in-memory byte buffers. File format parsers use it to walk sections that
// mix fixed-layout headers with variable-length payloads; the higher-level
// record codec in pkg/codec handles the fixed-layout parts.
package binaryio

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Reader reads little-endian values from a byte slice at a tracked
// position. Reads past the end fail with an error wrapping
// io.ErrUnexpectedEOF; the position is left unchanged on failure.
type Reader struct {
	buf []byte
	off int
}

// NewReader creates a reader positioned at the start of buf. The slice is
// not copied; the caller must not mutate it while reading.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Pos returns the current read position.
func (r *Reader) Pos() int { return r.off }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.off }

// Seek moves the read position to off.
func (r *Reader) Seek(off int) error {
	if off < 0 || off > len(r.buf) {
		return fmt.Errorf("binaryio: seek to %d outside buffer of %d bytes: %w",
			off, len(r.buf), io.ErrUnexpectedEOF)
	}
	r.off = off
	return nil
}

func (r *Reader) take(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, fmt.Errorf("binaryio: need %d bytes at offset %d, have %d: %w",
			n, r.off, r.Remaining(), io.ErrUnexpectedEOF)
	}
	raw := r.buf[r.off : r.off+n]
	r.off += n
	return raw, nil
}

// ReadUint8 reads one byte.
func (r *Reader) ReadUint8() (uint8, error) {
	raw, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return raw[0], nil
}

// ReadUint16 reads a little-endian 16-bit value.
func (r *Reader) ReadUint16() (uint16, error) {
	raw, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(raw), nil
}

// ReadUint32 reads a little-endian 32-bit value.
func (r *Reader) ReadUint32() (uint32, error) {
	raw, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(raw), nil
}

// ReadUint64 reads a little-endian 64-bit value.
func (r *Reader) ReadUint64() (uint64, error) {
	raw, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(raw), nil
}

// ReadInt8 reads one byte as a signed value.
func (r *Reader) ReadInt8() (int8, error) {
	v, err := r.ReadUint8()
	return int8(v), err
}

// ReadInt16 reads a little-endian signed 16-bit value.
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

// ReadInt32 reads a little-endian signed 32-bit value.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadInt64 reads a little-endian signed 64-bit value.
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadBytes reads n bytes into a fresh slice.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	raw, err := r.take(n)
	if err != nil {
		return nil, err
	}
	cp := make([]byte, n)
	copy(cp, raw)
	return cp, nil
}

// ReadCString reads bytes up to and including a NUL terminator and returns
// them without it.
func (r *Reader) ReadCString() (string, error) {
	for i := r.off; i < len(r.buf); i++ {
		if r.buf[i] == 0 {
			s := string(r.buf[r.off:i])
			r.off = i + 1
			return s, nil
		}
	}
	return "", fmt.Errorf("binaryio: unterminated string at offset %d: %w",
		r.off, io.ErrUnexpectedEOF)
}

// Align advances the position to the next multiple of n.
func (r *Reader) Align(n int) error {
	if n <= 0 {
		return fmt.Errorf("binaryio: align to %d", n)
	}
	pad := (n - r.off%n) % n
	_, err := r.take(pad)
	return err
}

// Writer appends little-endian values to a growing byte buffer.
type Writer struct {
	buf []byte
}

// NewWriter creates an empty writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Pos returns the number of bytes written so far.
func (w *Writer) Pos() int { return len(w.buf) }

// Bytes returns the accumulated buffer. The slice aliases the writer's
// internal storage.
func (w *Writer) Bytes() []byte { return w.buf }

// WriteUint8 appends one byte.
func (w *Writer) WriteUint8(v uint8) {
	w.buf = append(w.buf, v)
}

// WriteUint16 appends a little-endian 16-bit value.
func (w *Writer) WriteUint16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

// WriteUint32 appends a little-endian 32-bit value.
func (w *Writer) WriteUint32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// WriteUint64 appends a little-endian 64-bit value.
func (w *Writer) WriteUint64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

// WriteInt8 appends one byte.
func (w *Writer) WriteInt8(v int8) {
	w.WriteUint8(uint8(v))
}

// WriteInt16 appends a little-endian signed 16-bit value.
func (w *Writer) WriteInt16(v int16) {
	w.WriteUint16(uint16(v))
}

// WriteInt32 appends a little-endian signed 32-bit value.
func (w *Writer) WriteInt32(v int32) {
	w.WriteUint32(uint32(v))
}

// WriteInt64 appends a little-endian signed 64-bit value.
func (w *Writer) WriteInt64(v int64) {
	w.WriteUint64(uint64(v))
}

// WriteBytes appends raw bytes.
func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteCString appends s followed by a NUL terminator.
func (w *Writer) WriteCString(s string) {
	w.buf = append(w.buf, s...)
	w.buf = append(w.buf, 0)
}

// Align pads with the given byte until the position is a multiple of n.
// Alignments below 2 are always satisfied and append nothing.
func (w *Writer) Align(n int, pad byte) {
	if n < 2 {
		return
	}
	for len(w.buf)%n != 0 {
		w.buf = append(w.buf, pad)
	}
}
