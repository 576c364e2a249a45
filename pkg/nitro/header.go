// Package nitro implements the generic section framing shared by Nitro
// game-data files, plus the NCLR palette format. Sections start with a
// 16-byte header whose magic tag identifies the format; the header itself
// is an ordinary fixed layout handled by pkg/codec, and the magic check is
// the one place where decoding validates content rather than just width.
package nitro

import (
	"fmt"

	"github.com/pprehq/rawdb/pkg/codec"
)

// HeaderSize is the size of the generic section header in bytes.
const HeaderSize = 16

// ByteOrderMark is the constant stored after the magic in most headers.
const ByteOrderMark uint32 = 0x0100FEFF

var headerLayout = codec.NewLayoutBuilder().
	AddUint32("magic").
	AddUint32("constant").
	AddUint32("section_size").
	AddUint16("header_size").
	AddUint16("section_count").
	MustBuild("generic_header")

var headerCodec = codec.NewRecordCodec(headerLayout)

// SectionHeader is the generic 16-byte header that opens a section: magic
// tag, byte-order constant, total section size, header size and the number
// of subsections.
type SectionHeader struct {
	Magic        uint32
	Constant     uint32
	SectionSize  uint32
	HeaderSize   uint16
	SectionCount uint16
}

// Tag packs a four-character magic tag into the uint32 it decodes to when
// read little endian from the file.
func Tag(tag string) uint32 {
	if len(tag) != 4 {
		panic(fmt.Sprintf("nitro: magic tag %q must be 4 characters", tag))
	}
	return uint32(tag[0]) | uint32(tag[1])<<8 | uint32(tag[2])<<16 | uint32(tag[3])<<24
}

// TagString is the inverse of Tag, for error messages.
func TagString(magic uint32) string {
	return string([]byte{byte(magic), byte(magic >> 8), byte(magic >> 16), byte(magic >> 24)})
}

// ParseSectionHeader decodes the header at the start of buf and checks its
// magic tag. A wrong tag fails with an error wrapping codec.ErrDecode.
func ParseSectionHeader(buf []byte, wantMagic uint32) (SectionHeader, error) {
	if len(buf) < HeaderSize {
		return SectionHeader{}, fmt.Errorf("%w: section of %d bytes is shorter than its header",
			codec.ErrSizeMismatch, len(buf))
	}

	rec, err := headerCodec.Decode(buf[:HeaderSize])
	if err != nil {
		return SectionHeader{}, err
	}

	h := SectionHeader{
		Magic:        uint32(rec.Uint("magic")),
		Constant:     uint32(rec.Uint("constant")),
		SectionSize:  uint32(rec.Uint("section_size")),
		HeaderSize:   uint16(rec.Uint("header_size")),
		SectionCount: uint16(rec.Uint("section_count")),
	}
	if h.Magic != wantMagic {
		return SectionHeader{}, fmt.Errorf("%w: magic %q, want %q",
			codec.ErrDecode, TagString(h.Magic), TagString(wantMagic))
	}
	return h, nil
}

// Encode serializes the header into its 16-byte form.
func (h SectionHeader) Encode() ([]byte, error) {
	return headerCodec.Encode(codec.Record{
		"magic":         codec.UintValue(uint64(h.Magic)),
		"constant":      codec.UintValue(uint64(h.Constant)),
		"section_size":  codec.UintValue(uint64(h.SectionSize)),
		"header_size":   codec.UintValue(uint64(h.HeaderSize)),
		"section_count": codec.UintValue(uint64(h.SectionCount)),
	})
}
