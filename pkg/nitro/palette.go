package nitro

import (
	"fmt"

	"github.com/pprehq/rawdb/pkg/binaryio"
	"github.com/pprehq/rawdb/pkg/codec"
)

// NCLR is a palette file: an outer "RLCN" section wrapping one "TTLP"
// subsection that carries 15-bit BGR color entries.

var (
	paletteMagic = Tag("RLCN")
	plttMagic    = Tag("TTLP")
)

const plttHeaderSize = 24

var plttLayout = codec.NewLayoutBuilder().
	AddUint32("magic").
	AddUint32("section_size").
	AddUint32("bit_depth").
	AddUint32("unused").
	AddUint32("data_size").
	AddUint32("color_count").
	MustBuild("pltt_header")

var plttCodec = codec.NewRecordCodec(plttLayout)

// Color is an RGB triple expanded from a 15-bit palette entry. Channels use
// the low 5 bits scaled to 8, so values are multiples of 8.
type Color struct {
	R, G, B uint8
}

// DecodeColor expands a 15-bit BGR entry. The top bit is ignored.
func DecodeColor(v uint16) Color {
	return Color{
		R: uint8(v&0x1F) << 3,
		G: uint8(v>>5&0x1F) << 3,
		B: uint8(v>>10&0x1F) << 3,
	}
}

// EncodeColor packs a color back into its 15-bit BGR entry, dropping the
// low 3 bits of each channel.
func EncodeColor(c Color) uint16 {
	return uint16(c.R>>3) | uint16(c.G>>3)<<5 | uint16(c.B>>3)<<10
}

// Palette is a decoded NCLR palette.
type Palette struct {
	BitDepth uint32
	Colors   []Color
}

// ParsePalette decodes a complete NCLR file.
func ParsePalette(raw []byte) (*Palette, error) {
	outer, err := ParseSectionHeader(raw, paletteMagic)
	if err != nil {
		return nil, err
	}
	if int(outer.SectionSize) > len(raw) {
		return nil, fmt.Errorf("%w: header claims %d bytes, file has %d",
			codec.ErrSizeMismatch, outer.SectionSize, len(raw))
	}

	body := raw[HeaderSize:]
	if len(body) < plttHeaderSize {
		return nil, fmt.Errorf("%w: palette section of %d bytes is shorter than its header",
			codec.ErrSizeMismatch, len(body))
	}
	rec, err := plttCodec.Decode(body[:plttHeaderSize])
	if err != nil {
		return nil, err
	}
	if magic := uint32(rec.Uint("magic")); magic != plttMagic {
		return nil, fmt.Errorf("%w: magic %q, want %q",
			codec.ErrDecode, TagString(magic), TagString(plttMagic))
	}

	count := int(rec.Uint("color_count"))
	r := binaryio.NewReader(body[plttHeaderSize:])
	if r.Remaining() < count*2 {
		return nil, fmt.Errorf("%w: %d colors declared, data holds %d",
			codec.ErrSizeMismatch, count, r.Remaining()/2)
	}

	p := &Palette{
		BitDepth: uint32(rec.Uint("bit_depth")),
		Colors:   make([]Color, 0, count),
	}
	for i := 0; i < count; i++ {
		v, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		p.Colors = append(p.Colors, DecodeColor(v))
	}
	return p, nil
}

// Encode serializes the palette back into a complete NCLR file.
func (p *Palette) Encode() ([]byte, error) {
	dataSize := uint32(len(p.Colors) * 2)
	plttSize := uint32(plttHeaderSize) + dataSize

	plttHeader, err := plttCodec.Encode(codec.Record{
		"magic":        codec.UintValue(uint64(plttMagic)),
		"section_size": codec.UintValue(uint64(plttSize)),
		"bit_depth":    codec.UintValue(uint64(p.BitDepth)),
		"unused":       codec.UintValue(0),
		"data_size":    codec.UintValue(uint64(dataSize)),
		"color_count":  codec.UintValue(uint64(len(p.Colors))),
	})
	if err != nil {
		return nil, err
	}

	outer := SectionHeader{
		Magic:        paletteMagic,
		Constant:     ByteOrderMark,
		SectionSize:  uint32(HeaderSize) + plttSize,
		HeaderSize:   HeaderSize,
		SectionCount: 1,
	}
	outerHeader, err := outer.Encode()
	if err != nil {
		return nil, err
	}

	w := binaryio.NewWriter()
	w.WriteBytes(outerHeader)
	w.WriteBytes(plttHeader)
	for _, c := range p.Colors {
		w.WriteUint16(EncodeColor(c))
	}
	return w.Bytes(), nil
}
