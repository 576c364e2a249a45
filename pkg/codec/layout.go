package codec

import (
	"fmt"
	"strings"
)

// Layout is an ordered, fixed-width field schema describing one binary
// record. It is immutable after construction and safe for shared concurrent
// use.
type Layout struct {
	name   string
	fields []FieldSpec
	index  map[string]int
	size   int
}

// NewLayout builds a layout from an explicit field list. Field order is
// significant: it defines the byte order of the record on the wire.
func NewLayout(name string, fields []FieldSpec) (*Layout, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: layout %q has no fields", ErrInvalidLayout, name)
	}

	l := &Layout{
		name:   name,
		fields: make([]FieldSpec, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	copy(l.fields, fields)

	for i, f := range l.fields {
		if err := f.validate(); err != nil {
			return nil, err
		}
		if _, dup := l.index[f.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate field %q in layout %q", ErrInvalidLayout, f.Name, name)
		}
		l.index[f.Name] = i
		l.size += f.Width
	}

	return l, nil
}

// Name returns the layout's name.
func (l *Layout) Name() string { return l.name }

// Size returns the fixed record size in bytes.
func (l *Layout) Size() int { return l.size }

// NumFields returns the number of fields.
func (l *Layout) NumFields() int { return len(l.fields) }

// Fields returns a copy of the field list in layout order.
func (l *Layout) Fields() []FieldSpec {
	fields := make([]FieldSpec, len(l.fields))
	copy(fields, l.fields)
	return fields
}

// Field looks a field up by name.
func (l *Layout) Field(name string) (FieldSpec, bool) {
	i, ok := l.index[name]
	if !ok {
		return FieldSpec{}, false
	}
	return l.fields[i], true
}

// Describe renders the layout as a C-style struct declaration, one field per
// line. Byte strings are declared as uint8_t arrays and non-default byte
// orders are called out in a trailing comment.
func (l *Layout) Describe() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "struct %s {\n", l.name)
	for _, f := range l.fields {
		fmt.Fprintf(&sb, "\t%s %s", f.typeName(), f.Name)
		if f.Kind == Bytes {
			fmt.Fprintf(&sb, "[%d]", f.Width)
		}
		sb.WriteString(";")
		if f.Order == BigEndian && f.Kind != Bytes {
			sb.WriteString(" // big endian")
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "}; // %d byte(s)", l.size)
	return sb.String()
}

// LayoutBuilder assembles a Layout one field at a time. Fields default to
// little endian; SetOrder changes the order applied to fields added after
// the call. Errors are deferred to Build so calls can chain.
type LayoutBuilder struct {
	fields []FieldSpec
	order  ByteOrder
}

// NewLayoutBuilder returns an empty little-endian builder.
func NewLayoutBuilder() *LayoutBuilder {
	return &LayoutBuilder{order: LittleEndian}
}

// SetOrder sets the byte order used for subsequently added fields.
func (b *LayoutBuilder) SetOrder(order ByteOrder) *LayoutBuilder {
	b.order = order
	return b
}

// AddField appends a fully specified field.
func (b *LayoutBuilder) AddField(spec FieldSpec) *LayoutBuilder {
	b.fields = append(b.fields, spec)
	return b
}

func (b *LayoutBuilder) add(name string, kind Kind, width int) *LayoutBuilder {
	return b.AddField(FieldSpec{Name: name, Kind: kind, Width: width, Order: b.order})
}

// AddUint8 appends an unsigned 1-byte field.
func (b *LayoutBuilder) AddUint8(name string) *LayoutBuilder { return b.add(name, Uint, 1) }

// AddUint16 appends an unsigned 2-byte field.
func (b *LayoutBuilder) AddUint16(name string) *LayoutBuilder { return b.add(name, Uint, 2) }

// AddUint32 appends an unsigned 4-byte field.
func (b *LayoutBuilder) AddUint32(name string) *LayoutBuilder { return b.add(name, Uint, 4) }

// AddUint64 appends an unsigned 8-byte field.
func (b *LayoutBuilder) AddUint64(name string) *LayoutBuilder { return b.add(name, Uint, 8) }

// AddInt8 appends a signed 1-byte field.
func (b *LayoutBuilder) AddInt8(name string) *LayoutBuilder { return b.add(name, Int, 1) }

// AddInt16 appends a signed 2-byte field.
func (b *LayoutBuilder) AddInt16(name string) *LayoutBuilder { return b.add(name, Int, 2) }

// AddInt32 appends a signed 4-byte field.
func (b *LayoutBuilder) AddInt32(name string) *LayoutBuilder { return b.add(name, Int, 4) }

// AddInt64 appends a signed 8-byte field.
func (b *LayoutBuilder) AddInt64(name string) *LayoutBuilder { return b.add(name, Int, 8) }

// AddFloat32 appends a 4-byte IEEE 754 field.
func (b *LayoutBuilder) AddFloat32(name string) *LayoutBuilder { return b.add(name, Float, 4) }

// AddFloat64 appends an 8-byte IEEE 754 field.
func (b *LayoutBuilder) AddFloat64(name string) *LayoutBuilder { return b.add(name, Float, 8) }

// AddBytes appends a fixed-length byte string field.
func (b *LayoutBuilder) AddBytes(name string, width int) *LayoutBuilder {
	return b.add(name, Bytes, width)
}

// Build validates the accumulated fields and returns the immutable layout.
func (b *LayoutBuilder) Build(name string) (*Layout, error) {
	return NewLayout(name, b.fields)
}

// MustBuild is Build for static, programmer-defined layouts; it panics on
// error.
func (b *LayoutBuilder) MustBuild(name string) *Layout {
	l, err := b.Build(name)
	if err != nil {
		panic(err)
	}
	return l
}
