package codec

import (
	"encoding/binary"
	"fmt"
)

// Kind is the numeric kind of a field.
type Kind uint8

const (
	Uint Kind = iota // unsigned integer, width 1, 2, 4 or 8
	Int              // signed two's-complement integer, width 1, 2, 4 or 8
	Float            // IEEE 754 float, width 4 or 8
	Bytes            // fixed-length byte string, any positive width
)

func (k Kind) String() string {
	switch k {
	case Uint:
		return "uint"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bytes:
		return "bytes"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ByteOrder selects the wire byte order of a field.
type ByteOrder uint8

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

func (o ByteOrder) String() string {
	if o == BigEndian {
		return "big"
	}
	return "little"
}

func (o ByteOrder) byteOrder() binary.ByteOrder {
	if o == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// FieldSpec describes one field of a layout.
type FieldSpec struct {
	Name  string
	Kind  Kind
	Width int
	Order ByteOrder
}

func (f FieldSpec) validate() error {
	if f.Name == "" {
		return fmt.Errorf("%w: field with empty name", ErrInvalidLayout)
	}
	if f.Width <= 0 {
		return fmt.Errorf("%w: field %q has width %d", ErrInvalidLayout, f.Name, f.Width)
	}
	switch f.Kind {
	case Uint, Int:
		switch f.Width {
		case 1, 2, 4, 8:
		default:
			return fmt.Errorf("%w: field %q: %s width must be 1, 2, 4 or 8, got %d",
				ErrInvalidLayout, f.Name, f.Kind, f.Width)
		}
	case Float:
		if f.Width != 4 && f.Width != 8 {
			return fmt.Errorf("%w: field %q: float width must be 4 or 8, got %d",
				ErrInvalidLayout, f.Name, f.Width)
		}
	case Bytes:
	default:
		return fmt.Errorf("%w: field %q has unknown kind %d", ErrInvalidLayout, f.Name, f.Kind)
	}
	return nil
}

// typeName renders the field's type the way a C header would declare it.
func (f FieldSpec) typeName() string {
	switch f.Kind {
	case Uint:
		return fmt.Sprintf("uint%d_t", f.Width*8)
	case Int:
		return fmt.Sprintf("int%d_t", f.Width*8)
	case Float:
		if f.Width == 8 {
			return "double"
		}
		return "float"
	default:
		return "uint8_t"
	}
}
