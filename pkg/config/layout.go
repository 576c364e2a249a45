package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/pprehq/rawdb/pkg/codec"
)

// LayoutFile is the YAML form of a record layout:
//
//	name: item
//	fields:
//	  - {name: id, kind: uint, width: 2}
//	  - {name: flag, kind: uint, width: 1}
//	  - {name: label, kind: bytes, width: 8, order: big}
type LayoutFile struct {
	Name   string     `yaml:"name"`
	Fields []FieldDef `yaml:"fields"`
}

// FieldDef is one field of a layout file. Order defaults to little endian.
type FieldDef struct {
	Name  string `yaml:"name"`
	Kind  string `yaml:"kind"`
	Width int    `yaml:"width"`
	Order string `yaml:"order"`
}

// ParseLayout parses a YAML layout definition into a validated codec
// layout.
func ParseLayout(data []byte) (*codec.Layout, error) {
	var lf LayoutFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("failed to parse layout definition: %w", err)
	}
	if lf.Name == "" {
		return nil, fmt.Errorf("%w: layout definition has no name", codec.ErrInvalidLayout)
	}

	fields := make([]codec.FieldSpec, 0, len(lf.Fields))
	for _, fd := range lf.Fields {
		kind, err := parseKind(fd.Kind)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", fd.Name, err)
		}
		order, err := parseOrder(fd.Order)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", fd.Name, err)
		}
		fields = append(fields, codec.FieldSpec{
			Name:  fd.Name,
			Kind:  kind,
			Width: fd.Width,
			Order: order,
		})
	}

	return codec.NewLayout(lf.Name, fields)
}

// LoadLayout loads a layout definition from a YAML file.
func LoadLayout(path string) (*codec.Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file: %w", err)
	}
	layout, err := ParseLayout(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return layout, nil
}

func parseKind(s string) (codec.Kind, error) {
	switch s {
	case "uint":
		return codec.Uint, nil
	case "int":
		return codec.Int, nil
	case "float":
		return codec.Float, nil
	case "bytes":
		return codec.Bytes, nil
	}
	return 0, fmt.Errorf("%w: unknown kind %q", codec.ErrInvalidLayout, s)
}

func parseOrder(s string) (codec.ByteOrder, error) {
	switch s {
	case "", "little":
		return codec.LittleEndian, nil
	case "big":
		return codec.BigEndian, nil
	}
	return 0, fmt.Errorf("%w: unknown byte order %q", codec.ErrInvalidLayout, s)
}

// Registry holds named layouts loaded at startup. It is immutable after
// NewRegistry and safe for concurrent readers.
type Registry struct {
	layouts map[string]*codec.Layout
}

// NewRegistry loads every given layout file into a registry. Duplicate
// layout names across files are rejected.
func NewRegistry(paths ...string) (*Registry, error) {
	layouts := make([]*codec.Layout, 0, len(paths))
	for _, path := range paths {
		layout, err := LoadLayout(path)
		if err != nil {
			return nil, err
		}
		layouts = append(layouts, layout)
	}
	return NewRegistryFromLayouts(layouts...)
}

// NewRegistryFromLayouts builds a registry from already-constructed
// layouts.
func NewRegistryFromLayouts(layouts ...*codec.Layout) (*Registry, error) {
	r := &Registry{layouts: make(map[string]*codec.Layout, len(layouts))}
	for _, layout := range layouts {
		if _, dup := r.layouts[layout.Name()]; dup {
			return nil, fmt.Errorf("%w: layout %q defined twice", codec.ErrInvalidLayout, layout.Name())
		}
		r.layouts[layout.Name()] = layout
	}
	return r, nil
}

// Get looks a layout up by name.
func (r *Registry) Get(name string) (*codec.Layout, bool) {
	layout, ok := r.layouts[name]
	return layout, ok
}

// Names returns the registered layout names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.layouts))
	for name := range r.layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
