package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pprehq/rawdb/pkg/codec"
)

func TestConfig_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rawdb.yaml")

	cfg := DefaultConfig()
	cfg.Port = 9999
	cfg.APIKey = "secret"
	cfg.Layouts = []string{"layouts/item.yaml"}

	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rawdb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 1234\n"), 0600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 1234, cfg.Port)
	assert.Equal(t, "127.0.0.1", cfg.Bind)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

const itemLayoutYAML = `
name: item
fields:
  - {name: id, kind: uint, width: 2}
  - {name: flag, kind: uint, width: 1}
  - {name: label, kind: bytes, width: 4}
  - {name: checksum, kind: uint, width: 4, order: big}
`

func TestParseLayout(t *testing.T) {
	layout, err := ParseLayout([]byte(itemLayoutYAML))
	require.NoError(t, err)

	assert.Equal(t, "item", layout.Name())
	assert.Equal(t, 11, layout.Size())

	f, ok := layout.Field("checksum")
	require.True(t, ok)
	assert.Equal(t, codec.BigEndian, f.Order)

	f, ok = layout.Field("id")
	require.True(t, ok)
	assert.Equal(t, codec.LittleEndian, f.Order)
}

func TestParseLayout_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{"no name", "fields:\n  - {name: a, kind: uint, width: 1}\n"},
		{"no fields", "name: empty\n"},
		{"unknown kind", "name: x\nfields:\n  - {name: a, kind: string, width: 1}\n"},
		{"unknown order", "name: x\nfields:\n  - {name: a, kind: uint, width: 1, order: middle}\n"},
		{"bad width", "name: x\nfields:\n  - {name: a, kind: uint, width: 3}\n"},
		{"not yaml", "{{{"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseLayout([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestRegistry(t *testing.T) {
	dir := t.TempDir()
	itemPath := filepath.Join(dir, "item.yaml")
	require.NoError(t, os.WriteFile(itemPath, []byte(itemLayoutYAML), 0600))

	reg, err := NewRegistry(itemPath)
	require.NoError(t, err)

	assert.Equal(t, []string{"item"}, reg.Names())

	layout, ok := reg.Get("item")
	require.True(t, ok)
	assert.Equal(t, "item", layout.Name())

	_, ok = reg.Get("missing")
	assert.False(t, ok)

	// The same layout name twice is an error.
	_, err = NewRegistry(itemPath, itemPath)
	assert.ErrorIs(t, err, codec.ErrInvalidLayout)
}
