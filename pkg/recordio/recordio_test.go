package recordio

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pprehq/rawdb/pkg/codec"
)

func testCodec(t *testing.T) *codec.RecordCodec {
	t.Helper()
	layout, err := codec.NewLayoutBuilder().
		AddUint16("id").
		AddUint8("flag").
		Build("item")
	require.NoError(t, err)
	return codec.NewRecordCodec(layout)
}

func testRecord(id uint64, flag uint64) codec.Record {
	return codec.Record{
		"id":   codec.UintValue(id),
		"flag": codec.UintValue(flag),
	}
}

func TestRecordWriterReader_RoundTrip(t *testing.T) {
	rc := testCodec(t)

	var buf bytes.Buffer
	w := NewRecordWriter(&buf, rc)
	for i := 0; i < 10; i++ {
		offset, err := w.Write(testRecord(uint64(i), uint64(i%3)))
		require.NoError(t, err)
		assert.Equal(t, int64(i*3), offset)
	}
	require.NoError(t, w.Flush())
	assert.Equal(t, 30, buf.Len())

	r := NewRecordReader(&buf, rc)
	for i := 0; i < 10; i++ {
		rec, err := r.ReadNext()
		require.NoError(t, err)
		assert.Equal(t, uint64(i), rec.Uint("id"))
		assert.Equal(t, uint64(i%3), rec.Uint("flag"))
	}
	_, err := r.ReadNext()
	assert.Equal(t, io.EOF, err)
}

func TestRecordReader_TruncatedStream(t *testing.T) {
	rc := testCodec(t)

	r := NewRecordReader(bytes.NewReader([]byte{0x01, 0x00, 0x05, 0x02}), rc)

	_, err := r.ReadNext()
	require.NoError(t, err)

	_, err = r.ReadNext()
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestRecordReader_Iterator(t *testing.T) {
	rc := testCodec(t)

	var buf bytes.Buffer
	w := NewRecordWriter(&buf, rc)
	for i := 0; i < 3; i++ {
		_, err := w.Write(testRecord(uint64(i), 0))
		require.NoError(t, err)
	}
	require.NoError(t, w.Flush())

	it := NewRecordReader(&buf, rc).Iterate()
	var ids []uint64
	for it.Next() {
		ids = append(ids, it.Record().Uint("id"))
	}
	require.NoError(t, it.Err())
	require.NoError(t, it.Close())
	assert.Equal(t, []uint64{0, 1, 2}, ids)
}

func TestRecordFile_RoundTrip(t *testing.T) {
	rc := testCodec(t)
	path := filepath.Join(t.TempDir(), "items.bin")

	w, err := OpenRecordWriter(WriterConfig{FilePath: path}, rc)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err := w.Write(testRecord(uint64(100+i), 1))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	// Start mid-file to check offset handling.
	r, err := OpenRecordReader(ReaderConfig{FilePath: path, StartOffset: 6}, rc)
	require.NoError(t, err)
	defer r.Close()

	rec, err := r.ReadNext()
	require.NoError(t, err)
	assert.Equal(t, uint64(102), rec.Uint("id"))
	assert.Equal(t, int64(9), r.Offset())
}
