package recordio

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/pprehq/rawdb/pkg/codec"
)

// RecordWriter appends encoded records to a stream.
type RecordWriter struct {
	writer *bufio.Writer
	codec  *codec.RecordCodec
	offset int64
	closer io.Closer
}

// NewRecordWriter creates a writer that encodes records to w using the
// given codec.
func NewRecordWriter(w io.Writer, rc *codec.RecordCodec) *RecordWriter {
	return &RecordWriter{
		writer: bufio.NewWriter(w),
		codec:  rc,
	}
}

// OpenRecordWriter creates or truncates a record file for writing.
func OpenRecordWriter(config WriterConfig, rc *codec.RecordCodec) (*RecordWriter, error) {
	if err := os.MkdirAll(filepath.Dir(config.FilePath), 0750); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, err
	}

	w := &RecordWriter{
		codec:  rc,
		closer: file,
	}
	if config.BufferSize > 0 {
		w.writer = bufio.NewWriterSize(file, config.BufferSize)
	} else {
		w.writer = bufio.NewWriter(file)
	}
	return w, nil
}

// Write encodes one record and appends it to the stream, returning its
// offset.
func (w *RecordWriter) Write(rec codec.Record) (int64, error) {
	data, err := w.codec.Encode(rec)
	if err != nil {
		return 0, err
	}

	offset := w.offset
	n, err := w.writer.Write(data)
	w.offset += int64(n)
	if err != nil {
		return 0, err
	}
	return offset, nil
}

// Offset returns the stream offset of the next record.
func (w *RecordWriter) Offset() int64 { return w.offset }

// Flush drains the write buffer to the underlying stream.
func (w *RecordWriter) Flush() error {
	return w.writer.Flush()
}

// Close flushes and closes the underlying file, if the writer owns one.
func (w *RecordWriter) Close() error {
	if err := w.Flush(); err != nil {
		return err
	}
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}
