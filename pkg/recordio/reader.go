package recordio

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pprehq/rawdb/pkg/codec"
)

// RecordReader provides sequential access to the records of a stream.
type RecordReader struct {
	reader *bufio.Reader
	codec  *codec.RecordCodec
	buf    []byte
	offset int64
	closer io.Closer
}

// NewRecordReader creates a reader that decodes consecutive records from r
// using the given codec.
func NewRecordReader(r io.Reader, rc *codec.RecordCodec) *RecordReader {
	return &RecordReader{
		reader: bufio.NewReader(r),
		codec:  rc,
		buf:    make([]byte, rc.Layout().Size()),
	}
}

// OpenRecordReader opens a record file for sequential reading.
func OpenRecordReader(config ReaderConfig, rc *codec.RecordCodec) (*RecordReader, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, err
	}

	if config.StartOffset > 0 {
		if _, err := file.Seek(config.StartOffset, io.SeekStart); err != nil {
			file.Close()
			return nil, err
		}
	}

	r := NewRecordReader(file, rc)
	r.offset = config.StartOffset
	r.closer = file
	return r, nil
}

// ReadNext reads and decodes the next record. It returns io.EOF at a clean
// record boundary and an error wrapping ErrTruncated if the stream ends in
// the middle of a record.
func (r *RecordReader) ReadNext() (codec.Record, error) {
	n, err := io.ReadFull(r.reader, r.buf)
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		if err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: %d of %d bytes at offset %d",
				ErrTruncated, n, len(r.buf), r.offset)
		}
		return nil, err
	}
	r.offset += int64(n)

	return r.codec.Decode(r.buf)
}

// Offset returns the stream offset of the next record.
func (r *RecordReader) Offset() int64 { return r.offset }

// Close closes the underlying file, if the reader owns one.
func (r *RecordReader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// Iterate returns an Iterator over the remaining records.
func (r *RecordReader) Iterate() Iterator {
	return &recordIterator{reader: r}
}

type recordIterator struct {
	reader *RecordReader
	rec    codec.Record
	err    error
}

func (it *recordIterator) Next() bool {
	if it.err != nil {
		return false
	}
	rec, err := it.reader.ReadNext()
	if err != nil {
		if err != io.EOF {
			it.err = err
		}
		return false
	}
	it.rec = rec
	return true
}

func (it *recordIterator) Record() codec.Record { return it.rec }

func (it *recordIterator) Err() error { return it.err }

func (it *recordIterator) Close() error { return it.reader.Close() }
