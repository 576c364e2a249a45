// Package recordio streams fixed-size records between the codec and byte
// streams. A record file is nothing but back-to-back encoded records of one
// layout; callers that slice records out of a larger container do their own
// offset math and hand the codec each slice directly.
package recordio

import (
	"errors"

	"github.com/pprehq/rawdb/pkg/codec"
)

// ReaderConfig holds configuration for a file-backed record reader.
type ReaderConfig struct {
	FilePath    string // Path to the record file
	StartOffset int64  // Offset to start reading from
}

// WriterConfig holds configuration for a file-backed record writer.
type WriterConfig struct {
	FilePath   string // Path to the record file
	BufferSize int    // Write buffer size (0 = bufio default)
}

// Iterator provides streaming access to decoded records.
type Iterator interface {
	// Next advances to the next record, returning false at end of stream
	// or on error.
	Next() bool
	// Record returns the current record.
	Record() codec.Record
	// Err returns the error that stopped iteration, if any.
	Err() error
	// Close releases the underlying stream.
	Close() error
}

// ErrTruncated reports a partial record at the end of a stream.
var ErrTruncated = errors.New("truncated record at end of stream")
