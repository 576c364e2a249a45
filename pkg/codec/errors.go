package codec

import "errors"

// Errors reported by layout construction and record conversion. Conversion
// failures wrap one of these with field context; test with errors.Is.
var (
	ErrSizeMismatch    = errors.New("buffer size does not match layout size")
	ErrMissingField    = errors.New("record is missing a declared field")
	ErrValueOutOfRange = errors.New("value does not fit the declared field width or kind")
	ErrDecode          = errors.New("bytes are not valid for the declared field kind")
	ErrInvalidLayout   = errors.New("invalid layout")
)
