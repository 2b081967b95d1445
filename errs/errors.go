// Package errs defines the error values shared by the lzw packages.
//
// Stream errors are reported through three kinds that callers match with errors.Is:
//   - ErrCorruptStream: the input is not a valid stream (bad header, undefined code, ...)
//   - ErrTruncatedStream: the input ends before the stream is complete
//   - ErrDictionaryOverflow: an entry was added to a full dictionary
//
// Header detail errors (ErrInvalidMagic, ErrInvalidMaxBits, ...) are always joined
// with ErrCorruptStream, so checking for the kind is enough in most call sites.
package errs

import "errors"

// Stream error kinds.
var (
	ErrCorruptStream      = errors.New("corrupt lzw stream")
	ErrTruncatedStream    = errors.New("truncated lzw stream")
	ErrDictionaryOverflow = errors.New("lzw dictionary overflow")
)

// Header errors.
var (
	ErrInvalidHeaderSize = errors.New("invalid header size")
	ErrInvalidMagic      = errors.New("invalid magic number")
	ErrInvalidMaxBits    = errors.New("invalid max code width")
	ErrReservedFlags     = errors.New("reserved flag bits set")
)

// API errors.
var (
	ErrInvalidResetPolicy = errors.New("invalid reset policy")
	ErrCodeTooWide        = errors.New("code does not fit in width")
	ErrInvalidCodeWidth   = errors.New("invalid code width")
	ErrWriterClosed       = errors.New("writer is closed")
	ErrNilReader          = errors.New("reader is nil")
	ErrNilWriter          = errors.New("writer is nil")
)

// File errors.
var (
	ErrDuplicateInput = errors.New("file given more than once")
	ErrPathCollision  = errors.New("file is both read and written by the same run")
)
