// Package lzw compresses and decompresses data in the LZW ".Z" stream format.
//
// LZW replaces repeated byte strings with codes that index a dictionary both sides
// build as they go, so the dictionary never travels with the data. Codes start at
// 9 bits and widen up to a configurable ceiling of 9..16 bits.
//
// # Basic Usage
//
// Buffered:
//
//	compressed, err := lzw.Compress(data)
//	if err != nil {
//	    return err
//	}
//
//	original, err := lzw.Decompress(compressed)
//
// Streaming:
//
//	w, _ := lzw.NewWriter(dst, lzw.WithMaxBits(12))
//	if _, err := io.Copy(w, src); err != nil {
//	    return err
//	}
//	if err := w.Close(); err != nil {
//	    return err
//	}
//
//	r, _ := lzw.NewReader(compressedSrc)
//	io.Copy(dst, r)
//
// Errors are reported through the kinds in the errs package and matched with
// errors.Is: errs.ErrCorruptStream for input that is not a valid stream and
// errs.ErrTruncatedStream for input that ends early.
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the compress package.
// For statistics and the Codec interfaces, use the compress package directly.
package lzw

import (
	"io"

	"github.com/arloliu/lzw/compress"
	"github.com/arloliu/lzw/format"
)

// Extension is the file suffix of compressed files.
const Extension = format.Extension

// ResetPolicy selects what the encoder does once the dictionary is full.
type ResetPolicy = format.ResetPolicy

// Reset policies, see compress.WithResetPolicy.
const (
	ResetOnFull      = format.ResetOnFull
	FreezeOnFull     = format.FreezeOnFull
	ResetOnRatioDrop = format.ResetOnRatioDrop
)

// Option configures the encoder.
type Option = compress.Option

// WithMaxBits sets the width ceiling of the codes, from 9 to 16 bits (default 16).
func WithMaxBits(maxBits int) Option {
	return compress.WithMaxBits(maxBits)
}

// WithResetPolicy sets what the encoder does when the dictionary is full
// (default ResetOnFull).
func WithResetPolicy(policy ResetPolicy) Option {
	return compress.WithResetPolicy(policy)
}

// Compress compresses data into a complete stream.
//
// Parameters:
//   - data: Input bytes, may be empty
//   - opts: WithMaxBits and WithResetPolicy
//
// Returns:
//   - []byte: The stream, header and end marker included
//   - error: An option validation error
func Compress(data []byte, opts ...Option) ([]byte, error) {
	codec, err := compress.NewLZWCodec(opts...)
	if err != nil {
		return nil, err
	}

	return codec.Compress(data)
}

// Decompress decodes a complete stream.
//
// Returns nil and an error wrapping errs.ErrCorruptStream or errs.ErrTruncatedStream
// when data is not a complete, valid stream.
func Decompress(data []byte) ([]byte, error) {
	codec, err := compress.NewLZWCodec()
	if err != nil {
		return nil, err
	}

	return codec.Decompress(data)
}

// NewWriter returns a compress.Writer that writes a stream to w.
// The caller must Close it to complete the stream.
func NewWriter(w io.Writer, opts ...Option) (*compress.Writer, error) {
	return compress.NewWriter(w, opts...)
}

// NewReader reads the stream header from r and returns a compress.Reader for the
// rest of the stream.
func NewReader(r io.Reader) (*compress.Reader, error) {
	return compress.NewReader(r)
}
