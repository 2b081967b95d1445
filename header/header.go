// Package header reads and writes the 3-byte header that starts every ".Z" stream.
//
// Layout:
//
//	byte 0-1: magic 0x1F 0x9D
//	byte 2:   flag (see Flag)
package header

import (
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/lzw/errs"
	"github.com/arloliu/lzw/format"
)

// Header represents the fixed-size header of a compressed stream.
type Header struct {
	// Flag packs the width ceiling and the adaptive reset bit.
	Flag Flag
}

// New creates a header for the given width ceiling and reset policy.
func New(maxBits int, policy format.ResetPolicy) Header {
	return Header{Flag: NewFlag(maxBits, policy)}
}

// MaxBits returns the width ceiling of the stream.
func (h Header) MaxBits() int {
	return h.Flag.MaxBits()
}

// Adaptive reports whether the stream may carry CLEAR codes before the dictionary is full.
func (h Header) Adaptive() bool {
	return h.Flag.IsAdaptive()
}

// Bytes serializes the header.
func (h Header) Bytes() []byte {
	return []byte{Magic0, Magic1, byte(h.Flag)}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly Size bytes)
//
// Returns:
//   - error: ErrCorruptStream joined with the detail error, or ErrTruncatedStream
//     when data is a short prefix of a valid header
func (h *Header) Parse(data []byte) error {
	if len(data) != Size {
		return shortHeaderError(data)
	}

	if data[0] != Magic0 || data[1] != Magic1 {
		return fmt.Errorf("%w: %w: 0x%02x%02x", errs.ErrCorruptStream, errs.ErrInvalidMagic, data[0], data[1])
	}

	h.Flag = Flag(data[2])

	return h.Flag.Validate()
}

// ReadFrom reads and parses the header from r.
func ReadFrom(r io.ByteReader) (Header, error) {
	buf := make([]byte, 0, Size)
	for len(buf) < Size {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Header{}, shortHeaderError(buf)
			}

			return Header{}, err
		}
		buf = append(buf, b)
	}

	var h Header
	if err := h.Parse(buf); err != nil {
		return Header{}, err
	}

	return h, nil
}

// shortHeaderError reports a header that ended early. Input that still matches
// the magic prefix is truncated; anything else is not a .Z stream at all.
func shortHeaderError(data []byte) error {
	magic := []byte{Magic0, Magic1}
	for i, b := range data {
		if i >= len(magic) || b != magic[i] {
			return fmt.Errorf("%w: %w: %d bytes", errs.ErrCorruptStream, errs.ErrInvalidHeaderSize, len(data))
		}
	}

	return fmt.Errorf("%w: header has %d of %d bytes", errs.ErrTruncatedStream, len(data), Size)
}
