package bitstream

import (
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/lzw/errs"
)

// Unpacker reads variable-width codes from an io.ByteReader.
type Unpacker struct {
	r     io.ByteReader
	acc   uint64
	nbits uint
	read  int64
}

// NewUnpacker creates an Unpacker that reads from r.
func NewUnpacker(r io.ByteReader) *Unpacker {
	return &Unpacker{r: r}
}

// ReadCode reads the next code of the given width.
//
// At the end of input ReadCode returns io.EOF when the stream stopped on a clean
// boundary: no bits left, or fewer than 8 bits left that are all zero (padding).
// Any other leftover means a code was cut short and ErrTruncatedStream is returned.
func (u *Unpacker) ReadCode(width uint) (uint32, error) {
	if width == 0 || width > MaxWidth {
		return 0, fmt.Errorf("%w: %d", errs.ErrInvalidCodeWidth, width)
	}

	for u.nbits < width {
		b, err := u.r.ReadByte()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return 0, err
			}
			if u.AtPadding() {
				return 0, io.EOF
			}

			return 0, fmt.Errorf("%w: %d bits left, code needs %d", errs.ErrTruncatedStream, u.nbits, width)
		}

		u.read++
		u.acc |= uint64(b) << u.nbits
		u.nbits += 8
	}

	code := uint32(u.acc & (1<<width - 1)) //nolint: gosec
	u.acc >>= width
	u.nbits -= width

	return code, nil
}

// AtPadding reports whether the bits buffered but not yet consumed can only be
// end-of-stream padding.
func (u *Unpacker) AtPadding() bool {
	return u.nbits < 8 && u.acc == 0
}

// BytesRead returns the number of bytes consumed from the reader.
func (u *Unpacker) BytesRead() int64 {
	return u.read
}
