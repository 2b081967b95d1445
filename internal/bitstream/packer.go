package bitstream

import (
	"fmt"
	"io"

	"github.com/arloliu/lzw/errs"
)

// Packer writes variable-width codes to an io.Writer.
type Packer struct {
	w       io.Writer
	acc     uint64 // pending bits, right-aligned
	nbits   uint   // number of valid bits in acc (always < 8 between calls)
	buf     []byte
	flushed int64
	err     error
}

// NewPacker creates a Packer that writes to w.
func NewPacker(w io.Writer) *Packer {
	return &Packer{
		w:   w,
		buf: make([]byte, 0, flushThreshold+8),
	}
}

// WriteCode appends code using exactly width bits.
//
// Returns ErrInvalidCodeWidth for a width outside 1..MaxWidth and ErrCodeTooWide
// when code has bits set above width. Write errors from the underlying writer are
// sticky: once one occurs every later call returns it.
func (p *Packer) WriteCode(code uint32, width uint) error {
	if p.err != nil {
		return p.err
	}
	if width == 0 || width > MaxWidth {
		return fmt.Errorf("%w: %d", errs.ErrInvalidCodeWidth, width)
	}
	if uint64(code)>>width != 0 {
		return fmt.Errorf("%w: code %d, width %d", errs.ErrCodeTooWide, code, width)
	}

	p.acc |= uint64(code) << p.nbits
	p.nbits += width

	for p.nbits >= 8 {
		p.buf = append(p.buf, byte(p.acc))
		p.acc >>= 8
		p.nbits -= 8
	}

	if len(p.buf) >= flushThreshold {
		return p.flushBuffer()
	}

	return nil
}

// Flush pads the pending partial byte with zero bits and writes every buffered byte.
// After Flush the packer is byte aligned and can keep accepting codes.
func (p *Packer) Flush() error {
	if p.err != nil {
		return p.err
	}

	if p.nbits > 0 {
		p.buf = append(p.buf, byte(p.acc))
		p.acc = 0
		p.nbits = 0
	}

	return p.flushBuffer()
}

// BytesWritten returns the number of complete bytes produced so far, flushed or not.
func (p *Packer) BytesWritten() int64 {
	return p.flushed + int64(len(p.buf))
}

func (p *Packer) flushBuffer() error {
	if len(p.buf) == 0 {
		return nil
	}

	n, err := p.w.Write(p.buf)
	p.flushed += int64(n)
	if err == nil && n < len(p.buf) {
		err = io.ErrShortWrite
	}
	if err != nil {
		p.err = err
		return err
	}

	p.buf = p.buf[:0]

	return nil
}
