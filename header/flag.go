package header

import (
	"fmt"

	"github.com/arloliu/lzw/errs"
	"github.com/arloliu/lzw/format"
)

// Flag is the third header byte.
//
// Bit 0-4 hold the max code width (9..16).
// Bit 5-6 are reserved for future use, must be set to 0.
// Bit 7 is the adaptive reset flag: when set the stream may carry CLEAR codes
// before the dictionary is full.
type Flag uint8

// NewFlag creates a Flag for the given width ceiling and reset policy.
func NewFlag(maxBits int, policy format.ResetPolicy) Flag {
	f := Flag(uint8(maxBits) & MaxBitsMask) //nolint: gosec
	if policy.Adaptive() {
		f.WithAdaptive()
	}

	return f
}

// MaxBits returns the width ceiling stored in bits 0-4.
func (f Flag) MaxBits() int {
	return int(f & MaxBitsMask)
}

// IsAdaptive returns whether the adaptive reset bit is set.
func (f Flag) IsAdaptive() bool {
	return (f & AdaptiveMask) != 0
}

// WithAdaptive sets the adaptive reset bit.
func (f *Flag) WithAdaptive() {
	*f |= AdaptiveMask
}

// Validate checks the reserved bits and the width ceiling.
func (f Flag) Validate() error {
	if f&ReservedMask != 0 {
		return fmt.Errorf("%w: %w: 0x%02x", errs.ErrCorruptStream, errs.ErrReservedFlags, uint8(f))
	}

	if n := f.MaxBits(); n < format.MinCodeBits || n > format.MaxCodeBits {
		return fmt.Errorf("%w: %w: %d", errs.ErrCorruptStream, errs.ErrInvalidMaxBits, n)
	}

	return nil
}
