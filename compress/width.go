package compress

import (
	"math/bits"

	"github.com/arloliu/lzw/format"
)

// codeWidth returns the width of a code written while next is the next
// unassigned code, clamped to [MinCodeBits, maxBits].
func codeWidth(next uint32, maxBits int) uint {
	w := bits.Len32(next)
	if w < format.MinCodeBits {
		return format.MinCodeBits
	}
	if w > maxBits {
		return uint(maxBits) //nolint: gosec
	}

	return uint(w)
}

// readWidth returns the width the decoder must use for its next code.
//
// While an entry is pending (a previous code exists in this generation and the
// table has room) the encoder is one entry ahead, so the decoder sizes the code
// as if that entry were already assigned.
func readWidth(next uint32, pending bool, limit uint32, maxBits int) uint {
	if pending && next < limit {
		return codeWidth(next+1, maxBits)
	}

	return codeWidth(next, maxBits)
}
