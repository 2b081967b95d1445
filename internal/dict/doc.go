// Package dict implements the adaptive LZW dictionary.
//
// Every learned entry is stored as a (parent code, appended byte) pair rather than
// as a full byte string, so memory stays proportional to the number of entries.
//
// Two tables share the same code assignment:
//   - EncodeTable maps (parent, symbol) to a code and answers the longest-prefix
//     question one byte at a time.
//   - DecodeTable maps a code back to its bytes by walking the parent chain.
//
// Codes 0..255 are the single-byte literals, code 256 is the CLEAR control code
// and learned entries start at 257. A table grows until it holds 1<<maxBits
// entries; Add on a full table returns errs.ErrDictionaryOverflow. Reset drops
// every learned entry and starts a new generation.
//
// Tables are not safe for concurrent use. Each stream owns its own table.
package dict

import "github.com/arloliu/lzw/format"

// NoParent is the parent code of the literal entries.
const NoParent = ^uint32(0)

// Entry describes one learned dictionary entry.
type Entry struct {
	Code   uint32 // code assigned to the entry
	Parent uint32 // code of the prefix the entry extends
	Symbol byte   // byte appended to the prefix
}

// Limit returns the number of codes available with the given width ceiling.
func Limit(maxBits int) uint32 {
	return uint32(1) << uint(maxBits) //nolint: gosec
}

func validMaxBits(maxBits int) bool {
	return maxBits >= format.MinCodeBits && maxBits <= format.MaxCodeBits
}
