// Package bitstream packs variable-width codes into bytes and back.
//
// Codes are packed least-significant-bit first: the first code occupies the low
// bits of the first byte, and each following code continues at the next free bit.
// The width of each code is supplied by the caller on both sides; nothing in the
// stream marks a width change. The last partial byte is padded with zero bits.
//
// A Packer writes codes to an io.Writer through an internal buffer and must be
// flushed. An Unpacker reads codes from an io.ByteReader and tells a clean end of
// input (nothing left, or only zero padding) from a code that was cut short.
package bitstream

const (
	// MaxWidth is the widest code the accumulators can carry.
	MaxWidth = 32

	// flushThreshold is the number of buffered bytes that triggers a write.
	flushThreshold = 4096
)
