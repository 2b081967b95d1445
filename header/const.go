package header

const (
	// Bit masks of the flag byte
	MaxBitsMask  = 0x1F // Mask for max code width (bits 0-4)
	ReservedMask = 0x60 // Mask for reserved bits (bits 5-6)
	AdaptiveMask = 0x80 // Mask for adaptive reset bit (bit 7)

	// Magic number bytes
	Magic0 = 0x1F
	Magic1 = 0x9D
)

// Size is the fixed header size in bytes.
const Size = 3
