// Package format holds the constants and enums that describe an LZW ".Z" stream.
package format

// Dictionary layout.
const (
	AlphabetSize  = 256 // number of single-byte literal entries (codes 0..255)
	ClearCode     = 256 // control code that resets the dictionary; two in a row end the stream
	FirstFreeCode = 257 // first code assigned to a learned entry
)

// Code widths in bits.
const (
	MinCodeBits    = 9  // width of the first code of every generation
	MaxCodeBits    = 16 // largest supported width ceiling
	DefaultMaxBits = 16 // width ceiling used when none is configured
)

// RatioCheckGap is the number of input bytes between two compression ratio checks
// when the ResetOnRatioDrop policy is active.
const RatioCheckGap = 10000

// Extension is the file suffix of compressed files.
const Extension = ".Z"
