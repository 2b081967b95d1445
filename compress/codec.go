package compress

import (
	"bytes"
	"time"

	"github.com/arloliu/lzw/format"
	"github.com/arloliu/lzw/internal/pool"
)

// Compressor compresses a complete input held in memory.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a complete stream held in memory.
//
// Example:
//
//	codec, _ := NewLZWCodec()
//	originalData, err := codec.Decompress(compressed)
//	if err != nil {
//	    return fmt.Errorf("decompression failed: %w", err)
//	}
//
// Thread Safety: Decompressor implementations must be safe for concurrent use
// or document their thread safety requirements clearly.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original result.
	//
	// Error conditions:
	//   - Returns ErrCorruptStream if the header or a code is invalid
	//   - Returns ErrTruncatedStream if the input ends before the stream does
	//
	// A failed call returns a nil slice: partial output is never exposed.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats describes one compression or decompression run.
type CompressionStats struct {
	// MaxBits is the width ceiling of the stream
	MaxBits int

	// Policy is the reset policy the stream was written with. A Reader only
	// knows whether the adaptive flag was set and reports ResetOnFull otherwise.
	Policy format.ResetPolicy

	// OriginalSize is the size of the uncompressed data
	OriginalSize int64

	// CompressedSize is the size of the stream, header included
	CompressedSize int64

	// Codes is the number of codes in the stream, CLEAR codes included
	Codes int64

	// Clears is the number of resets, the end marker counted as one
	Clears int64

	// CompressionTimeNs is the time taken to compress the data
	CompressionTimeNs int64

	// DecompressionTimeNs is the time taken to decompress the data (if applicable)
	DecompressionTimeNs int64
}

// CompressionRatio returns the compression ratio (compressed size / original size).
//
// Values less than 1.0 indicate successful compression.
// Values greater than 1.0 indicate the stream grew, which is normal for tiny or
// random inputs.
//
// Returns:
//   - float64: Compression ratio (0.0 if original size is zero)
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage.
//
// Negative values mean the compressed stream is larger than the input.
func (s CompressionStats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return (1.0 - s.CompressionRatio()) * 100.0
}

// Duration returns the compression time, or the decompression time when only
// that one is set.
func (s CompressionStats) Duration() time.Duration {
	if s.CompressionTimeNs != 0 {
		return time.Duration(s.CompressionTimeNs)
	}

	return time.Duration(s.DecompressionTimeNs)
}

// LZWCodec is the buffered Codec. It holds only its configuration and is safe
// for concurrent use.
type LZWCodec struct {
	cfg config
}

var _ Codec = (*LZWCodec)(nil)

// NewLZWCodec creates a buffered codec.
//
// Parameters:
//   - opts: WithMaxBits and WithResetPolicy (used by Compress only; Decompress
//     takes its settings from the stream header)
//
// Returns:
//   - *LZWCodec: Codec instance
//   - error: The first option validation error
func NewLZWCodec(opts ...Option) (*LZWCodec, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &LZWCodec{cfg: cfg}, nil
}

// Compress compresses data into a complete stream.
func (c *LZWCodec) Compress(data []byte) ([]byte, error) {
	out, _, err := c.CompressWithStats(data)
	return out, err
}

// CompressWithStats compresses data and reports the run statistics.
func (c *LZWCodec) CompressWithStats(data []byte) ([]byte, CompressionStats, error) {
	buf := pool.GetStreamBuffer()
	defer pool.PutStreamBuffer(buf)

	w, err := newWriter(buf, c.cfg)
	if err != nil {
		return nil, CompressionStats{}, err
	}

	if _, err := w.Write(data); err != nil {
		return nil, CompressionStats{}, err
	}
	if err := w.Close(); err != nil {
		return nil, CompressionStats{}, err
	}

	return buf.Clone(), w.Stats(), nil
}

// Decompress decodes a complete stream. It returns nil and the error when the
// stream is corrupt or truncated.
func (c *LZWCodec) Decompress(data []byte) ([]byte, error) {
	out, _, err := c.DecompressWithStats(data)
	return out, err
}

// DecompressWithStats decodes a complete stream and reports the run statistics.
func (c *LZWCodec) DecompressWithStats(data []byte) ([]byte, CompressionStats, error) {
	r, err := NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, CompressionStats{}, err
	}

	buf := pool.GetStreamBuffer()
	defer pool.PutStreamBuffer(buf)

	if _, err := buf.ReadFrom(r); err != nil {
		return nil, CompressionStats{}, err
	}

	return buf.Clone(), r.Stats(), nil
}
