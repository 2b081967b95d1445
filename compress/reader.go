package compress

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/arloliu/lzw/errs"
	"github.com/arloliu/lzw/format"
	"github.com/arloliu/lzw/header"
	"github.com/arloliu/lzw/internal/bitstream"
	"github.com/arloliu/lzw/internal/dict"
)

// Reader decompresses an LZW stream.
//
// Bytes are delivered as soon as their code is decoded. When Read reports an
// error, every byte returned before it comes from a stream that turned out to be
// corrupt or truncated and must be discarded by the caller.
type Reader struct {
	hdr      header.Header
	table    *dict.DecodeTable
	unpacker *bitstream.Unpacker
	maxBits  int

	prev    uint32 // last code of the current generation
	hasPrev bool

	lastWasClear bool
	clearAllowed bool // the last CLEAR may be followed by more codes

	out []byte // decoded bytes of the last code
	pos int    // bytes of out already returned

	produced int64
	codes    int64
	clears   int64
	start    time.Time
	took     time.Duration

	done bool
	err  error
}

// NewReader reads the stream header from src and returns a Reader for the codes
// that follow it. src is wrapped in a bufio.Reader unless it is an io.ByteReader.
//
// Returns:
//   - *Reader: Reader positioned after the header
//   - error: ErrNilReader, ErrCorruptStream (bad header), ErrTruncatedStream
//     (input ends inside the header), or a read error from src
func NewReader(src io.Reader) (*Reader, error) {
	if src == nil {
		return nil, errs.ErrNilReader
	}

	br, ok := src.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(src)
	}

	start := time.Now()

	hdr, err := header.ReadFrom(br)
	if err != nil {
		return nil, err
	}

	table, err := dict.NewDecodeTable(hdr.MaxBits())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrCorruptStream, err)
	}

	return &Reader{
		hdr:      hdr,
		table:    table,
		unpacker: bitstream.NewUnpacker(br),
		maxBits:  hdr.MaxBits(),
		start:    start,
	}, nil
}

// Header returns the parsed stream header.
func (r *Reader) Header() header.Header {
	return r.hdr
}

// Read implements io.Reader. It returns io.EOF after the end marker, two CLEAR
// codes in a row, followed by nothing but zero padding.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	n := 0
	for n < len(p) {
		if r.pos < len(r.out) {
			c := copy(p[n:], r.out[r.pos:])
			r.pos += c
			n += c

			continue
		}

		if r.err != nil || r.done {
			break
		}

		if err := r.step(); err != nil {
			r.err = err
		}
	}

	if n > 0 {
		return n, nil
	}
	if r.err != nil {
		return 0, r.err
	}

	return 0, io.EOF
}

// Stats reports the work done so far. Sizes are final once Read returned io.EOF.
func (r *Reader) Stats() CompressionStats {
	took := r.took
	if !r.done {
		took = time.Since(r.start)
	}

	return CompressionStats{
		MaxBits:             r.maxBits,
		Policy:              policyOf(r.hdr),
		OriginalSize:        r.produced,
		CompressedSize:      header.Size + r.unpacker.BytesRead(),
		Codes:               r.codes,
		Clears:              r.clears,
		DecompressionTimeNs: took.Nanoseconds(),
	}
}

// step decodes one code into r.out.
func (r *Reader) step() error {
	width := readWidth(r.table.Next(), r.hasPrev, r.table.Limit(), r.maxBits)

	code, err := r.unpacker.ReadCode(width)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return err
		}

		return fmt.Errorf("%w: input ended before the end marker", errs.ErrTruncatedStream)
	}
	r.codes++

	if code == format.ClearCode {
		if r.lastWasClear {
			return r.finish()
		}

		r.clearAllowed = r.hdr.Adaptive() || r.table.Full()
		r.lastWasClear = true
		r.hasPrev = false
		r.clears++
		r.table.Reset()

		return nil
	}

	if r.lastWasClear && !r.clearAllowed {
		return fmt.Errorf("%w: clear code before the dictionary was full", errs.ErrCorruptStream)
	}
	r.lastWasClear = false

	r.out = r.out[:0]
	r.pos = 0

	switch {
	case r.table.Defined(code):
		r.out = r.table.Expand(code, r.out)
		if r.hasPrev && !r.table.Full() {
			if _, err := r.table.Add(r.prev, r.out[0]); err != nil {
				return err
			}
		}
	case code == r.table.Next() && r.hasPrev && !r.table.Full():
		// The code is the entry being defined right now: prev followed by its own first byte.
		r.out = r.table.Expand(r.prev, r.out)
		r.out = append(r.out, r.out[0])
		if _, err := r.table.Add(r.prev, r.out[0]); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: code %d is not defined (next %d)", errs.ErrCorruptStream, code, r.table.Next())
	}

	r.prev = code
	r.hasPrev = true
	r.produced += int64(len(r.out))

	return nil
}

// finish checks that nothing but zero padding follows the end marker.
func (r *Reader) finish() error {
	_, err := r.unpacker.ReadCode(codeWidth(format.FirstFreeCode, r.maxBits))
	switch {
	case errors.Is(err, io.EOF):
	case err == nil, errors.Is(err, errs.ErrTruncatedStream):
		return fmt.Errorf("%w: data after the end marker", errs.ErrCorruptStream)
	default:
		return err
	}

	r.done = true
	r.took = time.Since(r.start)

	return nil
}

func policyOf(h header.Header) format.ResetPolicy {
	if h.Adaptive() {
		return format.ResetOnRatioDrop
	}

	return format.ResetOnFull
}
