package compress

import (
	"fmt"
	"io"
	"time"

	"github.com/arloliu/lzw/errs"
	"github.com/arloliu/lzw/format"
	"github.com/arloliu/lzw/header"
	"github.com/arloliu/lzw/internal/bitstream"
	"github.com/arloliu/lzw/internal/dict"
)

// Writer compresses everything written to it into an LZW stream.
//
// The header is written on the first Write or on Close, whichever comes first.
// Close must be called to emit the last code, the end marker and the padding;
// it does not close the underlying writer.
type Writer struct {
	dst    io.Writer
	cfg    config
	hdr    header.Header
	table  *dict.EncodeTable
	packer *bitstream.Packer

	prefix    uint32 // code of the longest match so far
	hasPrefix bool

	inCount    int64
	checkpoint int64  // input count of the next ratio check
	ratio      uint64 // ratio at the last check, 8.8 fixed point

	codes  int64
	clears int64
	start  time.Time
	took   time.Duration

	wroteHeader bool
	closed      bool
	err         error
}

// NewWriter creates a Writer that writes the compressed stream to dst.
//
// Parameters:
//   - dst: Destination of the compressed bytes
//   - opts: WithMaxBits and WithResetPolicy
//
// Returns:
//   - *Writer: Writer ready to accept input
//   - error: ErrNilWriter, or the first option validation error
func NewWriter(dst io.Writer, opts ...Option) (*Writer, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return newWriter(dst, cfg)
}

func newWriter(dst io.Writer, cfg config) (*Writer, error) {
	if dst == nil {
		return nil, errs.ErrNilWriter
	}

	table, err := dict.NewEncodeTable(cfg.maxBits)
	if err != nil {
		return nil, err
	}

	return &Writer{
		dst:        dst,
		cfg:        cfg,
		hdr:        header.New(cfg.maxBits, cfg.policy),
		table:      table,
		packer:     bitstream.NewPacker(dst),
		checkpoint: format.RatioCheckGap,
	}, nil
}

// Write compresses p. It returns the number of input bytes consumed, which is
// len(p) unless an error occurs. Errors are sticky.
func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, errs.ErrWriterClosed
	}
	if w.err != nil {
		return 0, w.err
	}
	if err := w.writeHeader(); err != nil {
		return 0, err
	}

	for i, b := range p {
		w.inCount++

		if !w.hasPrefix {
			w.prefix = uint32(b)
			w.hasPrefix = true

			continue
		}

		if code, ok := w.table.Lookup(w.prefix, b); ok {
			w.prefix = code
			continue
		}

		if err := w.emit(w.prefix); err != nil {
			return i, err
		}

		if !w.table.Full() {
			if _, err := w.table.Add(w.prefix, b); err != nil {
				w.err = err
				return i, err
			}
		} else if err := w.onFull(); err != nil {
			return i, err
		}

		w.prefix = uint32(b)
	}

	return len(p), nil
}

// Close emits the pending prefix and the end marker (two CLEAR codes), then flushes the padded
// last byte. Closing twice is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if w.err != nil {
		return w.err
	}
	if err := w.writeHeader(); err != nil {
		return err
	}

	if w.hasPrefix {
		if err := w.emit(w.prefix); err != nil {
			return err
		}
	}

	// The decoder learns one more entry from the last code than the encoder did,
	// so the first CLEAR uses the width the decoder will expect. The second one
	// follows an empty table. A CLEAR is never followed by another mid-stream,
	// so the pair marks the end.
	width := readWidth(w.table.Next(), w.hasPrefix, w.table.Limit(), w.cfg.maxBits)
	if err := w.writeCode(format.ClearCode, width); err != nil {
		return err
	}
	if err := w.writeCode(format.ClearCode, codeWidth(format.FirstFreeCode, w.cfg.maxBits)); err != nil {
		return err
	}
	w.clears++

	if err := w.packer.Flush(); err != nil {
		w.err = err
		return err
	}

	w.took = time.Since(w.start)

	return nil
}

// Stats reports the work done so far. Sizes are final after Close.
func (w *Writer) Stats() CompressionStats {
	var compressed int64
	if w.wroteHeader {
		compressed = header.Size + w.packer.BytesWritten()
	}

	return CompressionStats{
		MaxBits:           w.cfg.maxBits,
		Policy:            w.cfg.policy,
		OriginalSize:      w.inCount,
		CompressedSize:    compressed,
		Codes:             w.codes,
		Clears:            w.clears,
		CompressionTimeNs: w.took.Nanoseconds(),
	}
}

func (w *Writer) writeHeader() error {
	if w.wroteHeader {
		return nil
	}
	w.wroteHeader = true
	w.start = time.Now()

	n, err := w.dst.Write(w.hdr.Bytes())
	if err == nil && n < header.Size {
		err = io.ErrShortWrite
	}
	if err != nil {
		w.err = fmt.Errorf("write header: %w", err)
		return w.err
	}

	return nil
}

// emit writes code with the width of the current generation.
func (w *Writer) emit(code uint32) error {
	return w.writeCode(code, codeWidth(w.table.Next(), w.cfg.maxBits))
}

func (w *Writer) writeCode(code uint32, width uint) error {
	if err := w.packer.WriteCode(code, width); err != nil {
		w.err = err
		return err
	}
	w.codes++

	return nil
}

// onFull applies the reset policy when a new entry does not fit.
func (w *Writer) onFull() error {
	switch w.cfg.policy {
	case format.FreezeOnFull:
		return nil
	case format.ResetOnRatioDrop:
		if w.inCount < w.checkpoint {
			return nil
		}
		w.checkpoint = w.inCount + format.RatioCheckGap

		ratio := w.currentRatio()
		if ratio > w.ratio {
			w.ratio = ratio
			return nil
		}
		w.ratio = 0

		return w.emitClear()
	default:
		return w.emitClear()
	}
}

// currentRatio returns input/output so far in 8.8 fixed point.
func (w *Writer) currentRatio() uint64 {
	out := uint64(header.Size + w.packer.BytesWritten()) //nolint: gosec
	if out == 0 {
		out = 1
	}

	return uint64(w.inCount) << 8 / out //nolint: gosec
}

func (w *Writer) emitClear() error {
	if err := w.emit(format.ClearCode); err != nil {
		return err
	}
	w.clears++
	w.table.Reset()

	return nil
}
