// Package compress implements the LZW ".Z" stream codec.
//
// # Overview
//
// A stream is a 3-byte header followed by variable-width codes packed least
// significant bit first. Codes 0..255 stand for single bytes, code 256 (CLEAR)
// drops every learned entry, and codes from 257 upward refer to strings the
// encoder learned while reading its input. The decoder learns the same strings
// from the codes alone, so no dictionary travels with the data.
//
// The package offers two APIs:
//
//	// Streaming
//	w, _ := compress.NewWriter(dst, compress.WithMaxBits(12))
//	io.Copy(w, src)
//	w.Close()
//
//	r, _ := compress.NewReader(src)
//	io.Copy(dst, r)
//
//	// Buffered
//	codec, _ := compress.NewLZWCodec()
//	compressed, _ := codec.Compress(data)
//	original, _ := codec.Decompress(compressed)
//
// # Code Width
//
// Every generation starts at 9 bits. The encoder writes each code with the
// smallest width that can hold the next unassigned code, so the width becomes 10
// as soon as code 511 has been assigned, and so on up to the configured ceiling
// (WithMaxBits, 9..16). The decoder learns each entry one code later than the
// encoder and compensates by looking one code ahead.
//
// # Full Dictionary
//
// What happens once 1<<maxBits codes are assigned depends on the reset policy:
//
//   - format.ResetOnFull: emit CLEAR and start a new generation (default)
//   - format.FreezeOnFull: keep using the frozen dictionary until the end
//   - format.ResetOnRatioDrop: keep the frozen dictionary while the compression
//     ratio keeps improving, checked every format.RatioCheckGap input bytes, and
//     emit CLEAR when it stops improving
//
// # Termination
//
// Writer.Close always ends the stream with a CLEAR code followed by zero padding.
// A Reader treats end of input right after a CLEAR as the end of the stream and
// end of input anywhere else as errs.ErrTruncatedStream. A CLEAR that is followed
// by more codes is only valid when the dictionary was full or the header carries
// the adaptive flag; otherwise the stream is rejected with errs.ErrCorruptStream.
//
// # Thread Safety
//
// Writer and Reader are not safe for concurrent use. LZWCodec holds only its
// configuration and can be shared across goroutines; every call builds its own
// dictionary.
package compress
