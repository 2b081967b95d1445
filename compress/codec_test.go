package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/lzw/errs"
	"github.com/arloliu/lzw/format"
	"github.com/arloliu/lzw/header"
	"github.com/arloliu/lzw/internal/bitstream"
	"github.com/arloliu/lzw/internal/dict"
)

var allPolicies = []format.ResetPolicy{format.ResetOnFull, format.FreezeOnFull, format.ResetOnRatioDrop}

func mustCodec(t *testing.T, opts ...Option) *LZWCodec {
	t.Helper()

	codec, err := NewLZWCodec(opts...)
	require.NoError(t, err)

	return codec
}

func TestWriter_TOBEORNOT(t *testing.T) {
	codec := mustCodec(t)

	compressed, err := codec.Compress([]byte("TOBEORNOTTOBEORTOBEORNOT"))
	require.NoError(t, err)
	require.Equal(t, []byte{header.Magic0, header.Magic1, 16}, compressed[:header.Size])

	want := []uint32{
		'T', 'O', 'B', 'E', 'O', 'R', 'N', 'O', 'T',
		257, 259, 261, 266, 260, 262, 264,
		format.ClearCode, format.ClearCode,
	}

	u := bitstream.NewUnpacker(bytes.NewReader(compressed[header.Size:]))
	got := make([]uint32, 0, len(want))
	for {
		code, err := u.ReadCode(9)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, code)
	}
	require.Equal(t, want, got)

	// 18 codes of 9 bits, padded to 21 bytes.
	require.Len(t, compressed, header.Size+21)

	decompressed, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, "TOBEORNOTTOBEORTOBEORNOT", string(decompressed))
}

func TestWriter_RepeatedByte(t *testing.T) {
	compressed, err := mustCodec(t).Compress([]byte("aaa"))
	require.NoError(t, err)

	want := buildStream(t, 16,
		testCode{'a', 9}, testCode{257, 9}, testCode{format.ClearCode, 9}, testCode{format.ClearCode, 9})
	require.Equal(t, want, compressed)
}

func TestWriter_EmptyInput(t *testing.T) {
	codec := mustCodec(t, WithMaxBits(12))

	compressed, stats, err := codec.CompressWithStats(nil)
	require.NoError(t, err)
	require.Equal(t, buildStream(t, 12, testCode{format.ClearCode, 9}, testCode{format.ClearCode, 9}), compressed)
	require.Equal(t, int64(0), stats.OriginalSize)
	require.Equal(t, int64(len(compressed)), stats.CompressedSize)
	require.Equal(t, int64(1), stats.Clears)

	decompressed, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Empty(t, decompressed)
}

func TestCodec_RoundTrip(t *testing.T) {
	all256 := make([]byte, 256)
	for i := range all256 {
		all256[i] = byte(i)
	}

	inputs := map[string][]byte{
		"single":  []byte("x"),
		"two":     []byte("xy"),
		"zeros":   generateTestData(100_000, "zeros"),
		"text":    generateTestData(70_000, "text"),
		"semi":    generateTestData(50_000, "semi"),
		"random":  generateTestData(40_000, "random"),
		"all256":  all256,
		"kwkwk":   bytes.Repeat([]byte("ab"), 5000),
		"longrun": bytes.Repeat([]byte{0xFF}, 300_000),
	}
	for _, policy := range allPolicies {
		for maxBits := format.MinCodeBits; maxBits <= format.MaxCodeBits; maxBits++ {
			codec := mustCodec(t, WithMaxBits(maxBits), WithResetPolicy(policy))
			for name, data := range inputs {
				t.Run(fmt.Sprintf("%s/%d/%s", policy, maxBits, name), func(t *testing.T) {
					compressed, err := codec.Compress(data)
					require.NoError(t, err)

					var h header.Header
					require.NoError(t, h.Parse(compressed[:header.Size]))
					require.Equal(t, maxBits, h.MaxBits())
					require.Equal(t, policy.Adaptive(), h.Adaptive())

					decompressed, err := codec.Decompress(compressed)
					require.NoError(t, err)
					require.Equal(t, data, decompressed)
				})
			}
		}
	}
}

func TestCodec_CompressesRedundantInput(t *testing.T) {
	data := generateTestData(64*1024, "text")

	compressed, stats, err := mustCodec(t).CompressWithStats(data)
	require.NoError(t, err)
	require.Less(t, len(compressed), len(data)/4)
	require.Equal(t, int64(len(data)), stats.OriginalSize)
	require.Equal(t, int64(len(compressed)), stats.CompressedSize)
	require.Greater(t, stats.SpaceSavings(), 75.0)
	require.Less(t, stats.CompressionRatio(), 0.25)
	require.Equal(t, format.ResetOnFull, stats.Policy)
	require.Equal(t, format.DefaultMaxBits, stats.MaxBits)
}

func TestCodec_DoubleCompression(t *testing.T) {
	codec := mustCodec(t, WithMaxBits(12))
	data := generateTestData(30_000, "semi")

	once, err := codec.Compress(data)
	require.NoError(t, err)
	twice, err := codec.Compress(once)
	require.NoError(t, err)

	back, err := codec.Decompress(twice)
	require.NoError(t, err)
	require.Equal(t, once, back)

	orig, err := codec.Decompress(back)
	require.NoError(t, err)
	require.Equal(t, data, orig)
}

func TestCodec_WidthGrowsPast511(t *testing.T) {
	// Random bytes learn one new entry per code, so the table passes 511 quickly.
	data := generateTestData(4000, "random")

	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)

	var maxCode uint32
	w.table.OnAdd = func(e dict.Entry) { maxCode = max(maxCode, e.Code) }

	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.Greater(t, maxCode, uint32(1024))

	decompressed, err := mustCodec(t).Decompress(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, data, decompressed)
}

func TestCodec_DictionaryLockStep(t *testing.T) {
	data := append(generateTestData(60_000, "text"), generateTestData(60_000, "random")...)

	for _, policy := range allPolicies {
		for _, maxBits := range []int{9, 10, 12, 16} {
			t.Run(fmt.Sprintf("%s/%d", policy, maxBits), func(t *testing.T) {
				var buf bytes.Buffer
				w, err := NewWriter(&buf, WithMaxBits(maxBits), WithResetPolicy(policy))
				require.NoError(t, err)

				var encEntries, decEntries []dict.Entry
				w.table.OnAdd = func(e dict.Entry) { encEntries = append(encEntries, e) }

				_, err = w.Write(data)
				require.NoError(t, err)
				require.NoError(t, w.Close())

				r, err := NewReader(bytes.NewReader(buf.Bytes()))
				require.NoError(t, err)
				r.table.OnAdd = func(e dict.Entry) { decEntries = append(decEntries, e) }

				out, err := io.ReadAll(r)
				require.NoError(t, err)
				require.Equal(t, data, out)

				// The decoder learns at most one trailing entry the encoder never needed.
				require.GreaterOrEqual(t, len(decEntries), len(encEntries))
				require.LessOrEqual(t, len(decEntries)-len(encEntries), 1)
				require.Equal(t, encEntries, decEntries[:len(encEntries)])
			})
		}
	}
}

func TestCodec_ResetPolicies(t *testing.T) {
	data := append(generateTestData(50_000, "text"), generateTestData(50_000, "random")...)

	clears := func(policy format.ResetPolicy) int64 {
		_, stats, err := mustCodec(t, WithMaxBits(9), WithResetPolicy(policy)).CompressWithStats(data)
		require.NoError(t, err)

		return stats.Clears
	}

	require.Equal(t, int64(1), clears(format.FreezeOnFull), "only the end marker")
	require.Greater(t, clears(format.ResetOnFull), int64(10))
	require.Greater(t, clears(format.ResetOnRatioDrop), int64(1))
	require.Less(t, clears(format.ResetOnRatioDrop), clears(format.ResetOnFull))
}

func TestDecompress_Truncated(t *testing.T) {
	codec := mustCodec(t)

	for _, kind := range []string{"zeros", "text", "semi", "random"} {
		for _, size := range []int{0, 1, 2, 100, 5000} {
			t.Run(fmt.Sprintf("%s/%d", kind, size), func(t *testing.T) {
				compressed, err := codec.Compress(generateTestData(size, kind))
				require.NoError(t, err)

				out, err := codec.Decompress(compressed[:len(compressed)-1])
				require.ErrorIs(t, err, errs.ErrTruncatedStream)
				require.Nil(t, out)
			})
		}
	}

	t.Run("inside header", func(t *testing.T) {
		for _, data := range [][]byte{nil, {header.Magic0}, {header.Magic0, header.Magic1}} {
			_, err := codec.Decompress(data)
			require.ErrorIs(t, err, errs.ErrTruncatedStream)
		}
	})

	t.Run("header only", func(t *testing.T) {
		_, err := codec.Decompress([]byte{header.Magic0, header.Magic1, 16})
		require.ErrorIs(t, err, errs.ErrTruncatedStream)
	})

	t.Run("missing end marker", func(t *testing.T) {
		_, err := codec.Decompress(buildStream(t, 16, testCode{'a', 9}, testCode{'b', 9}))
		require.ErrorIs(t, err, errs.ErrTruncatedStream)
	})

	t.Run("half an end marker", func(t *testing.T) {
		_, err := codec.Decompress(buildStream(t, 16, testCode{'a', 9}, testCode{'b', 9}, testCode{format.ClearCode, 9}))
		require.ErrorIs(t, err, errs.ErrTruncatedStream)
	})

	t.Run("after a mid-stream clear", func(t *testing.T) {
		stream := buildStream(t, 16|header.AdaptiveMask, testCode{'a', 9}, testCode{format.ClearCode, 9})
		_, err := codec.Decompress(stream)
		require.ErrorIs(t, err, errs.ErrTruncatedStream)
	})
}

// TestDecompress_EveryCut cuts multi-generation streams at every byte offset:
// no prefix of a stream may decode as a complete one.
func TestDecompress_EveryCut(t *testing.T) {
	tests := []struct {
		name   string
		policy format.ResetPolicy
		data   []byte
	}{
		{"reset on full", format.ResetOnFull, generateTestData(8000, "text")},
		{"freeze on full", format.FreezeOnFull, generateTestData(3000, "random")},
		{
			// Zeros push the ratio up, the random tail drops it and forces a reset.
			"reset on ratio drop",
			format.ResetOnRatioDrop,
			append(generateTestData(40_000, "zeros"), generateTestData(4000, "random")...),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec := mustCodec(t, WithMaxBits(9), WithResetPolicy(tt.policy))

			compressed, stats, err := codec.CompressWithStats(tt.data)
			require.NoError(t, err)
			if tt.policy != format.FreezeOnFull {
				require.Greater(t, stats.Clears, int64(1), "the stream needs a mid-stream clear")
			}

			for n := range len(compressed) {
				out, err := codec.Decompress(compressed[:n])
				require.ErrorIs(t, err, errs.ErrTruncatedStream, "cut at %d of %d", n, len(compressed))
				require.Nil(t, out)
			}

			out, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, tt.data, out)
		})
	}
}

func TestDecompress_DataAfterEndMarker(t *testing.T) {
	codec := mustCodec(t, WithMaxBits(9))
	data := generateTestData(5000, "text")

	compressed, err := codec.Compress(data)
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{"zero byte", append(bytes.Clone(compressed), 0x00)},
		{"garbage", append(bytes.Clone(compressed), 'a', 'b', 'c')},
		{"second stream", append(bytes.Clone(compressed), compressed...)},
		{
			"adaptive literal",
			buildStream(t, 9|header.AdaptiveMask,
				testCode{'a', 9}, testCode{format.ClearCode, 9}, testCode{format.ClearCode, 9}, testCode{'b', 9}),
		},
		{
			"third clear",
			buildStream(t, 16,
				testCode{'a', 9}, testCode{format.ClearCode, 9}, testCode{format.ClearCode, 9}, testCode{format.ClearCode, 9}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := codec.Decompress(tt.data)
			require.ErrorIs(t, err, errs.ErrCorruptStream)
			require.Nil(t, out)
		})
	}
}

func TestDecompress_Corrupt(t *testing.T) {
	codec := mustCodec(t)
	valid, err := codec.Compress([]byte("hello, hello, hello"))
	require.NoError(t, err)

	flip := func(i int, mask byte) []byte {
		b := bytes.Clone(valid)
		b[i] ^= mask
		return b
	}

	tests := []struct {
		name   string
		data   []byte
		detail error
	}{
		{"bad magic", flip(0, 0x01), errs.ErrInvalidMagic},
		{"bad second magic byte", flip(1, 0x80), errs.ErrInvalidMagic},
		{"not a stream", []byte("plain text"), errs.ErrInvalidMagic},
		{"short garbage", []byte{'x'}, errs.ErrInvalidHeaderSize},
		{"reserved bits", flip(2, 0x20), errs.ErrReservedFlags},
		{"max bits too small", buildStream(t, 8, testCode{format.ClearCode, 9}), errs.ErrInvalidMaxBits},
		{"max bits too large", buildStream(t, 17, testCode{format.ClearCode, 9}), errs.ErrInvalidMaxBits},
		{"undefined code", buildStream(t, 16, testCode{'a', 9}, testCode{300, 9}, testCode{format.ClearCode, 9}), nil},
		{"learned code first", buildStream(t, 16, testCode{257, 9}, testCode{format.ClearCode, 9}), nil},
		{
			"early clear",
			buildStream(t, 16, testCode{'a', 9}, testCode{format.ClearCode, 9}, testCode{'b', 9}, testCode{format.ClearCode, 9}),
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := codec.Decompress(tt.data)
			require.ErrorIs(t, err, errs.ErrCorruptStream)
			if tt.detail != nil {
				require.ErrorIs(t, err, tt.detail)
			}
			require.Nil(t, out)
		})
	}
}

func TestDecompress_AdaptiveFlagAllowsEarlyClear(t *testing.T) {
	stream := buildStream(t, 16|header.AdaptiveMask,
		testCode{'a', 9}, testCode{format.ClearCode, 9}, testCode{'b', 9},
		testCode{format.ClearCode, 9}, testCode{format.ClearCode, 9})

	out, stats, err := mustCodec(t).DecompressWithStats(stream)
	require.NoError(t, err)
	require.Equal(t, "ab", string(out))
	require.Equal(t, int64(2), stats.Clears)
	require.Equal(t, format.ResetOnRatioDrop, stats.Policy)
}

func TestStreaming_ChunkedWritesMatchBuffered(t *testing.T) {
	data := generateTestData(100_000, "semi")

	buffered, err := mustCodec(t, WithMaxBits(10)).Compress(data)
	require.NoError(t, err)

	var buf bytes.Buffer
	w, err := NewWriter(&buf, WithMaxBits(10))
	require.NoError(t, err)
	for chunk := range slices.Chunk(data, 777) {
		n, err := w.Write(chunk)
		require.NoError(t, err)
		require.Equal(t, len(chunk), n)
	}
	require.NoError(t, w.Close())
	require.Equal(t, buffered, buf.Bytes())

	stats := w.Stats()
	require.Equal(t, int64(len(data)), stats.OriginalSize)
	require.Equal(t, int64(buf.Len()), stats.CompressedSize)
}

func TestStreaming_SmallReads(t *testing.T) {
	data := generateTestData(20_000, "text")
	compressed, err := mustCodec(t).Compress(data)
	require.NoError(t, err)

	r, err := NewReader(iotest.OneByteReader(bytes.NewReader(compressed)))
	require.NoError(t, err)

	out, err := io.ReadAll(iotest.OneByteReader(r))
	require.NoError(t, err)
	require.Equal(t, data, out)

	stats := r.Stats()
	require.Equal(t, int64(len(data)), stats.OriginalSize)
	require.Equal(t, int64(len(compressed)), stats.CompressedSize)
	require.Equal(t, 16, r.Header().MaxBits())
}

func TestReader_ErrorIsSticky(t *testing.T) {
	compressed, err := mustCodec(t).Compress(generateTestData(1000, "random"))
	require.NoError(t, err)

	r, err := NewReader(bytes.NewReader(compressed[:len(compressed)-1]))
	require.NoError(t, err)

	_, err = io.ReadAll(r)
	require.ErrorIs(t, err, errs.ErrTruncatedStream)

	_, err = r.Read(make([]byte, 16))
	require.ErrorIs(t, err, errs.ErrTruncatedStream)
}

func TestWriter_Lifecycle(t *testing.T) {
	_, err := NewWriter(nil)
	require.ErrorIs(t, err, errs.ErrNilWriter)

	_, err = NewReader(nil)
	require.ErrorIs(t, err, errs.ErrNilReader)

	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)
	require.Zero(t, buf.Len(), "the header is written lazily")

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, err = w.Write([]byte("late"))
	require.ErrorIs(t, err, errs.ErrWriterClosed)
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestWriter_PropagatesWriteErrors(t *testing.T) {
	boom := errors.New("disk full")

	w, err := NewWriter(failingWriter{err: boom})
	require.NoError(t, err)

	_, err = w.Write([]byte("data"))
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, w.Close(), boom)
}

func TestOptions_Validation(t *testing.T) {
	for _, bits := range []int{0, 8, 17} {
		_, err := NewLZWCodec(WithMaxBits(bits))
		require.ErrorIs(t, err, errs.ErrInvalidMaxBits)

		_, err = NewWriter(io.Discard, WithMaxBits(bits))
		require.ErrorIs(t, err, errs.ErrInvalidMaxBits)
	}

	_, err := NewLZWCodec(WithResetPolicy(format.ResetPolicy(0)))
	require.ErrorIs(t, err, errs.ErrInvalidResetPolicy)

	_, err = NewLZWCodec(WithResetPolicy(format.ResetPolicy(9)))
	require.ErrorIs(t, err, errs.ErrInvalidResetPolicy)

	codec, err := NewLZWCodec(WithMaxBits(9), nil, WithResetPolicy(format.FreezeOnFull))
	require.NoError(t, err)
	require.Equal(t, config{maxBits: 9, policy: format.FreezeOnFull}, codec.cfg)
}

func TestCompressionStats(t *testing.T) {
	s := CompressionStats{OriginalSize: 1000, CompressedSize: 250, CompressionTimeNs: 5}
	require.InDelta(t, 0.25, s.CompressionRatio(), 1e-9)
	require.InDelta(t, 75.0, s.SpaceSavings(), 1e-9)
	require.Equal(t, int64(5), s.Duration().Nanoseconds())

	empty := CompressionStats{CompressedSize: 5}
	require.Zero(t, empty.CompressionRatio())
	require.Zero(t, empty.SpaceSavings())

	grown := CompressionStats{OriginalSize: 1, CompressedSize: 5, DecompressionTimeNs: 7}
	require.Less(t, grown.SpaceSavings(), 0.0)
	require.Equal(t, int64(7), grown.Duration().Nanoseconds())
}
