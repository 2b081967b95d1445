package compress

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/lzw/header"
	"github.com/arloliu/lzw/internal/bitstream"
)

// generateTestData creates inputs with different compressibility.
func generateTestData(size int, kind string) []byte {
	data := make([]byte, size)

	switch kind {
	case "zeros":
		// data already initialized to zeros
	case "text":
		pattern := []byte("TOBEORNOTTOBEORTOBEORNOT and the quick brown fox jumps over the lazy dog. ")
		for i := range data {
			data[i] = pattern[i%len(pattern)]
		}
	case "semi":
		rng := rand.New(rand.NewPCG(7, uint64(size))) //nolint: gosec
		for i := range data {
			if i%100 < 50 {
				data[i] = byte(i % 256)
			} else {
				data[i] = byte(rng.IntN(16))
			}
		}
	default:
		rng := rand.New(rand.NewPCG(42, uint64(size))) //nolint: gosec
		for i := range data {
			data[i] = byte(rng.Uint32())
		}
	}

	return data
}

type testCode struct {
	value uint32
	width uint
}

// buildStream assembles a stream from a raw flag byte and explicit codes.
func buildStream(t *testing.T, flag byte, codes ...testCode) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.Write([]byte{header.Magic0, header.Magic1, flag})

	p := bitstream.NewPacker(&buf)
	for _, c := range codes {
		require.NoError(t, p.WriteCode(c.value, c.width))
	}
	require.NoError(t, p.Flush())

	return buf.Bytes()
}
