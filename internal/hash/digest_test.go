package hash

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum(t *testing.T) {
	tests := []struct {
		name string
		data string
		sum  uint64
	}{
		{"empty", "", 0xef46db3751d8e999},
		{"short", "test", 0x4fdcca5ddb678139},
		{"long", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.sum, Sum([]byte(tt.data)))
		})
	}
}

func TestNewDigest_MatchesSum(t *testing.T) {
	data := strings.Repeat("TOBEORNOTTOBEORTOBEORNOT", 500)

	d := NewDigest()
	// Copy in small chunks to exercise the streaming path.
	_, err := io.CopyBuffer(d, struct{ io.Reader }{strings.NewReader(data)}, make([]byte, 7))
	require.NoError(t, err)

	assert.Equal(t, Sum([]byte(data)), d.Sum64())
}
