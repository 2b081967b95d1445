// Package hash provides the content digests used to verify round trips.
package hash

import "github.com/cespare/xxhash/v2"

// Sum computes the xxHash64 of data.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// NewDigest returns a streaming xxHash64 digest. It implements io.Writer, so it can
// sit behind an io.TeeReader or io.MultiWriter while a file is being processed.
func NewDigest() *xxhash.Digest {
	return xxhash.New()
}
