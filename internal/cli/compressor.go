package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/arloliu/lzw"
	"github.com/arloliu/lzw/compress"
	"github.com/arloliu/lzw/internal/hash"
)

// ErrVerifyFailed is returned when a freshly written .Z file does not decode
// back to its input.
var ErrVerifyFailed = errors.New("verification failed")

// compressFile compresses path into path.Z.
//
// The .Z file is kept only when it is smaller than the input, unless -f is set.
// The input is removed after a successful commit unless -k is set, and its
// permission bits are copied to the .Z file.
func (r *Runner) compressFile(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if strings.HasSuffix(path, lzw.Extension) && !r.cfg.Force {
		r.logger.Printf("'%s' already ends with %s, skipping it", path, lzw.Extension)
		r.printf("'%s' already has %s suffix -- unchanged\n", path, lzw.Extension)

		return nil
	}

	r.logger.Printf("compressing '%s' (%dB)", path, info.Size())

	if r.cfg.Stdout {
		_, err := r.compressTo(ctx, path, r.stdout)
		return err
	}

	out := path + lzw.Extension
	if exists(out) && !r.cfg.Force {
		return fmt.Errorf("'%s' already exists", out)
	}

	start := time.Now()

	tmp, err := createTemp(out)
	if err != nil {
		return err
	}
	defer tmp.abort()

	stats, err := r.compressTo(ctx, path, tmp.f)
	if err != nil {
		return err
	}
	if r.cfg.Verify {
		if err := verifyFile(ctx, tmp.f.Name(), stats.digest); err != nil {
			return err
		}
		r.logger.Printf("'%s' verified (xxh64 %016x)", out, stats.digest)
	}
	elapsed := time.Since(start)

	r.logger.Printf("'%s' compressed in %s, %dB -> %dB, %d codes, %d clears",
		path, elapsed, stats.OriginalSize, stats.CompressedSize, stats.Codes, stats.Clears)

	if stats.CompressedSize >= stats.OriginalSize && !r.cfg.Force {
		r.logger.Printf("'%s' is not smaller than '%s', removing it", out, path)
		r.printf("'%s' left uncompressed%s\n", path, r.timing(elapsed))

		return nil
	}

	if err := tmp.commit(info.Mode().Perm()); err != nil {
		return err
	}

	if !r.cfg.Keep {
		r.logger.Printf("removing '%s'", path)
		if err := os.Remove(path); err != nil {
			return err
		}
	}

	r.printf("'%s' compressed from %s to %s - space saved = %.1f%%%s\n",
		path, HumanSize(stats.OriginalSize), HumanSize(stats.CompressedSize),
		stats.SpaceSavings(), r.timing(elapsed))

	return nil
}

type fileStats struct {
	compress.CompressionStats

	digest uint64 // xxh64 of the input, set with -V
}

// compressTo streams the compressed content of path into dst.
func (r *Runner) compressTo(ctx context.Context, path string, dst io.Writer) (fileStats, error) {
	src, err := os.Open(path)
	if err != nil {
		return fileStats{}, err
	}
	defer src.Close()

	w, err := lzw.NewWriter(dst, lzw.WithMaxBits(r.cfg.MaxBits), lzw.WithResetPolicy(r.cfg.Policy))
	if err != nil {
		return fileStats{}, err
	}

	var in io.Reader = ctxReader{ctx: ctx, r: src}
	digest := hash.NewDigest()
	if r.cfg.Verify {
		in = io.TeeReader(in, digest)
	}

	if _, err := io.Copy(w, in); err != nil {
		return fileStats{}, err
	}
	if err := w.Close(); err != nil {
		return fileStats{}, err
	}

	return fileStats{CompressionStats: w.Stats(), digest: digest.Sum64()}, nil
}

// verifyFile decodes the stream in path and compares the digest of the output with want.
func verifyFile(ctx context.Context, path string, want uint64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rd, err := lzw.NewReader(ctxReader{ctx: ctx, r: f})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVerifyFailed, err)
	}

	digest := hash.NewDigest()
	if _, err := io.Copy(digest, rd); err != nil {
		return fmt.Errorf("%w: %w", ErrVerifyFailed, err)
	}

	if got := digest.Sum64(); got != want {
		return fmt.Errorf("%w: xxh64 %016x, want %016x", ErrVerifyFailed, got, want)
	}

	return nil
}
