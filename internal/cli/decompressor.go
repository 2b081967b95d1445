package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/arloliu/lzw"
)

// decompressFile restores path.Z into path.
//
// Files without the .Z suffix are skipped unless -f is set, in which case they
// are decompressed in place. A corrupt or truncated stream leaves no output file.
func (r *Runner) decompressFile(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	out, found := strings.CutSuffix(path, lzw.Extension)
	inPlace := !found
	if inPlace && !r.cfg.Force {
		r.logger.Printf("'%s' does not end with %s, skipping it", path, lzw.Extension)
		r.printf("'%s' skipped\n", path)

		return nil
	}
	if inPlace {
		r.logger.Printf("'%s' does not end with %s, handling it anyway (-f)", path, lzw.Extension)
	}

	r.logger.Printf("decompressing '%s' (%dB)", path, info.Size())

	if r.cfg.Stdout {
		return decompressTo(ctx, path, r.stdout)
	}

	if !inPlace && exists(out) && !r.cfg.Force {
		return fmt.Errorf("'%s' already exists", out)
	}

	start := time.Now()

	tmp, err := createTemp(out)
	if err != nil {
		return err
	}
	defer tmp.abort()

	if err := decompressTo(ctx, path, tmp.f); err != nil {
		return err
	}
	if err := tmp.commit(info.Mode().Perm()); err != nil {
		return err
	}
	elapsed := time.Since(start)

	r.logger.Printf("'%s' decompressed in %s", path, elapsed)

	if !inPlace && !r.cfg.Keep {
		r.logger.Printf("removing '%s'", path)
		if err := os.Remove(path); err != nil {
			return err
		}
	}

	r.printf("'%s' decompressed%s\n", path, r.timing(elapsed))

	return nil
}

// decompressTo streams the decoded content of path into dst.
func decompressTo(ctx context.Context, path string, dst io.Writer) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	rd, err := lzw.NewReader(ctxReader{ctx: ctx, r: src})
	if err != nil {
		return err
	}

	_, err = io.Copy(dst, rd)

	return err
}
