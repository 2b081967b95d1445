// Package cli implements the file-level compress and uncompress commands.
//
// A Runner expands the command-line paths into regular files and hands every
// file to its own job. Jobs share nothing but the output streams: each one
// builds its own codec, writes to its own temporary file and commits it with a
// rename, so a failed or cancelled job never leaves a partial output behind.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/lzw"
	"github.com/arloliu/lzw/errs"
	"github.com/arloliu/lzw/internal/collision"
)

// ErrFailed is returned by Run when at least one file could not be handled.
var ErrFailed = errors.New("some files failed")

// Runner handles the files of one command line.
type Runner struct {
	mode   Mode
	cfg    Config
	stdout io.Writer
	stderr io.Writer
	logger *log.Logger

	mu       sync.Mutex // guards the writers and failed
	failed   int
	lastFail error
}

// NewRunner creates a Runner. Verbose lines and -c output go to stdout, errors and
// the debug log (-d) go to stderr.
func NewRunner(mode Mode, cfg Config, stdout, stderr io.Writer) *Runner {
	logOut := io.Discard
	if cfg.Debug {
		logOut = stderr
	}

	tag := "[compressor] "
	if mode == ModeDecompress {
		tag = "[decompressor] "
	}

	return &Runner{
		mode:   mode,
		cfg:    cfg,
		stdout: stdout,
		stderr: stderr,
		logger: log.New(logOut, tag, log.LstdFlags|log.Lmicroseconds),
	}
}

// Run handles every file and directory of the configuration.
//
// Files are independent: a failure is reported on stderr and the run goes on
// with the next file. Run returns ErrFailed if any file failed, or the context
// error if ctx was cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Printf("mode=%s recursive=%t verbose=%t timings=%t keep=%t force=%t stdout=%t verify=%t jobs=%d files=%q",
		r.mode, r.cfg.Recursive, r.cfg.Verbose, r.cfg.Timings, r.cfg.Keep, r.cfg.Force,
		r.cfg.Stdout, r.cfg.Verify, r.cfg.Jobs, r.cfg.Files)

	tracker := collision.NewTracker()
	schedule := func(path string) {
		if err := tracker.Track(path, r.outputPath(path)); err != nil {
			if errors.Is(err, errs.ErrDuplicateInput) {
				r.logger.Printf("'%s' is already scheduled, skipping it", path)
				return
			}
			r.fail(path, err)
		}
	}

	// Every path is expanded before the first job starts, so a walk never sees
	// the temporary or output files of this run.
	for _, path := range r.cfg.Files {
		if ctx.Err() != nil {
			break
		}

		info, err := os.Stat(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			r.logger.Printf("'%s' does not exist, skipping it", path)
			r.printf("'%s' not found!\n", path)
			r.fail(path, err)
		case err != nil:
			r.fail(path, err)
		case info.IsDir():
			if !r.cfg.Recursive {
				r.logger.Printf("'%s' is a directory and -r is not set, skipping it", path)
				continue
			}
			if err := r.walk(ctx, path, schedule); err != nil {
				r.fail(path, err)
			}
		default:
			schedule(path)
		}
	}
	r.logger.Printf("%d files scheduled", tracker.Count())

	var g errgroup.Group
	g.SetLimit(r.cfg.Jobs)
	for _, path := range tracker.Inputs() {
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := r.handleFile(ctx, path); err != nil {
				r.fail(path, err)
			}

			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failed > 0 {
		return fmt.Errorf("%w: %d failed, last: %w", ErrFailed, r.failed, r.lastFail)
	}

	return nil
}

// walk schedules every regular file below root.
func (r *Runner) walk(ctx context.Context, root string, schedule func(string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			r.logger.Printf("visiting '%s'", path)
			return nil
		}
		if d.Type().IsRegular() {
			schedule(path)
		}

		return nil
	})
}

// outputPath returns the file a job for path writes. It is path itself when the
// job writes to stdout, rewrites the file in place or skips it.
func (r *Runner) outputPath(path string) string {
	if r.cfg.Stdout {
		return path
	}

	if r.mode == ModeDecompress {
		out, _ := strings.CutSuffix(path, lzw.Extension)
		return out
	}

	if strings.HasSuffix(path, lzw.Extension) && !r.cfg.Force {
		return path
	}

	return path + lzw.Extension
}

func (r *Runner) handleFile(ctx context.Context, path string) error {
	if r.mode == ModeDecompress {
		return r.decompressFile(ctx, path)
	}

	return r.compressFile(ctx, path)
}

// printf writes a verbose line.
func (r *Runner) printf(format string, args ...any) {
	if !r.cfg.Verbose {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.stdout, format, args...)
}

func (r *Runner) fail(path string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.failed++
	r.lastFail = err
	fmt.Fprintf(r.stderr, "%s: '%s': %v\n", r.mode, path, err)
}

// timing returns the suffix appended to verbose lines when -t is set.
func (r *Runner) timing(d time.Duration) string {
	if !r.cfg.Timings {
		return ""
	}

	return " (" + HumanDuration(d) + ")"
}
