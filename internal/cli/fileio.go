package cli

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// tempFile is an output file that only appears under its final name on commit.
type tempFile struct {
	f      *os.File
	target string
	done   bool
}

// createTemp creates a hidden temporary file next to target.
func createTemp(target string) (*tempFile, error) {
	f, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return nil, err
	}

	return &tempFile{f: f, target: target}, nil
}

// commit applies perm and renames the file over target.
func (t *tempFile) commit(perm fs.FileMode) error {
	if err := t.f.Chmod(perm); err != nil {
		t.abort()
		return err
	}
	if err := t.f.Close(); err != nil {
		t.abort()
		return err
	}
	if err := os.Rename(t.f.Name(), t.target); err != nil {
		t.abort()
		return err
	}
	t.done = true

	return nil
}

// abort removes the temporary file. It is a no-op after commit.
func (t *tempFile) abort() {
	if t.done {
		return
	}
	t.done = true

	_ = t.f.Close()
	_ = os.Remove(t.f.Name())
}

// ctxReader fails the next Read once ctx is done.
type ctxReader struct {
	ctx context.Context //nolint: containedctx
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}

	return c.r.Read(p)
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
