// Package collision detects jobs of one run that would touch the same file.
package collision

import (
	"fmt"
	"path/filepath"

	"github.com/arloliu/lzw/errs"
)

// Tracker records the input and output path of every scheduled job.
//
// Parallel jobs must never share a file: a file listed twice would be compressed
// twice, and a file that one job writes while another reads it (for example
// "a.Z" decompressing into "a" while "a" is decompressed in place) would be
// corrupted. Tracker is not safe for concurrent use; jobs are scheduled from a
// single goroutine.
type Tracker struct {
	owners map[string]string // cleaned path -> input of the job that claimed it
	inputs []string          // inputs in scheduling order
}

// NewTracker creates a new tracker.
func NewTracker() *Tracker {
	return &Tracker{
		owners: make(map[string]string),
		inputs: make([]string, 0),
	}
}

// Track claims input and output for one job. output may equal input for jobs
// that rewrite a file in place or write to standard output.
//
// Returns:
//   - ErrDuplicateInput: input was already tracked as an input
//   - ErrPathCollision: input or output is already claimed by another job
func (t *Tracker) Track(input, output string) error {
	in := filepath.Clean(input)
	out := filepath.Clean(output)

	if owner, exists := t.owners[in]; exists {
		if owner == in {
			return fmt.Errorf("%w: %s", errs.ErrDuplicateInput, input)
		}

		return fmt.Errorf("%w: %s is the output of %s", errs.ErrPathCollision, input, owner)
	}

	if owner, exists := t.owners[out]; exists && out != in {
		return fmt.Errorf("%w: %s is also claimed by %s", errs.ErrPathCollision, output, owner)
	}

	t.owners[in] = in
	t.owners[out] = in
	t.inputs = append(t.inputs, in)

	return nil
}

// Inputs returns the tracked inputs in the order Track accepted them.
func (t *Tracker) Inputs() []string {
	return t.inputs
}

// Count returns the number of tracked jobs.
func (t *Tracker) Count() int {
	return len(t.inputs)
}

// Reset forgets every tracked job.
func (t *Tracker) Reset() {
	clear(t.owners)
	t.inputs = t.inputs[:0]
}
