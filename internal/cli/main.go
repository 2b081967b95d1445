package cli

import (
	"context"
	"io"
	"os"
)

// Main runs one command line and returns the process exit status: 0 when every
// file was handled, 1 otherwise. The run is cancelled when sigCh delivers a signal.
func Main(ctx context.Context, mode Mode, args []string, stdout, stderr io.Writer, sigCh <-chan os.Signal) int {
	cfg, err := ParseArgs(mode, args, stderr)
	if err != nil {
		return 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := NewRunner(mode, cfg, stdout, stderr).Run(ctx); err != nil {
		return 1
	}

	return 0
}
