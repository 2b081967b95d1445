// Command uncompress restores files compressed by compress.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/arloliu/lzw/internal/cli"
)

func main() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	os.Exit(cli.Main(context.Background(), cli.ModeDecompress, os.Args[1:], os.Stdout, os.Stderr, sigCh))
}
