// Command compress replaces each file with an LZW-compressed ".Z" file.
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

	os.Exit(cli.Main(context.Background(), cli.ModeCompress, os.Args[1:], os.Stdout, os.Stderr, sigCh))
}
