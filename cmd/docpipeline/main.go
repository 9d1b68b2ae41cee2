package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"DocPipeline/internal/cli"
	"DocPipeline/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		logging.NewWithWriter(os.Stderr, "error").Error("command failed", "error", err)
		stop()
		os.Exit(1)
	}
}
