package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sammollineaux/three-trios/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Ctrl-C cancels the running game, including while waiting at the move prompt
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return cli.Execute(ctx)
}
