// Package main is the entrypoint of JellyTube.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mralexsaavedra/jellytube/internal/cfg"
	"github.com/mralexsaavedra/jellytube/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cfg.InitCommands(); err != nil {
		logging.E("JellyTube exiting with error: %v", err)
		os.Exit(1)
	}

	if err := cfg.Execute(ctx); err != nil {
		logging.E("JellyTube exiting with error: %v", err)
		os.Exit(1)
	}

	logging.I("JellyTube exited cleanly")
}
