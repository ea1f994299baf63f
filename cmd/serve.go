package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/studyous/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the media server until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(r.config.Storage.Dir, 0o755); err != nil {
		return err
	}

	r.writePlain("Serving %s at %s/media/\n", r.config.Storage.Dir, r.config.Server.BaseURL())
	return server.New(r.config, r.logger).ListenAndServe(ctx)
}
