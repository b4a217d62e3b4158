package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/randusr/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve exposes the cache over the JSON HTTP API until the context is cancelled.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.openEngine()
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), cmd.Int("port"))
	router := server.NewRouter(engine, r.logger)

	r.writePlain("Serving users on http://%s\n", addr)
	for _, pattern := range router.Patterns() {
		r.writePlain("  %s\n", pattern)
	}
	return server.Serve(ctx, addr, router, r.logger)
}
