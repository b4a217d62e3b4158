package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/randusr/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet makes a direct GET request to the random user API
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	compact := cmd.Bool("json")

	if r.api == nil {
		return fmt.Errorf("%w: API client not initialized", shared.ErrServiceUnavailable)
	}
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}

	r.logger.Info("GET request", "path", path)

	resp, err := r.api.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	r.logger.Debug("GET response", "status", resp.StatusCode, "elapsed", resp.Elapsed)
	if resp.Info != nil {
		r.logger.Info("batch info", "seed", resp.Info.Seed, "results", resp.Info.Results, "version", resp.Info.Version)
	}

	if !resp.OK() {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, !compact)
	}

	r.output.Write(resp.Body)
	r.output.Write([]byte("\n"))
	return nil
}
