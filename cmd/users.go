package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/randusr/internal/formatter"
	"github.com/desertthunder/randusr/internal/models"
	"github.com/desertthunder/randusr/internal/shared"
	"github.com/desertthunder/randusr/internal/tasks"
	"github.com/urfave/cli/v3"
)

// UsersFetch loads a new batch of users from the remote API, caches it and prints it.
func (r *Runner) UsersFetch(ctx context.Context, cmd *cli.Command) error {
	size := cmd.Int("size")
	asJSON := cmd.Bool("json")

	engine, err := r.openEngine()
	if err != nil {
		return err
	}

	r.logger.Info("fetching users", "size", size)

	progressCh := make(chan tasks.ProgressUpdate, 10)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			if asJSON {
				r.logger.Debug(update.Message, "phase", update.Phase)
				continue
			}
			switch update.Phase {
			case tasks.FetchUsers:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.SaveUsers:
				r.writePlain("💾 %s\n", update.Message)
			}
		}
	}()

	users, err := engine.FetchUsers(ctx, size, progressCh)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	if asJSON {
		return r.writeJSON(users, cmd.Bool("pretty"))
	}

	r.writePlain("\n")
	r.writeUsers(users)
	return nil
}

// UsersList prints the users of the most recent batch without fetching.
func (r *Runner) UsersList(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.openEngine()
	if err != nil {
		return err
	}

	users, err := engine.LoadCachedUsers(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(users, cmd.Bool("pretty"))
	}

	if len(users) == 0 {
		r.writePlain("No cached users. Run 'randusr users fetch --size N' first.\n")
		return nil
	}

	r.writeUsers(users)
	return nil
}

// UsersShow prints a cached user together with their address.
func (r *Runner) UsersShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: user id", shared.ErrMissingArgument)
	}

	engine, err := r.openEngine()
	if err != nil {
		return err
	}

	detail, err := engine.LoadUserDetail(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(detail, cmd.Bool("pretty"))
	}

	r.writeDetail(detail)
	return nil
}

// UsersExport writes every cached user with their address to a file in the requested format.
func (r *Runner) UsersExport(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	output := cmd.String("output")

	engine, err := r.openEngine()
	if err != nil {
		return err
	}

	details, err := engine.LoadCachedDetails(ctx)
	if err != nil {
		return err
	}
	if len(details) == 0 {
		return fmt.Errorf("%w: no cached users to export", shared.ErrInvalidInput)
	}

	path, err := formatter.WriteExport(details, format, output)
	if err != nil {
		return err
	}

	r.logger.Info("exported users", "format", format, "path", path, "count", len(details))
	r.writePlain("✓ Exported %s to %s\n", formatter.FormatCount(len(details), "user"), path)
	return nil
}

// UsersAvatars downloads the avatars of the most recent batch.
func (r *Runner) UsersAvatars(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.openEngine()
	if err != nil {
		return err
	}

	users, err := engine.LoadCachedUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		r.writePlain("No cached users. Run 'randusr users fetch --size N' first.\n")
		return nil
	}

	opts := tasks.AvatarSyncOpts{
		OutputDir:  cmd.String("dir"),
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate"),
		Client:     r.httpClient,
	}

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			r.writePlain("   [%d/%d] %s\n", update.Step, update.Total, update.Message)
		}
	}()

	result, err := engine.SyncAvatars(ctx, progressCh, users, opts)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Avatar Sync Complete")
	r.writePlain("Directory: %s\n", result.OutputDirectory)
	r.writePlain("Downloaded: %d/%d\n", result.Downloaded, result.Total)
	if result.Failed > 0 {
		r.writePlain("\nFailed downloads:\n")
		for _, res := range result.Results {
			if !res.Success {
				r.writePlain("  - %s: %s\n", res.UserID, res.Message)
			}
		}
	}
	r.writePlain("Manifest: %s\n", result.ManifestPath)
	return nil
}

func (r *Runner) writeUsers(users []models.User) {
	for i, u := range users {
		r.writePlain("%3d. %-28s %-36s %s\n", i+1, u.DisplayName(), u.Email, u.ID)
	}
	r.writePlainln("%s", formatter.FormatCount(len(users), "user"))
}

func (r *Runner) writeDetail(detail *models.UserDetail) {
	r.writePlainHeader(detail.User.DisplayName())
	r.writePlain("ID:       %s\n", detail.User.ID)
	r.writePlain("Email:    %s\n", detail.User.Email)
	r.writePlain("Address:  %s\n", detail.Address.String())
	r.writePlain("Birthday: %s\n", detail.User.FormattedBirthday())
	r.writePlain("Gender:   %s\n", detail.User.Gender)
	r.writePlain("Country:  %s (%s)\n", detail.Address.Country, detail.User.Nationality)
	r.writePlain("Avatar:   %s\n", detail.User.Thumbnail)
}
