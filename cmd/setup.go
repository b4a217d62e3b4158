package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/desertthunder/randusr/internal/shared"
	"github.com/urfave/cli/v3"
)

const defaultConfigPath = "config.toml"

// SetupDatabase creates config.toml from the template when missing, initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err != nil {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else {
			r.logger.Info("config file created", "path", configPath)
		}
	}

	config := r.loadConfig(configPath)
	r.logger.Info("initializing database", "path", config.Database.Path)

	db, release, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer release()

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	r.writePlain("✓ Database ready at %s\n", config.Database.Path)
	return nil
}

// SetupRollback reverts the most recently applied migration.
func (r *Runner) SetupRollback(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	db, release, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer release()

	if err := shared.RollbackMigration(db); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}

	r.logger.Info("rolled back migration", "path", config.Database.Path)
	r.writePlain("✓ Rolled back latest migration\n")
	return nil
}

// SetupStatus prints every known migration and whether it has been applied.
func (r *Runner) SetupStatus(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	db, release, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer release()

	states, err := shared.MigrationStatus(db)
	if err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}

	r.writePlainHeader("Migrations: " + config.Database.Path)
	for _, state := range states {
		mark := " "
		if state.Applied {
			mark = "✓"
		}
		r.writePlain("[%s] %04d %s\n", mark, state.Version, state.Name)
	}
	return nil
}

// loadConfig reads the config at path, falling back to the runner's config.
func (r *Runner) loadConfig(path string) *shared.Config {
	if path == "" {
		return r.config
	}
	if _, err := os.Stat(path); err != nil {
		return r.config
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config, using defaults", "error", err)
		return r.config
	}
	return config
}

// openDatabase returns the runner's injected database, or opens the one named by config.
//
// The release func closes only databases opened here.
func (r *Runner) openDatabase(config *shared.Config) (*sql.DB, func(), error) {
	if r.db != nil {
		return r.db, func() {}, nil
	}

	db, err := shared.OpenDatabase(config.Database.Path, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create database: %w", err)
	}
	return db, func() { db.Close() }, nil
}
