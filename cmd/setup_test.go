package main

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/randusr/internal/shared"
	tu "github.com/desertthunder/randusr/internal/testing"
)

func TestSetupCommands(t *testing.T) {
	t.Run("database creates config and migrates", func(t *testing.T) {
		runner, output, _ := setupRunner(t, tu.SingleUserJSON)
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := run(runner, "setup", "database", "--config", configPath); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		tu.AssertFileExists(t, configPath)
		if !strings.Contains(output.String(), "Database ready") {
			t.Errorf("unexpected output %q", output.String())
		}

		states, err := shared.MigrationStatus(runner.db)
		if err != nil {
			t.Fatalf("failed to read status: %v", err)
		}
		for _, s := range states {
			if !s.Applied {
				t.Errorf("expected migration %d to be applied", s.Version)
			}
		}
	})

	t.Run("database opens configured path", func(t *testing.T) {
		dir := t.TempDir()
		config := shared.DefaultConfig()
		config.Database.Path = filepath.Join(dir, "randusr.db")
		runner := NewRunner(RunnerOpts{Config: config, Logger: shared.NewLogger(io.Discard), Output: io.Discard})

		// missing config flag path falls back to the runner config
		if err := run(runner, "setup", "status", "--config", ""); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		tu.AssertFileExists(t, config.Database.Path)
	})

	t.Run("status and rollback", func(t *testing.T) {
		runner, output, _ := setupRunner(t, tu.SingleUserJSON)
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := run(runner, "setup", "database", "--config", configPath); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
		output.Reset()

		if err := run(runner, "setup", "status", "--config", configPath); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "[✓] 0000") || !strings.Contains(output.String(), "[✓] 0001") {
			t.Errorf("expected all migrations applied, got:\n%s", output.String())
		}

		if err := run(runner, "setup", "rollback", "--config", configPath); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		output.Reset()

		if err := run(runner, "setup", "status", "--config", configPath); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "[✓] 0000") || !strings.Contains(output.String(), "[ ] 0001") {
			t.Errorf("expected latest migration rolled back, got:\n%s", output.String())
		}
	})
}
