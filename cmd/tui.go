package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/randusr/internal/shared"
	"github.com/desertthunder/randusr/internal/ui"
	"github.com/urfave/cli/v3"
)

const tuiLogPath = "./tmp/randusr-tui.log"

// TUI launches the interactive terminal UI for browsing users.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.users == nil {
		return fmt.Errorf("%w: user source not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(tuiLogPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	fileLogger.SetLevel(r.logger.GetLevel())
	r.SetLogger(fileLogger)

	engine, err := r.openEngine()
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, engine)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
