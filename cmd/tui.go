package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/studyous/internal/shared"
	"github.com/desertthunder/studyous/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive course browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.UI.LogPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	if err := r.init(); err != nil {
		return err
	}

	model := ui.NewModel(ctx, ui.Deps{
		Catalog:     r.catalog,
		Videos:      r.videos,
		Profiles:    r.profiles,
		Sessions:    r.auth,
		PanelHeight: r.config.UI.PanelHeight,
		OpenURL:     r.openURL,
		Logger:      fileLogger,
	})

	if _, err := tea.NewProgram(model, programOptions(ctx, r.config.UI)...).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

// programOptions builds the bubbletea options for cfg. Hovering result rows needs
// motion events without a pressed button, which only all-motion tracking reports.
func programOptions(ctx context.Context, cfg shared.UIConfig) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	return opts
}
