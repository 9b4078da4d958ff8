package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tunepool/tunepool/internal/shared"
	"github.com/tunepool/tunepool/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal browser over the track pool.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	p, err := r.poolByName(cmd.String("pool"))
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/tunepool-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ui.Opts{
		Ctx:        ctx,
		Pool:       p,
		Picker:     r.picker,
		Downloader: r.downloader,
		OutputDir:  r.outputDir(cmd),
	})

	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
