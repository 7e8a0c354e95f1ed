// Package tui implements the interactive country dashboard.
package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the dashboard until the user quits or ctx is cancelled.
func Run(ctx context.Context, load Loader, opts Options, programOpts ...tea.ProgramOption) error {
	m := NewDashboardModel(ctx, load, opts)

	programOpts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, programOpts...)
	final, err := tea.NewProgram(m, programOpts...).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running dashboard: %w", err)
	}

	if dm, ok := final.(DashboardModel); ok && dm.state == ViewStateError {
		return dm.err
	}
	return nil
}
