package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adibhanna/startracker/internal/ui/dashboard"
	"github.com/adibhanna/startracker/internal/ui/settings"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	// First run: pick review preferences before the dashboard opens.
	if ctx.Store.IsFirstTime() {
		fmt.Fprintln(ctx.Out, "*** Welcome to Star Tracker! ***")
		fmt.Fprintln(ctx.Out, "Let's set up your preferences...")

		if err := runSettings(ctx); err != nil {
			return err
		}
		fmt.Fprintln(ctx.Out, "[OK] Setup complete! Time to earn some stars!")
	}

	for {
		dashboardModel, err := dashboard.New(ctx.Tracker, ctx.Store)
		if err != nil {
			return err
		}

		p := tea.NewProgram(dashboardModel, tea.WithAltScreen())
		finalModel, err := p.Run()
		if err != nil {
			return err
		}

		dashboardModel = finalModel.(dashboard.Model)
		if dashboardModel.ShouldQuit() {
			fmt.Fprintln(ctx.Out, ">>> Keep shining!")
			return nil
		}

		if dashboardModel.ShouldOpenSettings() {
			if err := runSettings(ctx); err != nil {
				return err
			}
			continue
		}

		// Neither flag set means the program was interrupted.
		return nil
	}
}

func runSettings(ctx *Context) error {
	settingsModel, err := settings.New(ctx.Store)
	if err != nil {
		return err
	}

	p := tea.NewProgram(settingsModel, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if finalModel.(settings.Model).WasReset() {
		ctx.Tracker.Reload()
	}
	return nil
}
