package cli

import (
	"fmt"
	"os"

	"github.com/adibhanna/startracker/internal/storage"
)

type ExportCmd struct {
	Output string `short:"o" help:"Write the report to this file instead of ~/Downloads."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	now := ctx.Tracker.Now()
	report := storage.ExportReport(
		ctx.Tracker.Habits(),
		ctx.Tracker.MonthlyStats(),
		ctx.Tracker.AllTimeStats(),
		now,
	)

	if c.Output == "-" {
		_, err := fmt.Fprint(ctx.Out, report)
		return err
	}

	path := c.Output
	if path == "" {
		var err error
		if path, err = storage.SaveReport(report, now); err != nil {
			return err
		}
	} else if err := os.WriteFile(path, []byte(report), 0644); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}

	fmt.Fprintf(ctx.Out, "Exported to %s\n", path)
	return nil
}
