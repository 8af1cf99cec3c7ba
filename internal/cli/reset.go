package cli

import (
	"fmt"

	"github.com/adibhanna/startracker/internal/logger"
)

type ResetCmd struct {
	Yes bool `help:"Confirm deletion of all habits, entries and preferences."`
}

func (c *ResetCmd) Run(ctx *Context) error {
	if !c.Yes {
		return fmt.Errorf("refusing to reset without --yes")
	}
	if err := ctx.Store.ResetAllData(); err != nil {
		return err
	}
	ctx.Tracker.Reload()

	logger.Info("All data reset")
	fmt.Fprintln(ctx.Out, "All data reset.")
	return nil
}
