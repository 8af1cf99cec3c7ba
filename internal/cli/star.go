package cli

import (
	"fmt"
)

type StarCmd struct {
	Ref   string `arg:"" help:"Habit name or ID."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)."`
	Stars int    `help:"Stars to record (0 or 1)." default:"1"`
}

func (c *StarCmd) Run(ctx *Context) error {
	habit, err := ctx.Tracker.FindHabit(c.Ref)
	if err != nil {
		return err
	}
	date, err := ctx.resolveDate(c.Date)
	if err != nil {
		return err
	}

	entry, err := ctx.Tracker.SetStars(habit.ID, date, c.Stars)
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "%s %s on %s\n", starGlyph(entry.Stars), habit.Name, date)
	return nil
}

type ToggleCmd struct {
	Ref  string `arg:"" help:"Habit name or ID."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *ToggleCmd) Run(ctx *Context) error {
	habit, err := ctx.Tracker.FindHabit(c.Ref)
	if err != nil {
		return err
	}
	date, err := ctx.resolveDate(c.Date)
	if err != nil {
		return err
	}

	entry, err := ctx.Tracker.ToggleStar(habit.ID, date)
	if err != nil {
		return err
	}

	if entry.Earned() {
		fmt.Fprintf(ctx.Out, "★ Star earned for %s on %s\n", habit.Name, date)
	} else {
		fmt.Fprintf(ctx.Out, "☆ Star cleared for %s on %s\n", habit.Name, date)
	}
	return nil
}
