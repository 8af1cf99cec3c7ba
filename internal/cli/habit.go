package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/adibhanna/startracker/internal/models"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit a habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and all of its entries."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Move   HabitMoveCmd   `cmd:"" help:"Move a habit up or down the list."`
}

type HabitAddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Description string `short:"d" help:"Optional description."`
	Color       string `short:"c" help:"Palette index (0-7)." default:"0"`
	Icon        string `short:"i" help:"Display icon." default:"💪"`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	habit, err := ctx.Tracker.AddHabit(models.HabitInput{
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		Icon:        c.Icon,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "Added habit: %s %s (%s)\n", habit.Icon, habit.Name, shortID(habit.ID))
	return nil
}

type HabitEditCmd struct {
	Ref         string  `arg:"" help:"Habit name or ID."`
	Name        *string `short:"n" help:"New name."`
	Description *string `short:"d" help:"New description."`
	Color       *string `short:"c" help:"New palette index (0-7)."`
	Icon        *string `short:"i" help:"New icon."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	habit, err := ctx.Tracker.FindHabit(c.Ref)
	if err != nil {
		return err
	}

	in := models.HabitInput{
		Name:        habit.Name,
		Description: habit.Description,
		Color:       habit.Color,
		Icon:        habit.Icon,
	}
	if c.Name != nil {
		in.Name = *c.Name
	}
	if c.Description != nil {
		in.Description = *c.Description
	}
	if c.Color != nil {
		in.Color = *c.Color
	}
	if c.Icon != nil {
		in.Icon = *c.Icon
	}

	updated, err := ctx.Tracker.EditHabit(habit.ID, in)
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "Updated habit: %s %s\n", updated.Icon, updated.Name)
	return nil
}

type HabitDeleteCmd struct {
	Ref string `arg:"" help:"Habit name or ID."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	habit, err := ctx.Tracker.FindHabit(c.Ref)
	if err != nil {
		return err
	}
	entries := len(ctx.Tracker.EntriesForHabit(habit.ID))

	if err := ctx.Tracker.DeleteHabit(habit.ID); err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "Deleted habit: %s (%d entries removed)\n", habit.Name, entries)
	return nil
}

type HabitListCmd struct {
	Date string `help:"Show stars for this date (YYYY-MM-DD, default today)."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	date, err := ctx.resolveDate(c.Date)
	if err != nil {
		return err
	}

	habits := ctx.Tracker.Habits()
	if len(habits) == 0 {
		fmt.Fprintln(ctx.Out, "No habits found.")
		return nil
	}

	for _, habit := range habits {
		swatch := lipgloss.NewStyle().
			Foreground(lipgloss.Color(models.ColorFor(habit.Color).Hex)).
			Render("●")
		fmt.Fprintf(ctx.Out, "%s %s %-24s %s  %s\n",
			starGlyph(ctx.Tracker.Stars(habit.ID, date)),
			swatch,
			habit.Icon+" "+habit.Name,
			shortID(habit.ID),
			habit.Description,
		)
	}
	return nil
}

type HabitMoveCmd struct {
	Ref string `arg:"" help:"Habit name or ID."`
	By  int    `help:"Positions to move; negative moves up (write --by=-1)." required:""`
}

func (c *HabitMoveCmd) Run(ctx *Context) error {
	habit, err := ctx.Tracker.FindHabit(c.Ref)
	if err != nil {
		return err
	}
	if err := ctx.Tracker.MoveHabit(habit.ID, c.By); err != nil {
		return err
	}

	for i, h := range ctx.Tracker.Habits() {
		fmt.Fprintf(ctx.Out, "%d. %s\n", i+1, h.Name)
	}
	return nil
}

func starGlyph(stars int) string {
	if stars == 1 {
		return "★"
	}
	return "☆"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
