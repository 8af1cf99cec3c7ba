package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/adibhanna/startracker/internal/cli"
	"github.com/adibhanna/startracker/internal/errors"
	"github.com/adibhanna/startracker/internal/logger"
	"github.com/adibhanna/startracker/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	DataDir string `help:"Directory holding habits, entries and logs." type:"path" default:"~/.startracker" env:"STARTRACKER_DATA_DIR"`
	Backend string `help:"Storage backend (json|sqlite)." enum:"json,sqlite" default:"json" env:"STARTRACKER_BACKEND"`
	Debug   bool   `help:"Enable debug logging." env:"STARTRACKER_DEBUG"`

	Tui       cli.TuiCmd       `cmd:"" help:"Launch the interactive tracker." default:"1"`
	Habit     cli.HabitCmd     `cmd:"" help:"Manage habits."`
	Star      cli.StarCmd      `cmd:"" help:"Record the star for a habit on a day."`
	Toggle    cli.ToggleCmd    `cmd:"" help:"Toggle the star for a habit on a day."`
	Review    cli.ReviewCmd    `cmd:"" help:"Show monthly or all-time statistics."`
	Attention cli.AttentionCmd `cmd:"" help:"List habits that need attention."`
	Export    cli.ExportCmd    `cmd:"" help:"Export a plain-text report."`
	Reset     cli.ResetCmd     `cmd:"" help:"Delete all habits, entries and preferences."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("startracker"),
		kong.Description("Track daily habits one star at a time."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Configuration(kong.JSON, "~/.startracker/config.json"),
		kong.Vars{"version": "v0.1.0"},
	)

	// The TUI owns the terminal, so debug output goes to the log file only.
	if err := logger.Init(logger.Config{
		Debug:   CLI.Debug,
		DataDir: CLI.DataDir,
		Quiet:   ctx.Command() == "tui",
	}); err != nil {
		errors.Fatal(fmt.Errorf("failed to initialize logger: %w", err))
	}

	store, err := storage.Open(CLI.DataDir, CLI.Backend)
	if err != nil {
		errors.Fatal(fmt.Errorf("failed to initialize storage: %w", err))
	}
	defer store.Close()

	logger.Debug("Running command", "command", ctx.Command())
	if err := ctx.Run(cli.NewContext(store)); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}
