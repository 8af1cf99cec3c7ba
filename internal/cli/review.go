package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/adibhanna/startracker/internal/models"
	"github.com/adibhanna/startracker/internal/stats"
)

type ReviewCmd struct {
	Window string `short:"w" help:"Review window (month|all). Defaults to the saved preference."`
	Sort   string `short:"s" help:"Sort order (performance|completion|name). Defaults to the saved preference."`
	Top    int    `help:"Only show the first N habits (0 shows all)." default:"0"`
	JSON   bool   `name:"json" help:"Print the statistics as JSON."`
}

func (c *ReviewCmd) Validate() error {
	if c.Window != "" && !models.Window(c.Window).Valid() {
		return fmt.Errorf("unknown window %q (expected month or all)", c.Window)
	}
	if c.Sort != "" && !models.SortBy(c.Sort).Valid() {
		return fmt.Errorf("unknown sort order %q (expected performance, completion or name)", c.Sort)
	}
	if c.Top < 0 {
		return fmt.Errorf("--top must not be negative")
	}
	return nil
}

func (c *ReviewCmd) Run(ctx *Context) error {
	config, err := ctx.Store.GetConfig()
	if err != nil {
		return err
	}
	window := windowOrDefault(c.Window, config)
	sortBy := config.SortBy
	if c.Sort != "" {
		sortBy = models.SortBy(c.Sort)
	}

	all := ctx.Tracker.Stats(window)
	sorted := stats.Sort(all, sortBy)
	if c.Top > 0 && len(sorted) > c.Top {
		sorted = sorted[:c.Top]
	}

	if c.JSON {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(sorted)
	}

	now := ctx.Tracker.Now()
	heading := window.Label()
	if window == models.WindowMonth {
		heading = fmt.Sprintf("%s (%s)", heading, now.Format("January 2006"))
	}
	fmt.Fprintln(ctx.Out, heading)
	fmt.Fprintln(ctx.Out, strings.Repeat("=", len(heading)))

	if len(all) == 0 {
		fmt.Fprintln(ctx.Out, "No habits yet.")
		return nil
	}

	summary := stats.Summarize(all)
	fmt.Fprintf(ctx.Out, "Completed days: %d  Average completion: %.1f%%\n\n",
		summary.CompletedDays, summary.AverageCompletionRate)

	for _, s := range sorted {
		fmt.Fprintf(ctx.Out, "%-24s %s %3d/%-3d %6.1f%%  avg %.2f\n",
			s.HabitName,
			bar(s.CompletionRate, 20),
			s.CompletedDays,
			s.TotalDays,
			s.CompletionRate,
			s.AverageStars,
		)
	}

	top := stats.TopPerformers(all, stats.TopPerformersLimit)
	fmt.Fprintln(ctx.Out, "\nTop performers:")
	for i, s := range top {
		fmt.Fprintf(ctx.Out, "  %d. %s (%.2f)\n", i+1, s.HabitName, s.AverageStars)
	}

	printAttention(ctx, stats.NeedsAttention(all))
	return nil
}

type AttentionCmd struct {
	Window string `short:"w" help:"Review window (month|all). Defaults to the saved preference."`
}

func (c *AttentionCmd) Validate() error {
	if c.Window != "" && !models.Window(c.Window).Valid() {
		return fmt.Errorf("unknown window %q (expected month or all)", c.Window)
	}
	return nil
}

func (c *AttentionCmd) Run(ctx *Context) error {
	config, err := ctx.Store.GetConfig()
	if err != nil {
		return err
	}
	printAttention(ctx, stats.NeedsAttention(ctx.Tracker.Stats(windowOrDefault(c.Window, config))))
	return nil
}

// windowOrDefault returns the window named by flag, or the saved one when the
// flag is unset.
func windowOrDefault(flag string, config models.Config) models.Window {
	if flag == "" {
		return config.ReviewWindow
	}
	return models.Window(flag)
}

func printAttention(ctx *Context, flagged []models.MonthlyStats) {
	fmt.Fprintln(ctx.Out, "\nNeeds attention:")
	if len(flagged) == 0 {
		fmt.Fprintln(ctx.Out, "  All habits on track")
		return
	}
	for _, s := range flagged {
		fmt.Fprintf(ctx.Out, "  %s missed its last two tracked days (%.2f avg)\n", s.HabitName, s.AverageStars)
	}
}

// bar renders a fixed-width completion bar. Rates above 100 fill the bar.
func bar(rate float64, width int) string {
	filled := int(rate / 100 * float64(width))
	filled = max(0, min(width, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
