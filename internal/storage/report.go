package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adibhanna/startracker/internal/models"
	"github.com/adibhanna/startracker/internal/stats"
)

// ExportReport renders a plain-text summary of both review windows.
func ExportReport(habits []models.Habit, monthly, allTime []models.MonthlyStats, now time.Time) string {
	report := "Star Tracker - Habit Report\n"
	report += fmt.Sprintf("Generated: %s\n", now.Format("January 2, 2006 3:04 PM"))
	report += "=====================================\n\n"

	report += "OVERVIEW\n"
	report += "--------\n"
	report += fmt.Sprintf("Habits: %d\n", len(habits))
	if len(habits) == 0 {
		report += "\nNo habits yet.\n"
		return report
	}
	report += "\n"

	report += windowSection(fmt.Sprintf("THIS MONTH (%s)", now.Format("January 2006")), monthly)
	report += windowSection("ALL TIME", allTime)

	attention := stats.NeedsAttention(monthly)
	report += "NEEDS ATTENTION\n"
	report += "---------------\n"
	if len(attention) == 0 {
		report += "All habits on track\n"
	}
	for _, s := range attention {
		report += fmt.Sprintf("  %s (%.2f avg stars)\n", s.HabitName, s.AverageStars)
	}

	return report
}

func windowSection(title string, all []models.MonthlyStats) string {
	summary := stats.Summarize(all)

	section := title + "\n"
	section += strings.Repeat("-", len(title)) + "\n"
	section += fmt.Sprintf("Completed Days: %d\n", summary.CompletedDays)
	section += fmt.Sprintf("Average Completion: %.1f%%\n", summary.AverageCompletionRate)

	top := stats.TopPerformers(all, stats.TopPerformersLimit)
	if len(top) > 0 {
		section += "\nTop Performers:\n"
		for i, s := range top {
			section += fmt.Sprintf("  %d. %s (%.2f avg stars)\n", i+1, s.HabitName, s.AverageStars)
		}
	}

	section += "\nHabits:\n"
	for _, s := range stats.Sort(all, models.SortName) {
		section += fmt.Sprintf("  %s: %d/%d days (%.1f%%)\n", s.HabitName, s.CompletedDays, s.TotalDays, s.CompletionRate)
	}
	section += "\n"
	return section
}

// SaveReport writes report into ~/Downloads, falling back to the home
// directory when Downloads is missing. It returns the written path.
func SaveReport(report string, now time.Time) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return writeReport(homeDir, report, now)
}

func writeReport(homeDir, report string, now time.Time) (string, error) {
	filename := fmt.Sprintf("startracker-report-%s.txt", now.Format("2006-01-02-150405"))

	filePath := filepath.Join(homeDir, "Downloads", filename)
	if err := os.WriteFile(filePath, []byte(report), 0644); err != nil {
		filePath = filepath.Join(homeDir, filename)
		if err := os.WriteFile(filePath, []byte(report), 0644); err != nil {
			return "", fmt.Errorf("failed to save file: %w", err)
		}
	}
	return filePath, nil
}
