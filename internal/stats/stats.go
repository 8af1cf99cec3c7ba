// Package stats turns the flat habit and entry collections into per-habit
// summaries for the review screen.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/adibhanna/startracker/internal/models"
)

// RecentLimit is the number of entries kept in MonthlyStats.RecentEntries.
const RecentLimit = 7

// Compute aggregates one MonthlyStats per habit, in habit order, for the
// given window evaluated at now.
func Compute(habits []models.Habit, entries []models.Entry, window models.Window, now time.Time) []models.MonthlyStats {
	if window == models.WindowAllTime {
		return AllTime(habits, entries, now)
	}
	return Monthly(habits, entries, now)
}

// Monthly aggregates over every calendar day of the month containing now.
// Entries match by string equality against the formatted days.
func Monthly(habits []models.Habit, entries []models.Entry, now time.Time) []models.MonthlyStats {
	days := MonthDays(now)
	daySet := make(map[string]struct{}, len(days))
	for _, d := range days {
		daySet[d] = struct{}{}
	}

	result := make([]models.MonthlyStats, 0, len(habits))
	for _, habit := range habits {
		var inWindow []models.Entry
		for _, entry := range entries {
			if entry.HabitID != habit.ID {
				continue
			}
			if _, ok := daySet[entry.Date]; ok {
				inWindow = append(inWindow, entry)
			}
		}
		result = append(result, summarize(habit, inWindow, len(days), entries))
	}
	return result
}

// AllTime aggregates every entry of each habit against the number of days
// since the habit was created. Entries are not filtered by date, so an entry
// dated before CreatedAt still counts.
func AllTime(habits []models.Habit, entries []models.Entry, now time.Time) []models.MonthlyStats {
	result := make([]models.MonthlyStats, 0, len(habits))
	for _, habit := range habits {
		var own []models.Entry
		for _, entry := range entries {
			if entry.HabitID == habit.ID {
				own = append(own, entry)
			}
		}
		result = append(result, summarize(habit, own, DaysSince(habit.CreatedAt, now), entries))
	}
	return result
}

func summarize(habit models.Habit, inWindow []models.Entry, totalDays int, all []models.Entry) models.MonthlyStats {
	completed := len(inWindow)
	totalStars := 0
	for _, entry := range inWindow {
		totalStars += entry.Stars
	}

	average := 0.0
	if completed > 0 {
		average = float64(totalStars) / float64(completed)
	}

	return models.MonthlyStats{
		HabitID:        habit.ID,
		HabitName:      habit.Name,
		TotalDays:      totalDays,
		CompletedDays:  completed,
		AverageStars:   average,
		TotalStars:     totalStars,
		CompletionRate: float64(completed) / float64(totalDays) * 100,
		RecentEntries:  Recent(all, habit.ID, RecentLimit),
	}
}

// MonthDays lists every day of the month containing now, formatted with
// models.DateFormat, first to last.
func MonthDays(now time.Time) []string {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)

	days := make([]string, 0, last.Day())
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(models.DateFormat))
	}
	return days
}

// DaysSince returns ceil((now - createdAt) / 24h) + 1. A creation time after
// now would give zero or a negative count; the result is clamped to 1 so the
// completion rate stays finite.
func DaysSince(createdAt, now time.Time) int {
	elapsed := float64(now.Sub(createdAt)) / float64(24*time.Hour)
	days := int(math.Ceil(elapsed)) + 1
	if days < 1 {
		return 1
	}
	return days
}

// Recent returns up to limit entries of the habit, newest date first.
// The fixed date layout makes string order chronological.
func Recent(entries []models.Entry, habitID string, limit int) []models.Entry {
	own := make([]models.Entry, 0, limit)
	for _, entry := range entries {
		if entry.HabitID == habitID {
			own = append(own, entry)
		}
	}
	sort.SliceStable(own, func(i, j int) bool {
		return own[i].Date > own[j].Date
	})
	if len(own) > limit {
		own = own[:limit]
	}
	return own
}
