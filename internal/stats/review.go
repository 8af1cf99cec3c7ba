package stats

import (
	"math"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/adibhanna/startracker/internal/models"
)

const (
	TopPerformersLimit = 3
	Top10Limit         = 10
)

// Summary holds the totals shown under the review charts.
type Summary struct {
	CompletedDays         int
	AverageCompletionRate float64
}

// Sort returns a sorted copy of stats. Ties keep their input order.
func Sort(all []models.MonthlyStats, by models.SortBy) []models.MonthlyStats {
	sorted := make([]models.MonthlyStats, len(all))
	copy(sorted, all)

	switch by {
	case models.SortPerformance:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].AverageStars > sorted[j].AverageStars
		})
	case models.SortCompletion:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CompletionRate > sorted[j].CompletionRate
		})
	case models.SortName:
		c := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(sorted, func(i, j int) bool {
			return c.CompareString(sorted[i].HabitName, sorted[j].HabitName) < 0
		})
	}
	return sorted
}

// Display applies the chart type to sorted stats: top10 keeps the first ten,
// the other chart types keep everything.
func Display(all []models.MonthlyStats, chart models.ChartType, by models.SortBy) []models.MonthlyStats {
	sorted := Sort(all, by)
	if chart == models.ChartTop10 && len(sorted) > Top10Limit {
		sorted = sorted[:Top10Limit]
	}
	return sorted
}

// TopPerformers returns the n habits with the highest average stars.
func TopPerformers(all []models.MonthlyStats, n int) []models.MonthlyStats {
	sorted := Sort(all, models.SortPerformance)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Chart builds one bar per stats record. Colors come from the matching
// habit's palette index.
func Chart(all []models.MonthlyStats, habits []models.Habit) []models.ChartData {
	colors := make(map[string]string, len(habits))
	for _, h := range habits {
		colors[h.ID] = h.Color
	}

	data := make([]models.ChartData, 0, len(all))
	for _, s := range all {
		data = append(data, models.ChartData{
			Name:         s.HabitName,
			Completed:    s.CompletedDays,
			Missed:       s.TotalDays - s.CompletedDays,
			AverageStars: math.Round(s.AverageStars*100) / 100,
			Color:        models.ColorFor(colors[s.HabitID]).Hex,
		})
	}
	return data
}

func Summarize(all []models.MonthlyStats) Summary {
	var sum Summary
	if len(all) == 0 {
		return sum
	}

	rateTotal := 0.0
	for _, s := range all {
		sum.CompletedDays += s.CompletedDays
		rateTotal += s.CompletionRate
	}
	sum.AverageCompletionRate = rateTotal / float64(len(all))
	return sum
}
