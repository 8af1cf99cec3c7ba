package models

import (
	"time"
)

// DateFormat is the layout of Entry.Date. Every write and every match uses it.
const DateFormat = "2006-01-02"

type Habit struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"` // palette index, "0" to "7"
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Entry struct {
	ID      string `json:"id"`
	HabitID string `json:"habitId"`
	Date    string `json:"date"`  // YYYY-MM-DD format
	Stars   int    `json:"stars"` // 0 = not earned, 1 = earned
	Notes   string `json:"notes,omitempty"`
}

// Earned reports whether the entry carries a star.
func (e Entry) Earned() bool {
	return e.Stars == 1
}

// MonthlyStats is derived per habit per query window and never persisted.
type MonthlyStats struct {
	HabitID        string  `json:"habitId"`
	HabitName      string  `json:"habitName"`
	TotalDays      int     `json:"totalDays"`
	CompletedDays  int     `json:"completedDays"`
	AverageStars   float64 `json:"averageStars"`
	TotalStars     int     `json:"totalStars"`
	CompletionRate float64 `json:"completionRate"`
	RecentEntries  []Entry `json:"recentEntries"`
}

type ChartData struct {
	Name         string  `json:"name"`
	Completed    int     `json:"completed"`
	Missed       int     `json:"missed"`
	AverageStars float64 `json:"averageStars"`
	Color        string  `json:"color"`
}

// HabitInput carries the user-editable fields of a Habit.
type HabitInput struct {
	Name        string
	Description string
	Color       string
	Icon        string
}
