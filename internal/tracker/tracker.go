// Package tracker is the write path over the habit and entry collections.
// It keeps cached copies of both and persists every mutation immediately.
package tracker

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adibhanna/startracker/internal/logger"
	"github.com/adibhanna/startracker/internal/models"
	"github.com/adibhanna/startracker/internal/stats"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrEmptyName     = errors.New("habit name is required")
	ErrInvalidDate   = errors.New("date must use the yyyy-MM-dd format")
	ErrInvalidStars  = errors.New("stars must be 0 or 1")
)

// Store is the persistence the tracker needs. *storage.Storage satisfies it.
type Store interface {
	GetHabits() []models.Habit
	SaveHabits([]models.Habit) error
	GetEntries() []models.Entry
	SaveEntries([]models.Entry) error
}

type entryKey struct {
	habitID string
	date    string
}

type Tracker struct {
	store   Store
	habits  []models.Habit
	entries []models.Entry
	// index points at the first entry stored for each (habit, date) pair.
	index map[entryKey]int

	now   func() time.Time
	newID func() string
}

type Option func(*Tracker)

// WithClock replaces time.Now as the reference instant.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithIDs replaces the UUID generator.
func WithIDs(newID func() string) Option {
	return func(t *Tracker) { t.newID = newID }
}

func New(store Store, opts ...Option) *Tracker {
	t := &Tracker{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.Reload()
	return t
}

// Reload replaces the cached collections with the stored ones.
func (t *Tracker) Reload() {
	t.habits = t.store.GetHabits()
	t.entries = t.store.GetEntries()
	t.reindex()
	logger.Debug("Collections loaded", "habits", len(t.habits), "entries", len(t.entries))
}

func (t *Tracker) reindex() {
	t.index = make(map[entryKey]int, len(t.entries))
	for i, e := range t.entries {
		k := entryKey{e.HabitID, e.Date}
		if _, ok := t.index[k]; !ok {
			t.index[k] = i
		}
	}
}

func (t *Tracker) Now() time.Time {
	return t.now()
}

// Today is the current date in the entry date format.
func (t *Tracker) Today() string {
	return t.now().Format(models.DateFormat)
}

// Habits returns a copy of the habits in display order.
func (t *Tracker) Habits() []models.Habit {
	return slices.Clone(t.habits)
}

func (t *Tracker) Entries() []models.Entry {
	return slices.Clone(t.entries)
}

func (t *Tracker) Habit(id string) (models.Habit, error) {
	i := t.habitIndex(id)
	if i < 0 {
		return models.Habit{}, ErrHabitNotFound
	}
	return t.habits[i], nil
}

// FindHabit resolves ref as an ID, then as a case-insensitive name, then as
// an unambiguous ID prefix.
func (t *Tracker) FindHabit(ref string) (models.Habit, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Habit{}, ErrHabitNotFound
	}
	if h, err := t.Habit(ref); err == nil {
		return h, nil
	}
	for _, h := range t.habits {
		if strings.EqualFold(h.Name, ref) {
			return h, nil
		}
	}

	var matches []models.Habit
	for _, h := range t.habits {
		if strings.HasPrefix(h.ID, ref) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 0:
		return models.Habit{}, fmt.Errorf("%w: %q", ErrHabitNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return models.Habit{}, fmt.Errorf("%q matches %d habits", ref, len(matches))
	}
}

func (t *Tracker) AddHabit(in models.HabitInput) (models.Habit, error) {
	in, err := normalizeInput(in)
	if err != nil {
		return models.Habit{}, err
	}

	habit := models.Habit{
		ID:          t.newID(),
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
		Icon:        in.Icon,
		CreatedAt:   t.now(),
	}

	habits := append(slices.Clone(t.habits), habit)
	if err := t.saveHabits(habits); err != nil {
		return models.Habit{}, err
	}
	logger.Info("Habit added", "id", habit.ID, "name", habit.Name)
	return habit, nil
}

// EditHabit replaces the editable fields. ID and CreatedAt never change.
func (t *Tracker) EditHabit(id string, in models.HabitInput) (models.Habit, error) {
	i := t.habitIndex(id)
	if i < 0 {
		return models.Habit{}, ErrHabitNotFound
	}
	in, err := normalizeInput(in)
	if err != nil {
		return models.Habit{}, err
	}

	habits := slices.Clone(t.habits)
	habits[i].Name = in.Name
	habits[i].Description = in.Description
	habits[i].Color = in.Color
	habits[i].Icon = in.Icon
	if err := t.saveHabits(habits); err != nil {
		return models.Habit{}, err
	}
	return habits[i], nil
}

// DeleteHabit removes the habit and every entry that references it.
func (t *Tracker) DeleteHabit(id string) error {
	i := t.habitIndex(id)
	if i < 0 {
		return ErrHabitNotFound
	}

	habits := slices.Delete(slices.Clone(t.habits), i, i+1)
	entries := make([]models.Entry, 0, len(t.entries))
	for _, e := range t.entries {
		if e.HabitID != id {
			entries = append(entries, e)
		}
	}

	if err := t.saveHabits(habits); err != nil {
		return err
	}
	removed := len(t.entries) - len(entries)
	if err := t.saveEntries(entries); err != nil {
		return err
	}
	logger.Info("Habit deleted", "id", id, "entries", removed)
	return nil
}

// MoveHabit shifts a habit by delta positions, stopping at either end.
func (t *Tracker) MoveHabit(id string, delta int) error {
	i := t.habitIndex(id)
	if i < 0 {
		return ErrHabitNotFound
	}
	j := max(0, min(len(t.habits)-1, i+delta))
	if i == j {
		return nil
	}

	habits := slices.Clone(t.habits)
	h := habits[i]
	habits = slices.Delete(habits, i, i+1)
	habits = slices.Insert(habits, j, h)
	return t.saveHabits(habits)
}

// SetStars records the outcome for a habit on a date, replacing the stars of
// an existing entry for that pair instead of adding a second one.
func (t *Tracker) SetStars(habitID, date string, stars int) (models.Entry, error) {
	if t.habitIndex(habitID) < 0 {
		return models.Entry{}, ErrHabitNotFound
	}
	if err := ValidateDate(date); err != nil {
		return models.Entry{}, err
	}
	if stars != 0 && stars != 1 {
		return models.Entry{}, ErrInvalidStars
	}

	entries := slices.Clone(t.entries)
	var entry models.Entry
	if i, ok := t.index[entryKey{habitID, date}]; ok {
		entries[i].Stars = stars
		entry = entries[i]
	} else {
		entry = models.Entry{ID: t.newID(), HabitID: habitID, Date: date, Stars: stars}
		entries = append(entries, entry)
	}

	if err := t.saveEntries(entries); err != nil {
		return models.Entry{}, err
	}
	logger.Debug("Stars recorded", "habit", habitID, "date", date, "stars", stars)
	return entry, nil
}

// ToggleStar flips the star for a habit on a date. A missing entry counts as
// not earned.
func (t *Tracker) ToggleStar(habitID, date string) (models.Entry, error) {
	stars := 1
	if e, ok := t.EntryFor(habitID, date); ok && e.Earned() {
		stars = 0
	}
	return t.SetStars(habitID, date, stars)
}

func (t *Tracker) EntryFor(habitID, date string) (models.Entry, bool) {
	i, ok := t.index[entryKey{habitID, date}]
	if !ok {
		return models.Entry{}, false
	}
	return t.entries[i], true
}

// Stars returns the stars recorded for a habit on a date, 0 when absent.
func (t *Tracker) Stars(habitID, date string) int {
	e, _ := t.EntryFor(habitID, date)
	return e.Stars
}

func (t *Tracker) EntriesForDate(date string) []models.Entry {
	var out []models.Entry
	for _, e := range t.entries {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

func (t *Tracker) EntriesForHabit(habitID string) []models.Entry {
	var out []models.Entry
	for _, e := range t.entries {
		if e.HabitID == habitID {
			out = append(out, e)
		}
	}
	return out
}

// EarnedOn counts the habits with a star on date.
func (t *Tracker) EarnedOn(date string) int {
	n := 0
	for _, h := range t.habits {
		if t.Stars(h.ID, date) == 1 {
			n++
		}
	}
	return n
}

func (t *Tracker) MonthlyStats() []models.MonthlyStats {
	return stats.Monthly(t.habits, t.entries, t.now())
}

func (t *Tracker) AllTimeStats() []models.MonthlyStats {
	return stats.AllTime(t.habits, t.entries, t.now())
}

func (t *Tracker) Stats(window models.Window) []models.MonthlyStats {
	return stats.Compute(t.habits, t.entries, window, t.now())
}

// ValidateDate reports whether date is a real calendar day in the entry
// date format.
func ValidateDate(date string) error {
	parsed, err := time.Parse(models.DateFormat, date)
	if err != nil || parsed.Format(models.DateFormat) != date {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}

func normalizeInput(in models.HabitInput) (models.HabitInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, ErrEmptyName
	}
	in.Description = strings.TrimSpace(in.Description)
	if in.Color == "" {
		in.Color = models.DefaultColor
	}
	if in.Icon == "" {
		in.Icon = models.DefaultIcon
	}
	return in, nil
}

func (t *Tracker) habitIndex(id string) int {
	return slices.IndexFunc(t.habits, func(h models.Habit) bool { return h.ID == id })
}

func (t *Tracker) saveHabits(habits []models.Habit) error {
	if err := t.store.SaveHabits(habits); err != nil {
		logger.Error("Failed to save habits", "error", err)
		return fmt.Errorf("save habits: %w", err)
	}
	t.habits = habits
	return nil
}

func (t *Tracker) saveEntries(entries []models.Entry) error {
	if err := t.store.SaveEntries(entries); err != nil {
		logger.Error("Failed to save entries", "error", err)
		return fmt.Errorf("save entries: %w", err)
	}
	t.entries = entries
	t.reindex()
	return nil
}
