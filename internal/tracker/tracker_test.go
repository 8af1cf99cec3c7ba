package tracker

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/adibhanna/startracker/internal/models"
	"github.com/adibhanna/startracker/internal/storage"
)

var refNow = time.Date(2024, 7, 15, 20, 0, 0, 0, time.UTC)

func newTracker(t *testing.T) (*Tracker, *storage.Storage) {
	t.Helper()
	store, err := storage.Open(t.TempDir(), storage.BackendJSON)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	n := 0
	tr := New(store,
		WithClock(func() time.Time { return refNow }),
		WithIDs(func() string { n++; return fmt.Sprintf("id-%d", n) }),
	)
	return tr, store
}

func mustAdd(t *testing.T, tr *Tracker, name string) models.Habit {
	t.Helper()
	h, err := tr.AddHabit(models.HabitInput{Name: name})
	if err != nil {
		t.Fatalf("AddHabit(%q): %v", name, err)
	}
	return h
}

func TestAddHabitDefaults(t *testing.T) {
	tr, store := newTracker(t)

	h, err := tr.AddHabit(models.HabitInput{Name: "  Read  "})
	if err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	if h.Name != "Read" || h.Color != models.DefaultColor || h.Icon != models.DefaultIcon {
		t.Errorf("unexpected habit: %+v", h)
	}
	if !h.CreatedAt.Equal(refNow) {
		t.Errorf("CreatedAt = %v, want %v", h.CreatedAt, refNow)
	}
	if got := store.GetHabits(); len(got) != 1 || got[0].ID != h.ID {
		t.Errorf("habit not persisted: %+v", got)
	}

	if _, err := tr.AddHabit(models.HabitInput{Name: "   "}); !errors.Is(err, ErrEmptyName) {
		t.Errorf("blank name err = %v, want ErrEmptyName", err)
	}
}

func TestEditHabitKeepsIdentity(t *testing.T) {
	tr, _ := newTracker(t)
	h := mustAdd(t, tr, "Run")

	edited, err := tr.EditHabit(h.ID, models.HabitInput{Name: "Jog", Description: "5k", Color: "4", Icon: "🏃"})
	if err != nil {
		t.Fatalf("EditHabit: %v", err)
	}
	if edited.ID != h.ID || !edited.CreatedAt.Equal(h.CreatedAt) {
		t.Errorf("identity changed: %+v", edited)
	}
	if edited.Name != "Jog" || edited.Color != "4" || edited.Icon != "🏃" {
		t.Errorf("fields not updated: %+v", edited)
	}

	if _, err := tr.EditHabit("missing", models.HabitInput{Name: "x"}); !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("err = %v, want ErrHabitNotFound", err)
	}
	if _, err := tr.EditHabit(h.ID, models.HabitInput{}); !errors.Is(err, ErrEmptyName) {
		t.Errorf("err = %v, want ErrEmptyName", err)
	}
}

func TestSetStarsUpserts(t *testing.T) {
	tr, store := newTracker(t)
	h := mustAdd(t, tr, "Read")

	first, err := tr.SetStars(h.ID, "2024-07-15", 1)
	if err != nil {
		t.Fatalf("SetStars: %v", err)
	}
	second, err := tr.SetStars(h.ID, "2024-07-15", 0)
	if err != nil {
		t.Fatalf("SetStars: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("upsert created a new entry: %s != %s", first.ID, second.ID)
	}
	entries := store.GetEntries()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].Stars != 0 {
		t.Errorf("stars = %d, want 0", entries[0].Stars)
	}
}

func TestSetStarsValidation(t *testing.T) {
	tr, _ := newTracker(t)
	h := mustAdd(t, tr, "Read")

	tests := []struct {
		name    string
		habitID string
		date    string
		stars   int
		want    error
	}{
		{"unknown habit", "nope", "2024-07-15", 1, ErrHabitNotFound},
		{"unpadded date", h.ID, "2024-7-5", 1, ErrInvalidDate},
		{"impossible date", h.ID, "2024-02-30", 1, ErrInvalidDate},
		{"garbage date", h.ID, "yesterday", 1, ErrInvalidDate},
		{"stars out of range", h.ID, "2024-07-15", 5, ErrInvalidStars},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tr.SetStars(tt.habitID, tt.date, tt.stars); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
	if n := len(tr.Entries()); n != 0 {
		t.Errorf("rejected writes stored %d entries", n)
	}
}

func TestToggleStar(t *testing.T) {
	tr, _ := newTracker(t)
	h := mustAdd(t, tr, "Read")

	for i, want := range []int{1, 0, 1} {
		e, err := tr.ToggleStar(h.ID, "2024-07-10")
		if err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
		if e.Stars != want {
			t.Errorf("toggle %d stars = %d, want %d", i, e.Stars, want)
		}
	}
	if n := len(tr.EntriesForHabit(h.ID)); n != 1 {
		t.Errorf("entries = %d, want 1", n)
	}
}

func TestDeleteHabitCascadesOnlyItsEntries(t *testing.T) {
	tr, store := newTracker(t)
	read := mustAdd(t, tr, "Read")
	run := mustAdd(t, tr, "Run")

	for _, date := range []string{"2024-07-13", "2024-07-14", "2024-07-15"} {
		if _, err := tr.SetStars(read.ID, date, 1); err != nil {
			t.Fatal(err)
		}
		if _, err := tr.SetStars(run.ID, date, 0); err != nil {
			t.Fatal(err)
		}
	}

	if err := tr.DeleteHabit(read.ID); err != nil {
		t.Fatalf("DeleteHabit: %v", err)
	}

	entries := store.GetEntries()
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	for _, e := range entries {
		if e.HabitID != run.ID {
			t.Errorf("entry for %s survived delete", e.HabitID)
		}
	}
	if habits := store.GetHabits(); len(habits) != 1 || habits[0].ID != run.ID {
		t.Errorf("habits = %+v", habits)
	}
	if _, ok := tr.EntryFor(read.ID, "2024-07-15"); ok {
		t.Error("index still points at deleted entry")
	}
	if err := tr.DeleteHabit(read.ID); !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("second delete err = %v", err)
	}
}

func TestMoveHabit(t *testing.T) {
	tr, _ := newTracker(t)
	a := mustAdd(t, tr, "A")
	mustAdd(t, tr, "B")
	c := mustAdd(t, tr, "C")

	order := func() string {
		s := ""
		for _, h := range tr.Habits() {
			s += h.Name
		}
		return s
	}

	if err := tr.MoveHabit(a.ID, 1); err != nil {
		t.Fatal(err)
	}
	if got := order(); got != "BAC" {
		t.Errorf("after move down = %s, want BAC", got)
	}
	if err := tr.MoveHabit(c.ID, -10); err != nil {
		t.Fatal(err)
	}
	if got := order(); got != "CBA" {
		t.Errorf("after clamp to top = %s, want CBA", got)
	}
	if err := tr.MoveHabit(a.ID, 5); err != nil {
		t.Fatal(err)
	}
	if got := order(); got != "CBA" {
		t.Errorf("moving last habit down changed order: %s", got)
	}
}

func TestFindHabit(t *testing.T) {
	tr, _ := newTracker(t)
	read := mustAdd(t, tr, "Read")
	mustAdd(t, tr, "Run")

	tests := []struct {
		ref    string
		wantID string
		ok     bool
	}{
		{read.ID, read.ID, true},
		{"read", read.ID, true},
		{"  READ ", read.ID, true},
		{"id-2", "id-2", true},
		{"id-", "", false},
		{"walk", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			h, err := tr.FindHabit(tt.ref)
			if (err == nil) != tt.ok {
				t.Fatalf("FindHabit(%q) err = %v", tt.ref, err)
			}
			if tt.ok && h.ID != tt.wantID {
				t.Errorf("FindHabit(%q) = %s, want %s", tt.ref, h.ID, tt.wantID)
			}
		})
	}
}

func TestReloadRestoresPersistedState(t *testing.T) {
	tr, store := newTracker(t)
	h := mustAdd(t, tr, "Read")
	if _, err := tr.SetStars(h.ID, "2024-07-01", 1); err != nil {
		t.Fatal(err)
	}

	other := New(store, WithClock(func() time.Time { return refNow }))
	if got := other.Stars(h.ID, "2024-07-01"); got != 1 {
		t.Errorf("reopened stars = %d, want 1", got)
	}
	if got := other.EarnedOn("2024-07-01"); got != 1 {
		t.Errorf("EarnedOn = %d, want 1", got)
	}
	if got := len(other.EntriesForDate("2024-07-01")); got != 1 {
		t.Errorf("EntriesForDate = %d, want 1", got)
	}
}

func TestStatsUseInjectedClock(t *testing.T) {
	tr, _ := newTracker(t)
	h := mustAdd(t, tr, "Read")
	for _, date := range []string{"2024-06-30", "2024-07-01", "2024-07-02"} {
		if _, err := tr.SetStars(h.ID, date, 1); err != nil {
			t.Fatal(err)
		}
	}

	monthly := tr.MonthlyStats()
	if len(monthly) != 1 || monthly[0].CompletedDays != 2 || monthly[0].TotalDays != 31 {
		t.Errorf("monthly = %+v", monthly)
	}

	allTime := tr.Stats(models.WindowAllTime)
	if allTime[0].CompletedDays != 3 || allTime[0].TotalDays != 1 {
		t.Errorf("all time = %+v", allTime[0])
	}
}

type failingStore struct {
	Store
}

func (failingStore) SaveEntries([]models.Entry) error { return errors.New("disk full") }

func TestFailedSaveLeavesCacheUntouched(t *testing.T) {
	tr, store := newTracker(t)
	h := mustAdd(t, tr, "Read")

	tr.store = failingStore{Store: store}
	if _, err := tr.SetStars(h.ID, "2024-07-15", 1); err == nil {
		t.Fatal("expected save error")
	}
	if _, ok := tr.EntryFor(h.ID, "2024-07-15"); ok {
		t.Error("cache updated despite failed save")
	}
}
