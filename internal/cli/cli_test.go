package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"

	"github.com/adibhanna/startracker/internal/models"
	"github.com/adibhanna/startracker/internal/storage"
	"github.com/adibhanna/startracker/internal/tracker"
)

var refNow = time.Date(2024, 7, 15, 9, 30, 0, 0, time.UTC)

func setupTestContext(t *testing.T) (*Context, *bytes.Buffer) {
	t.Helper()
	store, err := storage.Open(t.TempDir(), storage.BackendSQLite)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	n := 0
	ctx := NewContext(store,
		tracker.WithClock(func() time.Time { return refNow }),
		tracker.WithIDs(func() string { n++; return fmt.Sprintf("habit%04d-id", n) }),
	)
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out
}

func run(t *testing.T, ctx *Context, cmd interface{ Run(*Context) error }) {
	t.Helper()
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("%T failed: %v", cmd, err)
	}
}

func TestHabitAddAndList(t *testing.T) {
	ctx, out := setupTestContext(t)

	run(t, ctx, &HabitAddCmd{Name: "Read", Description: "20 pages", Color: "2", Icon: "📚"})
	if !strings.Contains(out.String(), "Added habit: 📚 Read (habit000)") {
		t.Errorf("unexpected add output: %q", out.String())
	}

	run(t, ctx, &StarCmd{Ref: "read", Stars: 1})
	out.Reset()

	run(t, ctx, &HabitListCmd{})
	if !strings.Contains(out.String(), "★") || !strings.Contains(out.String(), "20 pages") {
		t.Errorf("list output missing earned star or description: %q", out.String())
	}

	out.Reset()
	run(t, ctx, &HabitListCmd{Date: "2024-07-14"})
	if !strings.Contains(out.String(), "☆") {
		t.Errorf("expected empty star on another day: %q", out.String())
	}
}

func TestHabitListEmpty(t *testing.T) {
	ctx, out := setupTestContext(t)
	run(t, ctx, &HabitListCmd{})
	if strings.TrimSpace(out.String()) != "No habits found." {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestHabitAddRejectsBlankName(t *testing.T) {
	ctx, _ := setupTestContext(t)
	err := (&HabitAddCmd{Name: "   "}).Run(ctx)
	if !errors.Is(err, tracker.ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
}

func TestHabitEditKeepsUnsetFields(t *testing.T) {
	ctx, _ := setupTestContext(t)
	run(t, ctx, &HabitAddCmd{Name: "Run", Description: "5k", Color: "4", Icon: "🏃"})

	name := "Jog"
	run(t, ctx, &HabitEditCmd{Ref: "Run", Name: &name})

	habits := ctx.Tracker.Habits()
	if len(habits) != 1 {
		t.Fatalf("expected 1 habit, got %d", len(habits))
	}
	h := habits[0]
	if h.Name != "Jog" || h.Description != "5k" || h.Color != "4" || h.Icon != "🏃" {
		t.Errorf("unexpected habit after edit: %+v", h)
	}
}

func TestHabitDeleteRemovesEntries(t *testing.T) {
	ctx, out := setupTestContext(t)
	run(t, ctx, &HabitAddCmd{Name: "Stretch", Color: "0", Icon: "💪"})
	run(t, ctx, &StarCmd{Ref: "Stretch", Date: "2024-07-14", Stars: 1})
	run(t, ctx, &StarCmd{Ref: "Stretch", Date: "2024-07-15", Stars: 1})
	out.Reset()

	run(t, ctx, &HabitDeleteCmd{Ref: "stretch"})
	if !strings.Contains(out.String(), "2 entries removed") {
		t.Errorf("unexpected delete output: %q", out.String())
	}
	if len(ctx.Tracker.Entries()) != 0 {
		t.Errorf("entries left behind: %d", len(ctx.Tracker.Entries()))
	}

	err := (&HabitDeleteCmd{Ref: "stretch"}).Run(ctx)
	if !errors.Is(err, tracker.ErrHabitNotFound) {
		t.Errorf("expected ErrHabitNotFound, got %v", err)
	}
}

func TestHabitMove(t *testing.T) {
	ctx, out := setupTestContext(t)
	for _, name := range []string{"A", "B", "C"} {
		run(t, ctx, &HabitAddCmd{Name: name, Color: "0", Icon: "💪"})
	}
	out.Reset()

	run(t, ctx, &HabitMoveCmd{Ref: "C", By: -2})
	want := "1. C\n2. A\n3. B\n"
	if out.String() != want {
		t.Errorf("move output = %q, want %q", out.String(), want)
	}
}

func TestToggle(t *testing.T) {
	ctx, out := setupTestContext(t)
	run(t, ctx, &HabitAddCmd{Name: "Water", Color: "1", Icon: "💧"})
	out.Reset()

	run(t, ctx, &ToggleCmd{Ref: "water"})
	if !strings.Contains(out.String(), "Star earned for Water on 2024-07-15") {
		t.Errorf("unexpected toggle output: %q", out.String())
	}

	out.Reset()
	run(t, ctx, &ToggleCmd{Ref: "water"})
	if !strings.Contains(out.String(), "Star cleared") {
		t.Errorf("unexpected second toggle output: %q", out.String())
	}
	if got := ctx.Tracker.Stars("habit0001-id", "2024-07-15"); got != 0 {
		t.Errorf("stars = %d, want 0", got)
	}
}

func TestStarRejectsBadInput(t *testing.T) {
	ctx, _ := setupTestContext(t)
	run(t, ctx, &HabitAddCmd{Name: "Read", Color: "0", Icon: "💪"})

	if err := (&StarCmd{Ref: "Read", Date: "2024-02-30", Stars: 1}).Run(ctx); !errors.Is(err, tracker.ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
	if err := (&StarCmd{Ref: "Read", Stars: 3}).Run(ctx); !errors.Is(err, tracker.ErrInvalidStars) {
		t.Errorf("expected ErrInvalidStars, got %v", err)
	}
	if err := (&StarCmd{Ref: "Nope", Stars: 1}).Run(ctx); !errors.Is(err, tracker.ErrHabitNotFound) {
		t.Errorf("expected ErrHabitNotFound, got %v", err)
	}
}

func seedReview(t *testing.T, ctx *Context) {
	t.Helper()
	run(t, ctx, &HabitAddCmd{Name: "Read", Color: "0", Icon: "📚"})
	run(t, ctx, &HabitAddCmd{Name: "Run", Color: "1", Icon: "🏃"})
	for _, s := range []struct {
		ref   string
		date  string
		stars int
	}{
		{"Read", "2024-07-14", 1},
		{"Read", "2024-07-13", 1},
		{"Run", "2024-07-14", 1},
		{"Run", "2024-07-13", 0},
		{"Run", "2024-07-12", 0},
	} {
		run(t, ctx, &StarCmd{Ref: s.ref, Date: s.date, Stars: s.stars})
	}
}

func TestReviewText(t *testing.T) {
	ctx, out := setupTestContext(t)
	seedReview(t, ctx)
	out.Reset()

	run(t, ctx, &ReviewCmd{})
	got := out.String()
	for _, want := range []string{
		"This Month (July 2024)",
		"Completed days: 5",
		"Top performers:",
		"Needs attention:",
		"Run missed its last two tracked days",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("review output missing %q:\n%s", want, got)
		}
	}
}

func TestReviewJSON(t *testing.T) {
	ctx, out := setupTestContext(t)
	seedReview(t, ctx)
	out.Reset()

	run(t, ctx, &ReviewCmd{Sort: string(models.SortName), Top: 1, JSON: true})

	var got []models.MonthlyStats
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}
	if len(got) != 1 || got[0].HabitName != "Read" {
		t.Fatalf("unexpected review: %+v", got)
	}
	if got[0].TotalDays != 31 || got[0].CompletedDays != 2 {
		t.Errorf("unexpected counts: %+v", got[0])
	}
}

func TestReviewValidate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     ReviewCmd
		wantErr bool
	}{
		{"defaults", ReviewCmd{}, false},
		{"all time", ReviewCmd{Window: "all"}, false},
		{"bad window", ReviewCmd{Window: "year"}, true},
		{"bad sort", ReviewCmd{Sort: "stars"}, true},
		{"negative top", ReviewCmd{Top: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAttentionOnTrack(t *testing.T) {
	ctx, out := setupTestContext(t)
	run(t, ctx, &HabitAddCmd{Name: "Read", Color: "0", Icon: "📚"})
	out.Reset()

	run(t, ctx, &AttentionCmd{Window: "all"})
	if !strings.Contains(out.String(), "All habits on track") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestExportToStdoutAndFile(t *testing.T) {
	ctx, out := setupTestContext(t)
	seedReview(t, ctx)
	out.Reset()

	run(t, ctx, &ExportCmd{Output: "-"})
	if !strings.HasPrefix(out.String(), "Star Tracker - Habit Report") {
		t.Errorf("unexpected report: %q", out.String())
	}

	path := filepath.Join(t.TempDir(), "report.txt")
	out.Reset()
	run(t, ctx, &ExportCmd{Output: path})
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !strings.Contains(string(data), "NEEDS ATTENTION") {
		t.Errorf("report missing attention section")
	}
	if !strings.Contains(out.String(), path) {
		t.Errorf("expected output to name %s, got %q", path, out.String())
	}
}

func TestResetRequiresYes(t *testing.T) {
	ctx, _ := setupTestContext(t)
	seedReview(t, ctx)

	if err := (&ResetCmd{}).Run(ctx); err == nil {
		t.Fatal("expected reset without --yes to fail")
	}
	if len(ctx.Tracker.Habits()) != 2 {
		t.Fatalf("habits removed without confirmation")
	}

	run(t, ctx, &ResetCmd{Yes: true})
	if len(ctx.Tracker.Habits()) != 0 || len(ctx.Tracker.Entries()) != 0 {
		t.Errorf("tracker not cleared after reset")
	}
	if !ctx.Store.IsFirstTime() {
		t.Errorf("expected first-time state after reset")
	}
}

func TestAttentionUsesSavedWindow(t *testing.T) {
	ctx, out := setupTestContext(t)
	run(t, ctx, &HabitAddCmd{Name: "Run", Color: "1", Icon: "🏃"})
	for _, s := range []struct {
		date  string
		stars int
	}{
		{"2024-06-10", 1},
		{"2024-06-09", 0},
		{"2024-06-08", 0},
	} {
		run(t, ctx, &StarCmd{Ref: "Run", Date: s.date, Stars: s.stars})
	}

	config := models.DefaultConfig()
	config.ReviewWindow = models.WindowAllTime
	if err := ctx.Store.SaveConfig(config); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	run(t, ctx, &AttentionCmd{})
	if !strings.Contains(out.String(), "Run missed its last two tracked days (0.33 avg)") {
		t.Errorf("expected all-time average from saved window, got %q", out.String())
	}

	out.Reset()
	run(t, ctx, &AttentionCmd{Window: "month"})
	if !strings.Contains(out.String(), "(0.00 avg)") {
		t.Errorf("expected month average from flag, got %q", out.String())
	}
}

func TestMoveAcceptsNegativeBy(t *testing.T) {
	var grammar struct {
		Habit HabitCmd `cmd:""`
	}
	parser, err := kong.New(&grammar)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse([]string{"habit", "move", "Read", "--by=-1"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if grammar.Habit.Move.Ref != "Read" || grammar.Habit.Move.By != -1 {
		t.Errorf("parsed move = %+v", grammar.Habit.Move)
	}
}
