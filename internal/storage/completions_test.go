package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	apperr "habitkeep/internal/errors"
	"habitkeep/internal/models"
)

func TestToggleCompletionThreeWayTransition(t *testing.T) {
	store := setupTestStore(t)
	habit := addTestHabit(t, store, "Stretching")
	const day = "2025-01-06"

	// no record -> insert completed
	outcome, err := store.ToggleCompletion(habit.ID, day, "")
	if err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	if outcome != ToggleMarked {
		t.Errorf("expected marked, got %q", outcome)
	}
	c, err := store.GetCompletion(habit.ID, day)
	if err != nil {
		t.Fatalf("failed to get completion: %v", err)
	}
	if c.Status != models.StatusCompleted {
		t.Errorf("expected completed status, got %q", c.Status)
	}

	// completed -> delete the record
	outcome, err = store.ToggleCompletion(habit.ID, day, "")
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if outcome != ToggleUnmarked {
		t.Errorf("expected unmarked, got %q", outcome)
	}
	if _, err := store.GetCompletion(habit.ID, day); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected no record after un-toggle, got %v", err)
	}

	// skipped -> update to completed
	if err := store.SkipCompletion(habit.ID, day, ""); err != nil {
		t.Fatalf("skip failed: %v", err)
	}
	outcome, err = store.ToggleCompletion(habit.ID, day, "")
	if err != nil {
		t.Fatalf("toggle over skip failed: %v", err)
	}
	if outcome != ToggleMarked {
		t.Errorf("expected marked over skip, got %q", outcome)
	}
	c, err = store.GetCompletion(habit.ID, day)
	if err != nil {
		t.Fatalf("failed to get completion: %v", err)
	}
	if c.Status != models.StatusCompleted {
		t.Errorf("expected completed after toggling a skip, got %q", c.Status)
	}
}

func TestSkipCompletion(t *testing.T) {
	store := setupTestStore(t)
	habit := addTestHabit(t, store, "Reading")
	const day = "2025-01-06"

	// no record -> insert skipped
	if err := store.SkipCompletion(habit.ID, day, "travel day"); err != nil {
		t.Fatalf("skip failed: %v", err)
	}
	c, err := store.GetCompletion(habit.ID, day)
	if err != nil {
		t.Fatalf("failed to get completion: %v", err)
	}
	if c.Status != models.StatusSkipped {
		t.Errorf("expected skipped status, got %q", c.Status)
	}
	if c.Note != "travel day" {
		t.Errorf("expected note to persist, got %q", c.Note)
	}

	// completed -> overwritten to skipped
	if _, err := store.ToggleCompletion(habit.ID, day, ""); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if err := store.SkipCompletion(habit.ID, day, ""); err != nil {
		t.Fatalf("skip over completed failed: %v", err)
	}
	c, err = store.GetCompletion(habit.ID, day)
	if err != nil {
		t.Fatalf("failed to get completion: %v", err)
	}
	if c.Status != models.StatusSkipped {
		t.Errorf("expected skipped after overwrite, got %q", c.Status)
	}

	// skipping again is a no-op, not an error
	if err := store.SkipCompletion(habit.ID, day, ""); err != nil {
		t.Fatalf("repeated skip failed: %v", err)
	}
}

func TestAtMostOneCompletionPerDay(t *testing.T) {
	store := setupTestStore(t)
	habit := addTestHabit(t, store, "Water plants")
	const day = "2025-01-06"

	// Any sequence of toggle/skip calls leaves at most one row per day
	if _, err := store.ToggleCompletion(habit.ID, day, ""); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if err := store.SkipCompletion(habit.ID, day, ""); err != nil {
		t.Fatalf("skip failed: %v", err)
	}
	if _, err := store.ToggleCompletion(habit.ID, day, ""); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if err := store.SkipCompletion(habit.ID, day, ""); err != nil {
		t.Fatalf("skip failed: %v", err)
	}

	var count int
	err := store.GetDB().QueryRow(
		"SELECT COUNT(*) FROM completions WHERE habit_id = ? AND date = ?",
		habit.ID, day).Scan(&count)
	if err != nil {
		t.Fatalf("failed to count completions: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly 1 completion row, got %d", count)
	}
}

func TestAddCompletionDuplicateIsConstraintViolation(t *testing.T) {
	store := setupTestStore(t)
	habit := addTestHabit(t, store, "Flossing")
	const day = "2025-01-06"

	completion := models.Completion{
		ID:        uuid.New().String(),
		HabitID:   habit.ID,
		Date:      day,
		Status:    models.StatusCompleted,
		CreatedAt: time.Now(),
	}
	if err := store.AddCompletion(completion); err != nil {
		t.Fatalf("failed to add completion: %v", err)
	}

	// A second insert for the same (habit, date) bypasses the toggle path
	// and must hit the unique index.
	duplicate := completion
	duplicate.ID = uuid.New().String()
	err := store.AddCompletion(duplicate)
	if !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("expected ErrConflict for duplicate insert, got %v", err)
	}
}

func TestListCompletionsInRange(t *testing.T) {
	store := setupTestStore(t)
	habit := addTestHabit(t, store, "Duolingo")

	days := []string{"2025-01-05", "2025-01-06", "2025-01-07", "2025-01-10", "2025-02-01"}
	for _, day := range days {
		if _, err := store.ToggleCompletion(habit.ID, day, ""); err != nil {
			t.Fatalf("toggle failed for %s: %v", day, err)
		}
	}

	// Range bounds are inclusive on both ends
	completions, err := store.ListCompletionsInRange("2025-01-06", "2025-01-10")
	if err != nil {
		t.Fatalf("failed to list completions: %v", err)
	}
	if len(completions) != 3 {
		t.Fatalf("expected 3 completions in range, got %d", len(completions))
	}
	if completions[0].Date != "2025-01-06" || completions[2].Date != "2025-01-10" {
		t.Errorf("unexpected range bounds: %s .. %s", completions[0].Date, completions[2].Date)
	}

	// Empty range
	completions, err = store.ListCompletionsInRange("2024-01-01", "2024-12-31")
	if err != nil {
		t.Fatalf("failed to list completions: %v", err)
	}
	if len(completions) != 0 {
		t.Errorf("expected empty result, got %d", len(completions))
	}
}

func TestCompletedDatesExcludesSkips(t *testing.T) {
	store := setupTestStore(t)
	habit := addTestHabit(t, store, "Pushups")

	if _, err := store.ToggleCompletion(habit.ID, "2025-01-06", ""); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if _, err := store.ToggleCompletion(habit.ID, "2025-01-07", ""); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if err := store.SkipCompletion(habit.ID, "2025-01-08", ""); err != nil {
		t.Fatalf("skip failed: %v", err)
	}

	dates, err := store.CompletedDates(habit.ID)
	if err != nil {
		t.Fatalf("failed to get completed dates: %v", err)
	}
	if len(dates) != 2 {
		t.Fatalf("expected 2 completed dates, got %d", len(dates))
	}
	for _, d := range dates {
		if d == "2025-01-08" {
			t.Error("skipped day must not appear in completed dates")
		}
	}
}
