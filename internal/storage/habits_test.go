package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	apperr "habitkeep/internal/errors"
	"habitkeep/internal/models"
)

func TestHabitCRUD(t *testing.T) {
	store := setupTestStore(t)

	habit := addTestHabit(t, store, "Morning meditation")

	retrieved, err := store.GetHabit(habit.ID)
	if err != nil {
		t.Fatalf("failed to get habit: %v", err)
	}
	if retrieved.Name != habit.Name {
		t.Errorf("expected name %q, got %q", habit.Name, retrieved.Name)
	}
	if retrieved.Frequency != models.FrequencyDaily {
		t.Errorf("expected daily frequency, got %q", retrieved.Frequency)
	}

	byName, err := store.GetHabitByName(habit.Name)
	if err != nil {
		t.Fatalf("failed to get habit by name: %v", err)
	}
	if byName.ID != habit.ID {
		t.Errorf("expected ID %q, got %q", habit.ID, byName.ID)
	}

	habit.Name = "Evening meditation"
	habit.UpdatedAt = time.Now()
	if err := store.UpdateHabit(habit); err != nil {
		t.Fatalf("failed to update habit: %v", err)
	}

	updated, err := store.GetHabit(habit.ID)
	if err != nil {
		t.Fatalf("failed to get updated habit: %v", err)
	}
	if updated.Name != "Evening meditation" {
		t.Errorf("expected updated name, got %q", updated.Name)
	}
}

func TestHabitCustomFrequencyRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	habit := addTestHabit(t, store, "Gym")
	habit.Frequency = models.FrequencyCustom
	habit.FrequencyDays = []int{0, 2, 4}
	habit.UpdatedAt = time.Now()
	if err := store.UpdateHabit(habit); err != nil {
		t.Fatalf("failed to update habit: %v", err)
	}

	got, err := store.GetHabit(habit.ID)
	if err != nil {
		t.Fatalf("failed to get habit: %v", err)
	}
	if got.Frequency != models.FrequencyCustom {
		t.Errorf("expected custom frequency, got %q", got.Frequency)
	}
	if len(got.FrequencyDays) != 3 || got.FrequencyDays[0] != 0 || got.FrequencyDays[1] != 2 || got.FrequencyDays[2] != 4 {
		t.Errorf("expected days [0 2 4], got %v", got.FrequencyDays)
	}
}

func TestGetHabitNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetHabit(uuid.New().String())
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListHabitsOrdering(t *testing.T) {
	store := setupTestStore(t)

	first := addTestHabit(t, store, "First")
	second := addTestHabit(t, store, "Second")
	third := addTestHabit(t, store, "Third")

	// Assign deliberately shuffled sort orders
	for habit, order := range map[*models.Habit]int{&first: 2, &second: 0, &third: 1} {
		habit.SortOrder = order
		habit.UpdatedAt = time.Now()
		if err := store.UpdateHabit(*habit); err != nil {
			t.Fatalf("failed to update habit: %v", err)
		}
	}

	habits, err := store.ListHabits(HabitFilter{})
	if err != nil {
		t.Fatalf("failed to list habits: %v", err)
	}
	if len(habits) != 3 {
		t.Fatalf("expected 3 habits, got %d", len(habits))
	}
	if habits[0].Name != "Second" || habits[1].Name != "Third" || habits[2].Name != "First" {
		t.Errorf("habits not ordered by sort order: %s, %s, %s",
			habits[0].Name, habits[1].Name, habits[2].Name)
	}
}

func TestListHabitsCategoryFilter(t *testing.T) {
	store := setupTestStore(t)

	categories, err := store.GetAllCategories()
	if err != nil {
		t.Fatalf("failed to get categories: %v", err)
	}

	inFirst := addTestHabit(t, store, "In first category")

	other := addTestHabit(t, store, "In second category")
	other.CategoryID = categories[1].ID
	other.UpdatedAt = time.Now()
	if err := store.UpdateHabit(other); err != nil {
		t.Fatalf("failed to move habit: %v", err)
	}

	habits, err := store.ListHabits(HabitFilter{CategoryID: categories[0].ID})
	if err != nil {
		t.Fatalf("failed to list habits: %v", err)
	}
	if len(habits) != 1 || habits[0].ID != inFirst.ID {
		t.Errorf("expected only the habit in the first category, got %d habits", len(habits))
	}
}

func TestArchiveExcludesFromDefaultList(t *testing.T) {
	store := setupTestStore(t)

	habit := addTestHabit(t, store, "Old habit")
	keep := addTestHabit(t, store, "Current habit")

	if err := store.SetHabitArchived(habit.ID, true); err != nil {
		t.Fatalf("failed to archive habit: %v", err)
	}

	habits, err := store.ListHabits(HabitFilter{})
	if err != nil {
		t.Fatalf("failed to list habits: %v", err)
	}
	if len(habits) != 1 || habits[0].ID != keep.ID {
		t.Error("archived habit should be excluded from the default list")
	}

	all, err := store.ListHabits(HabitFilter{IncludeArchived: true})
	if err != nil {
		t.Fatalf("failed to list all habits: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 habits with includeArchived, got %d", len(all))
	}

	// Unarchive brings it back
	if err := store.SetHabitArchived(habit.ID, false); err != nil {
		t.Fatalf("failed to unarchive habit: %v", err)
	}
	habits, err = store.ListHabits(HabitFilter{})
	if err != nil {
		t.Fatalf("failed to list habits: %v", err)
	}
	if len(habits) != 2 {
		t.Errorf("expected 2 habits after unarchive, got %d", len(habits))
	}
}

func TestArchiveLeavesCompletionsIntact(t *testing.T) {
	store := setupTestStore(t)

	habit := addTestHabit(t, store, "Journaling")
	if _, err := store.ToggleCompletion(habit.ID, "2025-01-06", ""); err != nil {
		t.Fatalf("failed to toggle completion: %v", err)
	}

	if err := store.SetHabitArchived(habit.ID, true); err != nil {
		t.Fatalf("failed to archive habit: %v", err)
	}

	completions, err := store.ListCompletionsForHabit(habit.ID, "2025-01-01", "2025-01-31")
	if err != nil {
		t.Fatalf("failed to list completions: %v", err)
	}
	if len(completions) != 1 {
		t.Errorf("expected archived habit's completions to remain, got %d", len(completions))
	}
}

func TestSetHabitArchivedNotFound(t *testing.T) {
	store := setupTestStore(t)

	err := store.SetHabitArchived(uuid.New().String(), true)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteHabitCascadesCompletions(t *testing.T) {
	store := setupTestStore(t)

	habit := addTestHabit(t, store, "Doomed habit")
	survivor := addTestHabit(t, store, "Surviving habit")

	for _, date := range []string{"2025-01-06", "2025-01-07", "2025-01-08"} {
		if _, err := store.ToggleCompletion(habit.ID, date, ""); err != nil {
			t.Fatalf("failed to toggle completion: %v", err)
		}
	}
	if _, err := store.ToggleCompletion(survivor.ID, "2025-01-06", ""); err != nil {
		t.Fatalf("failed to toggle completion: %v", err)
	}

	if err := store.DeleteHabit(habit.ID); err != nil {
		t.Fatalf("failed to delete habit: %v", err)
	}

	if _, err := store.GetHabit(habit.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// All of the habit's completions are gone regardless of range
	gone, err := store.ListCompletionsForHabit(habit.ID, "2020-01-01", "2030-12-31")
	if err != nil {
		t.Fatalf("failed to list completions: %v", err)
	}
	if len(gone) != 0 {
		t.Errorf("expected no completions after cascade delete, got %d", len(gone))
	}

	// The other habit's completions are untouched
	kept, err := store.ListCompletionsForHabit(survivor.ID, "2020-01-01", "2030-12-31")
	if err != nil {
		t.Fatalf("failed to list completions: %v", err)
	}
	if len(kept) != 1 {
		t.Errorf("expected surviving habit's completion, got %d", len(kept))
	}
}

func TestDeleteHabitNotFound(t *testing.T) {
	store := setupTestStore(t)

	err := store.DeleteHabit(uuid.New().String())
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
