package repo

import (
	"errors"
	"time"

	"github.com/google/uuid"

	apperr "habitkeep/internal/errors"
	"habitkeep/internal/models"
	"habitkeep/internal/storage"
	"habitkeep/internal/validation"
)

// Habits owns habit definitions. Every mutation validates first, writes
// second, and broadcasts a refresh last.
type Habits struct {
	store    storage.Provider
	notifier *Notifier
}

func (h *Habits) List(filter storage.HabitFilter) ([]models.Habit, error) {
	return h.store.ListHabits(filter)
}

func (h *Habits) Get(id string) (models.Habit, error) {
	return h.store.GetHabit(id)
}

func (h *Habits) GetByName(name string) (models.Habit, error) {
	return h.store.GetHabitByName(name)
}

// Create validates the habit, assigns identity and timestamps, and persists
// it. A dangling category reference is a validation failure, not a not-found:
// the habit is the thing being validated, the category merely its field.
func (h *Habits) Create(habit models.Habit) (models.Habit, error) {
	if err := validation.Habit(habit); err != nil {
		return models.Habit{}, err
	}
	if err := h.checkCategory(habit.CategoryID); err != nil {
		return models.Habit{}, err
	}

	now := time.Now()
	habit.ID = uuid.New().String()
	habit.CreatedAt = now
	habit.UpdatedAt = now
	habit.IsArchived = false
	if !habit.Frequency.RequiresDays() {
		habit.FrequencyDays = nil
	}

	if err := h.store.AddHabit(habit); err != nil {
		return models.Habit{}, err
	}

	h.notifier.Broadcast()
	return habit, nil
}

// Update applies a partial patch to an existing habit. The merged result is
// revalidated as a whole, so a patch cannot leave the habit in a state that
// Create would have rejected.
func (h *Habits) Update(id string, patch models.HabitPatch) (models.Habit, error) {
	habit, err := h.store.GetHabit(id)
	if err != nil {
		return models.Habit{}, err
	}

	if patch.Name != nil {
		habit.Name = *patch.Name
	}
	if patch.Description != nil {
		habit.Description = *patch.Description
	}
	if patch.Icon != nil {
		habit.Icon = *patch.Icon
	}
	if patch.Color != nil {
		habit.Color = *patch.Color
	}
	if patch.Frequency != nil {
		habit.Frequency = *patch.Frequency
	}
	if patch.FrequencyDays != nil {
		habit.FrequencyDays = *patch.FrequencyDays
	}
	if patch.CategoryID != nil {
		habit.CategoryID = *patch.CategoryID
	}
	if patch.ReminderEnabled != nil {
		habit.ReminderEnabled = *patch.ReminderEnabled
	}
	if patch.ReminderTime != nil {
		habit.ReminderTime = *patch.ReminderTime
	}
	if patch.SortOrder != nil {
		habit.SortOrder = *patch.SortOrder
	}
	if !habit.Frequency.RequiresDays() {
		habit.FrequencyDays = nil
	}

	if err := validation.Habit(habit); err != nil {
		return models.Habit{}, err
	}
	if patch.CategoryID != nil {
		if err := h.checkCategory(habit.CategoryID); err != nil {
			return models.Habit{}, err
		}
	}

	habit.UpdatedAt = time.Now()
	if err := h.store.UpdateHabit(habit); err != nil {
		return models.Habit{}, err
	}

	h.notifier.Broadcast()
	return habit, nil
}

// Archive hides a habit from active listings while keeping its history.
func (h *Habits) Archive(id string) error {
	if err := h.store.SetHabitArchived(id, true); err != nil {
		return err
	}
	h.notifier.Broadcast()
	return nil
}

// Unarchive restores an archived habit to active listings.
func (h *Habits) Unarchive(id string) error {
	if err := h.store.SetHabitArchived(id, false); err != nil {
		return err
	}
	h.notifier.Broadcast()
	return nil
}

// Delete removes a habit and every completion that references it.
func (h *Habits) Delete(id string) error {
	if err := h.store.DeleteHabit(id); err != nil {
		return err
	}
	h.notifier.Broadcast()
	return nil
}

func (h *Habits) checkCategory(categoryID string) error {
	_, err := h.store.GetCategory(categoryID)
	if errors.Is(err, apperr.ErrNotFound) {
		return apperr.Validationf("category %s does not exist", categoryID)
	}
	return err
}
